//go:build !go_atoll_ssl_disable
// +build !go_atoll_ssl_disable

package atoll

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/tarantool/go-openssl"
)

func sslDialTimeout(network, address string, timeout time.Duration,
	opts SslOpts) (net.Conn, error) {
	ctx, err := sslCreateContext(opts)
	if err != nil {
		return nil, err
	}

	return openssl.DialTimeout(network, address, timeout, ctx.(*openssl.Ctx), 0)
}

// interface{} is a hack. It helps to avoid dependency of go-openssl in build
// of tests with the tag 'go_atoll_ssl_disable'.
func sslCreateContext(opts SslOpts) (interface{}, error) {
	ctx, err := openssl.NewCtx()
	if err != nil {
		return nil, err
	}
	// TLS 1.2 is the floor for every Atoll deployment; anything the peer
	// negotiates above it is fine.
	ctx.SetMinProtoVersion(openssl.TLS1_2_VERSION)

	if opts.CertFile != "" {
		if err = sslLoadCert(ctx, opts.CertFile); err != nil {
			return nil, err
		}
	}
	if opts.KeyFile != "" {
		if err = sslLoadKey(ctx, opts.KeyFile); err != nil {
			return nil, err
		}
	}
	if opts.CaFile != "" {
		if err = ctx.LoadVerifyLocations(opts.CaFile, ""); err != nil {
			return nil, err
		}
		ctx.SetVerify(openssl.VerifyPeer|openssl.VerifyFailIfNoPeerCert, nil)
	}
	if opts.Ciphers != "" {
		ctx.SetCipherList(opts.Ciphers)
	}

	return ctx, nil
}

// sslLoadCert installs the leaf certificate plus any chain certificates that
// follow it in the same PEM file.
func sslLoadCert(ctx *openssl.Ctx, certFile string) error {
	pem, err := os.ReadFile(certFile)
	if err != nil {
		return err
	}

	blocks := openssl.SplitPEM(pem)
	if len(blocks) == 0 {
		return fmt.Errorf("no PEM certificate found in %q", certFile)
	}

	leaf, err := openssl.LoadCertificateFromPEM(blocks[0])
	if err != nil {
		return err
	}
	if err = ctx.UseCertificate(leaf); err != nil {
		return err
	}

	for _, block := range blocks[1:] {
		chain, err := openssl.LoadCertificateFromPEM(block)
		if err != nil {
			return err
		}
		if err = ctx.AddChainCertificate(chain); err != nil {
			return err
		}
	}
	return nil
}

func sslLoadKey(ctx *openssl.Ctx, keyFile string) error {
	pem, err := os.ReadFile(keyFile)
	if err != nil {
		return err
	}

	key, err := openssl.LoadPrivateKeyFromPEM(pem)
	if err != nil {
		return err
	}
	return ctx.UsePrivateKey(key)
}
