package atoll

import (
	"errors"
	"net"
	"time"
)

const (
	connTransportNone = ""
	connTransportSsl  = "ssl"
)

// SslOpts is a way to configure ssl transport.
type SslOpts struct {
	// KeyFile is a path to a private SSL key file.
	KeyFile string
	// CertFile is a path to an SSL certificate file.
	CertFile string
	// CaFile is a path to a trusted certificate authorities (CA) file.
	CaFile string
	// Ciphers is a colon-separated (:) list of SSL cipher suites the
	// connection can use.
	Ciphers string
}

// parseAddress splits an address into a network and a dialable address.
//
// Address could be specified in following ways:
//
// - TCP connections (tcp://192.168.1.1:9042, tcp:my.host:9042,
// 192.168.1.1:9042, my.host:9042)
//
// - Unix socket, first '/' or '.' indicates Unix socket
// (unix:///abs/path/atoll.sock, unix:path/atoll.sock, /abs/path/atoll.sock,
// ./rel/path/atoll.sock, unix/:path/atoll.sock)
func parseAddress(address string) (string, string) {
	network := "tcp"
	addrLen := len(address)
	switch {
	case addrLen > 0 && (address[0] == '.' || address[0] == '/'):
		network = "unix"
	case addrLen >= 7 && address[0:7] == "unix://":
		network = "unix"
		address = address[7:]
	case addrLen >= 6 && address[0:6] == "unix/:":
		network = "unix"
		address = address[6:]
	case addrLen >= 5 && address[0:5] == "unix:":
		network = "unix"
		address = address[5:]
	case addrLen >= 6 && address[0:6] == "tcp://":
		address = address[6:]
	case addrLen >= 4 && address[0:4] == "tcp:":
		address = address[4:]
	}
	return network, address
}

// dialTimeout establishes a transport connection to a single host.
func dialTimeout(address string, timeout time.Duration, transport string,
	ssl SslOpts) (net.Conn, error) {
	network, addr := parseAddress(address)
	switch transport {
	case connTransportNone:
		return net.DialTimeout(network, addr, timeout)
	case connTransportSsl:
		return sslDialTimeout(network, addr, timeout, ssl)
	default:
		return nil, errors.New("An unsupported transport type: " + transport)
	}
}
