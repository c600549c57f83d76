package atoll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/atolldb/go-atoll"
)

func TestParseAddress(t *testing.T) {
	cases := []struct {
		address string
		network string
		dial    string
	}{
		{"192.168.1.1:9042", "tcp", "192.168.1.1:9042"},
		{"atoll1.example.com:9042", "tcp", "atoll1.example.com:9042"},
		{"tcp://192.168.1.1:9042", "tcp", "192.168.1.1:9042"},
		{"tcp:atoll1.example.com:9042", "tcp", "atoll1.example.com:9042"},
		{"unix:///abs/path/atoll.sock", "unix", "/abs/path/atoll.sock"},
		{"unix:path/atoll.sock", "unix", "path/atoll.sock"},
		{"unix/:path/atoll.sock", "unix", "path/atoll.sock"},
		{"/abs/path/atoll.sock", "unix", "/abs/path/atoll.sock"},
		{"./rel/path/atoll.sock", "unix", "./rel/path/atoll.sock"},
		{"", "tcp", ""},
	}

	for _, c := range cases {
		network, addr := ParseAddress(c.address)
		assert.Equal(t, c.network, network, c.address)
		assert.Equal(t, c.dial, addr, c.address)
	}
}

func TestSslDialTimeoutBadKeyFile(t *testing.T) {
	opts := SslOpts{
		KeyFile: "testdata/does-not-exist.key",
	}
	_, err := SslDialTimeout("tcp", "127.0.0.1:0", 10*time.Millisecond, opts)
	assert.Error(t, err)
}
