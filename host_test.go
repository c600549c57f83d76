package atoll_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/atolldb/go-atoll"
)

func TestHostFromLiteral(t *testing.T) {
	cases := []struct {
		contactPoint string
		literal      bool
		addr         string
	}{
		{"127.0.0.1:9042", true, "127.0.0.1:9042"},
		{"127.0.0.1:11042", true, "127.0.0.1:11042"},
		{"127.0.0.1", true, "127.0.0.1:9042"},
		{"[::1]:9042", true, "[::1]:9042"},
		{"::1", true, "[::1]:9042"},
		{"atoll1.example.com:9042", false, ""},
		{"atoll1.example.com", false, ""},
		{"127.0.0.1:port", false, ""},
	}

	for _, c := range cases {
		host, ok := HostFromLiteral(c.contactPoint, 9042)
		require.Equal(t, c.literal, ok, c.contactPoint)
		if c.literal {
			assert.Equal(t, c.addr, host.Addr(), c.contactPoint)
		}
	}
}

func TestSplitContactPoint(t *testing.T) {
	name, port := SplitContactPoint("atoll1.example.com:11042", 9042)
	assert.Equal(t, "atoll1.example.com", name)
	assert.Equal(t, 11042, port)

	name, port = SplitContactPoint("atoll1.example.com", 9042)
	assert.Equal(t, "atoll1.example.com", name)
	assert.Equal(t, 9042, port)
}

func TestHostOrdering(t *testing.T) {
	a := NewHost(net.ParseIP("10.0.0.1"), 9042)
	b := NewHost(net.ParseIP("10.0.0.2"), 9042)

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.Equal(t, "10.0.0.1:9042", a.String())
}
