package atoll

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdleWorker(sess *Session) *ioWorker {
	return &ioWorker{
		sess:     sess,
		opts:     sess.opts,
		requests: make(chan *Request, sess.opts.QueueSizeIO),
		addPool:  make(chan Host, sess.opts.QueueSizeEvent),
		dialed:   make(chan poolConn, sess.opts.QueueSizeEvent),
		control:  make(chan struct{}),
		done:     make(chan struct{}),
		pools:    make(map[string][]net.Conn),
	}
}

func requirePeerClosed(t *testing.T, peer net.Conn) {
	t.Helper()
	var buf [1]byte
	_, err := peer.Read(buf[:])
	require.ErrorIs(t, err, io.EOF)
}

func TestWorkerTeardownFailsQueuedRequests(t *testing.T) {
	sess := NewSession(Opts{ContactPoints: []string{"127.0.0.1:9042"}})
	w := newIdleWorker(sess)

	first := NewQueryRequest("SELECT 1")
	second := NewQueryRequest("SELECT 2")
	w.requests <- first
	w.requests <- second

	w.teardown()

	for _, req := range []*Request{first, second} {
		err := req.fut.Err()
		var clierr ClientError
		require.ErrorAs(t, err, &clierr)
		assert.Equal(t, uint32(ErrConnectionShutdown), clierr.Code)
	}
}

func TestWorkerTeardownClosesConnections(t *testing.T) {
	sess := NewSession(Opts{ContactPoints: []string{"127.0.0.1:9042"}})
	w := newIdleWorker(sess)
	host := NewHost(net.ParseIP("127.0.0.1"), 9042)

	pooled, pooledPeer := net.Pipe()
	defer pooledPeer.Close()
	w.pools[host.Addr()] = []net.Conn{pooled}

	// A dial that finished after the shutdown broadcast sits in the
	// dialed buffer; its socket belongs to the worker too.
	inflight, inflightPeer := net.Pipe()
	defer inflightPeer.Close()
	w.dialed <- poolConn{host: host, c: inflight}
	w.pendingDials = 1

	w.teardown()

	assert.Empty(t, w.pools)
	assert.Zero(t, w.pendingDials)
	requirePeerClosed(t, pooledPeer)
	requirePeerClosed(t, inflightPeer)
}
