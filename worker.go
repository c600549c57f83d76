package atoll

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"sync/atomic"
)

// IOWorker is a goroutine owning a subset of per-host connection pools and
// handling actual request execution.
//
// AddPool, Execute and Shutdown never block: pool establishment and
// teardown are asynchronous, and Execute reports a refusal instead of
// waiting when the worker is saturated. Join is the only blocking call.
type IOWorker interface {
	// AddPool asks the worker to begin establishing a connection pool for
	// the host. Fire and forget; completions surface as session events.
	AddPool(host Host)
	// Execute offers a request to the worker. It reports false when the
	// worker refuses it, signaling local saturation.
	Execute(req *Request) bool
	// Shutdown requests an orderly teardown of the worker.
	Shutdown()
	// Join blocks until the worker goroutine has exited.
	Join()
	// ShutdownDone reports whether the worker finished its teardown.
	ShutdownDone() bool
}

type poolConn struct {
	host Host
	c    net.Conn
	err  error
}

// ioWorker is the default IOWorker implementation. It runs a single
// goroutine owning its pools; dials happen on side goroutines and re-enter
// the loop through the dialed channel.
type ioWorker struct {
	id   int
	sess *Session
	opts Opts

	requests chan *Request
	addPool  chan Host
	dialed   chan poolConn
	control  chan struct{}
	done     chan struct{}

	shutdownDone uint32

	// pools and pendingDials are owned by the worker goroutine.
	pools        map[string][]net.Conn
	pendingDials int
}

var _ IOWorker = (*ioWorker)(nil)

func newIOWorker(id int, sess *Session) *ioWorker {
	w := &ioWorker{
		id:       id,
		sess:     sess,
		opts:     sess.opts,
		requests: make(chan *Request, sess.opts.QueueSizeIO),
		addPool:  make(chan Host, sess.opts.QueueSizeEvent),
		dialed:   make(chan poolConn, sess.opts.QueueSizeEvent),
		control:  make(chan struct{}),
		done:     make(chan struct{}),
		pools:    make(map[string][]net.Conn),
	}
	go w.run()
	return w
}

func (w *ioWorker) AddPool(host Host) {
	select {
	case w.addPool <- host:
	case <-w.control:
	}
}

func (w *ioWorker) Execute(req *Request) bool {
	select {
	case w.requests <- req:
		return true
	default:
		return false
	}
}

func (w *ioWorker) Shutdown() {
	select {
	case <-w.control:
	default:
		close(w.control)
	}
}

func (w *ioWorker) Join() {
	<-w.done
}

func (w *ioWorker) ShutdownDone() bool {
	return atomic.LoadUint32(&w.shutdownDone) == 1
}

func (w *ioWorker) run() {
	defer close(w.done)

	for {
		select {
		case host := <-w.addPool:
			for i := 0; i < w.opts.CoreConnectionsPerHost; i++ {
				w.pendingDials++
				go w.dial(host)
			}
		case pc := <-w.dialed:
			w.pendingDials--
			if pc.err == nil {
				w.pools[pc.host.Addr()] = append(w.pools[pc.host.Addr()], pc.c)
			}
			// The session counts finished attempts, not live sockets, so a
			// failed dial still has to be reported or readiness would hang.
			w.sess.notifyConnect(pc.host)
		case req := <-w.requests:
			w.process(req)
		case <-w.control:
			w.teardown()
			atomic.StoreUint32(&w.shutdownDone, 1)
			w.sess.notifyShutdown()
			return
		}
	}
}

// dial is fire and forget: the dialed channel is sized for the whole
// connection matrix, so the outcome always fits and the worker loop (or
// teardown) consumes every one of them.
func (w *ioWorker) dial(host Host) {
	c, err := dialTimeout(host.Addr(), w.opts.ConnectTimeout, w.opts.Transport, w.opts.Ssl)
	w.dialed <- poolConn{host: host, c: c, err: err}
}

func (w *ioWorker) teardown() {
	for addr, conns := range w.pools {
		for _, c := range conns {
			c.Close()
		}
		delete(w.pools, addr)
	}
	// Dials still in flight land in the dialed buffer; their sockets must
	// not outlive the worker.
	for ; w.pendingDials > 0; w.pendingDials-- {
		if pc := <-w.dialed; pc.c != nil {
			pc.c.Close()
		}
	}
	// Everything still queued dies with the worker.
	for {
		select {
		case req := <-w.requests:
			req.fut.SetError(ClientError{ErrConnectionShutdown, "worker is shut down"})
		default:
			return
		}
	}
}

// process executes one request against the first host of its query plan
// that has a live pooled connection.
func (w *ioWorker) process(req *Request) {
	for _, host := range req.hosts {
		conns := w.pools[host.Addr()]
		if len(conns) == 0 {
			continue
		}
		c := conns[0]
		// Rotate so core connections share the host's load.
		copy(conns, conns[1:])
		conns[len(conns)-1] = c

		resp, err := w.perform(req, c)
		if err != nil {
			// A broken connection leaves the pool; the request moves on to
			// the next host of the plan.
			w.dropConn(host, c)
			continue
		}
		req.fut.SetResult(resp)
		return
	}
	req.fut.SetError(ClientError{ErrConnectionNotReady,
		"no pooled connection to any host in the query plan"})
}

func (w *ioWorker) dropConn(host Host, c net.Conn) {
	c.Close()
	conns := w.pools[host.Addr()]
	for i := range conns {
		if conns[i] == c {
			w.pools[host.Addr()] = append(conns[:i], conns[i+1:]...)
			return
		}
	}
}

func (w *ioWorker) perform(req *Request, c net.Conn) (*Response, error) {
	if err := writeRequest(c, req); err != nil {
		return nil, err
	}
	return readResponse(c)
}

func writeRequest(wr io.Writer, req *Request) error {
	var buf bytes.Buffer
	buf.Write([]byte{0xce, 0, 0, 0, 0}) // Length.

	enc := newEncoder(&buf)
	if err := req.BodyEncode(enc); err != nil {
		return err
	}

	b := buf.Bytes()
	binary.BigEndian.PutUint32(b[1:PacketLengthBytes], uint32(len(b)-PacketLengthBytes))
	_, err := wr.Write(b)
	return err
}

func readResponse(r io.Reader) (*Response, error) {
	var lenbuf [PacketLengthBytes]byte
	if _, err := io.ReadFull(r, lenbuf[:]); err != nil {
		return nil, err
	}
	if lenbuf[0] != 0xce {
		return nil, ClientError{ErrProtocolError, "wrong response length prefix"}
	}
	body := make([]byte, binary.BigEndian.Uint32(lenbuf[1:]))
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}

	resp := &Response{buf: body}
	d := newDecoder(bytes.NewReader(body))
	l, err := d.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	for ; l > 0; l-- {
		cd, err := d.DecodeInt()
		if err != nil {
			return nil, err
		}
		switch cd {
		case KeyRequestId:
			rid, err := d.DecodeUint64()
			if err != nil {
				return nil, err
			}
			resp.RequestId = uint32(rid)
		case KeyCode:
			code, err := d.DecodeUint64()
			if err != nil {
				return nil, err
			}
			resp.Code = uint32(code)
		default:
			if err = d.Skip(); err != nil {
				return nil, err
			}
		}
	}
	return resp, nil
}
