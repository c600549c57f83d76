package atoll

import (
	"io"
	"net"
	"time"
)

func SslDialTimeout(network, address string, timeout time.Duration,
	opts SslOpts) (connection net.Conn, err error) {
	return sslDialTimeout(network, address, timeout, opts)
}

func ParseAddress(address string) (string, string) {
	return parseAddress(address)
}

func HostFromLiteral(contactPoint string, defaultPort int) (Host, bool) {
	return hostFromLiteral(contactPoint, defaultPort)
}

func SplitContactPoint(contactPoint string, defaultPort int) (string, int) {
	return splitContactPoint(contactPoint, defaultPort)
}

// SetWorkerFactory replaces the I/O worker constructor. Tests install fake
// workers with it before calling Connect.
func (s *Session) SetWorkerFactory(factory func(id int, sess *Session) IOWorker) {
	s.newWorker = factory
}

// NotifyConnect posts a CONNECTED event the way an I/O worker does.
func (s *Session) NotifyConnect(host Host) {
	s.notifyConnect(host)
}

// NotifyShutdown posts a SHUTDOWN event the way an I/O worker does.
func (s *Session) NotifyShutdown() {
	s.notifyShutdown()
}

// StateString exposes the session state for assertions.
func (s *Session) StateString() string {
	return s.stateToString()
}

// RefImplWriteRequest is reference implementation for framing a request.
func RefImplWriteRequest(w io.Writer, req *Request) error {
	return writeRequest(w, req)
}

// RefImplReadResponse is reference implementation for reading one response
// frame.
func RefImplReadResponse(r io.Reader) (*Response, error) {
	return readResponse(r)
}

// NewResponseWithBody builds a Response over a raw body the way a worker
// does after reading a frame.
func NewResponseWithBody(requestId, code uint32, body []byte) *Response {
	return &Response{RequestId: requestId, Code: code, buf: body}
}
