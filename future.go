package atoll

import (
	"sync/atomic"
)

// Future is a handle for an asynchronous request or session operation.
//
// A Future is resolved exactly once, either with a result or with an error.
// All resolution paths go through SetResult/SetError, so a spurious second
// resolve is ignored instead of overwriting the first one.
type Future struct {
	resp  *Response
	err   error
	done  uint32
	ready chan struct{}
}

// NewFuture returns a new unresolved Future.
func NewFuture() *Future {
	return &Future{ready: make(chan struct{})}
}

// NewErrorFuture returns a new already resolved Future with filled error field.
func NewErrorFuture(err error) *Future {
	return &Future{err: err, done: 1}
}

var closedChan = make(chan struct{})

func init() {
	close(closedChan)
}

// SetResult resolves the Future with a response. It reports whether this
// call was the one that resolved it.
func (fut *Future) SetResult(resp *Response) bool {
	if !atomic.CompareAndSwapUint32(&fut.done, 0, 1) {
		return false
	}
	fut.resp = resp
	close(fut.ready)
	return true
}

// SetError resolves the Future with an error. It reports whether this call
// was the one that resolved it.
func (fut *Future) SetError(err error) bool {
	if !atomic.CompareAndSwapUint32(&fut.done, 0, 1) {
		return false
	}
	fut.err = err
	close(fut.ready)
	return true
}

// Get waits for the Future to be resolved and returns Response and error.
//
// Response will contain deserialized result in Data field.
// It will be []interface{}, so if you want more performance, use GetTyped method.
//
// Note: Response could be equal to nil if ClientError is returned in error.
//
// "error" could be Error, if it is error returned by a server, or
// ClientError, if something bad happens in a client process.
func (fut *Future) Get() (*Response, error) {
	fut.wait()
	if fut.err != nil {
		return fut.resp, fut.err
	}
	fut.err = fut.resp.decodeBody()
	return fut.resp, fut.err
}

// GetTyped waits for the Future and decodes the response body into result if
// no error happens. It could be much faster than Get() function.
func (fut *Future) GetTyped(result interface{}) error {
	fut.wait()
	if fut.err != nil {
		return fut.err
	}
	fut.err = fut.resp.decodeBodyTyped(result)
	return fut.err
}

// WaitChan returns channel which becomes closed when the Future is resolved.
func (fut *Future) WaitChan() <-chan struct{} {
	if fut.ready == nil {
		return closedChan
	}
	return fut.ready
}

// Err returns error set on the Future.
// It waits for the Future to be resolved.
// Note: it doesn't decode body, therefore decoding errors are not set here.
func (fut *Future) Err() error {
	fut.wait()
	return fut.err
}

func (fut *Future) wait() {
	if fut.ready == nil {
		return
	}
	<-fut.ready
}
