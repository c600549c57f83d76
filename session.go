// Package atoll implements the session core of the Atoll database driver:
// it tracks cluster members discovered from the configured contact points,
// fans work out across a pool of I/O workers and routes requests to hosts
// chosen by a pluggable load balancing policy.
package atoll

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
)

// Session states.
const (
	sessionStateNew = iota
	sessionStateConnecting
	sessionStateReady
	sessionStateDisconnecting
	sessionStateDisconnected
)

type eventKind int

const (
	eventConnected eventKind = iota + 1
	eventShutdown
)

// sessionEvent is a cross-goroutine notification posted by an I/O worker
// and consumed by the session loop.
type sessionEvent struct {
	kind eventKind
	host Host
}

// Session is a logical connection to an Atoll cluster.
//
// A Session runs one event loop goroutine of its own plus one goroutine per
// I/O worker. Application goroutines interact with it only through the two
// bounded queues and the atomic state field, so Connect, Shutdown, Execute
// and Prepare never block; each returns a Future resolved exactly once.
//
// The lifecycle is strict: NEW -> CONNECTING -> READY -> DISCONNECTING ->
// DISCONNECTED. Connect may be called once; Shutdown succeeds only from
// READY or CONNECTING; no transition leaves DISCONNECTED.
type Session struct {
	opts     Opts
	keyspace string

	// state is the only field mutated from multiple goroutines. Entry
	// points transition it with compare-and-swap, the session loop with
	// compare-and-swap or atomic store.
	state uint32

	mutex   sync.Mutex
	workers []IOWorker
	policy  LoadBalancingPolicy

	requestCh chan *Request
	eventCh   chan sessionEvent
	resolveCh chan resolveOutcome
	done      chan struct{}

	futmut      sync.Mutex
	connectFut  *Future
	shutdownFut *Future

	requestId uint32

	// The fields below belong to the session loop goroutine; nothing else
	// touches them.
	hosts           hostSet
	pendingResolves int
	pendingConns    int
	currentWorker   int
	joined          []bool
	resolveErrs     *multierror.Error
	stopped         bool

	newWorker func(id int, sess *Session) IOWorker
}

// NewSession creates and configures a Session. The session does nothing
// until Connect is called.
func NewSession(opts Opts) *Session {
	opts.fillDefaults()
	return &Session{
		opts:      opts,
		policy:    NewRoundRobinPolicy(),
		requestCh: make(chan *Request, opts.QueueSizeIO),
		// Worker shutdown events must always fit, whatever the
		// configured capacity.
		eventCh: make(chan sessionEvent, max(opts.QueueSizeEvent, opts.IOWorkers)),
		resolveCh: make(chan resolveOutcome, len(opts.ContactPoints)+1),
		done:      make(chan struct{}),
		hosts:     make(hostSet),
		newWorker: func(id int, sess *Session) IOWorker { return newIOWorker(id, sess) },
	}
}

// SetLoadBalancingPolicy replaces the load balancing policy. The contract
// requires this be called only before Connect.
func (s *Session) SetLoadBalancingPolicy(policy LoadBalancingPolicy) {
	s.policy = policy
}

// Keyspace returns the keyspace the session was connected with.
func (s *Session) Keyspace() string {
	return s.keyspace
}

// Connect starts the session loop, resolves the contact points and begins
// establishing the connection matrix across hosts and workers. The returned
// Future is resolved when every pool connection attempt has finished.
//
// Only the first Connect call transitions the session out of NEW; any
// subsequent call fails immediately without side effects.
func (s *Session) Connect(keyspace string) *Future {
	if !atomic.CompareAndSwapUint32(&s.state, sessionStateNew, sessionStateConnecting) {
		return NewErrorFuture(ClientError{ErrSessionState, "connect has already been called"})
	}

	fut := NewFuture()
	s.keyspace = keyspace
	s.setConnectFuture(fut)

	s.mutex.Lock()
	s.workers = make([]IOWorker, s.opts.IOWorkers)
	s.joined = make([]bool, s.opts.IOWorkers)
	for i := range s.workers {
		s.workers[i] = s.newWorker(i, s)
	}
	// A Shutdown racing with this Connect may have run before the workers
	// existed; its broadcast then reached nobody, so deliver it here.
	if atomic.LoadUint32(&s.state) == sessionStateDisconnecting {
		for _, w := range s.workers {
			w.Shutdown()
		}
	}
	s.mutex.Unlock()

	go s.run()

	return fut
}

// Shutdown requests an orderly teardown of every I/O worker. The returned
// Future is resolved once all workers have been joined and the session loop
// has stopped. Shutdown fails immediately unless the session is READY or
// CONNECTING.
func (s *Session) Shutdown() *Future {
	if !atomic.CompareAndSwapUint32(&s.state, sessionStateReady, sessionStateDisconnecting) &&
		!atomic.CompareAndSwapUint32(&s.state, sessionStateConnecting, sessionStateDisconnecting) {
		return NewErrorFuture(ClientError{ErrSessionState, "Session not connected"})
	}

	fut := NewFuture()
	s.setShutdownFuture(fut)

	s.mutex.Lock()
	for _, w := range s.workers {
		w.Shutdown()
	}
	s.mutex.Unlock()

	return fut
}

// Execute enqueues a pre-built request. It fails the request immediately
// with ClientError{Code: ErrRequestQueueFull} when the request queue is at
// capacity; the caller never blocks waiting for room.
func (s *Session) Execute(req *Request) *Future {
	req.requestId = atomic.AddUint32(&s.requestId, 1)
	select {
	case s.requestCh <- req:
	default:
		req.fut.SetError(ClientError{ErrRequestQueueFull, "request queue full"})
	}
	return req.fut
}

// Prepare builds a prepare request for the statement and executes it.
func (s *Session) Prepare(statement string) *Future {
	return s.Execute(NewPrepareRequest(statement))
}

// Query builds a query request for the statement and executes it.
func (s *Session) Query(statement string, params ...interface{}) *Future {
	return s.Execute(NewQueryRequest(statement, params...))
}

// Join blocks the calling goroutine until the session loop has exited. It
// returns immediately when Connect was never called.
func (s *Session) Join() {
	if atomic.LoadUint32(&s.state) == sessionStateNew {
		return
	}
	<-s.done
}

// notifyConnect reports one finished pool connection attempt for host.
// Called by I/O workers.
func (s *Session) notifyConnect(host Host) {
	select {
	case s.eventCh <- sessionEvent{kind: eventConnected, host: host}:
	default:
		// initPools refuses a connect the queue cannot hold, so an
		// overflow here is a bug, not a configuration problem.
		panic("atoll: event queue overflow")
	}
}

// notifyShutdown reports that a worker finished its teardown. Called by I/O
// workers.
func (s *Session) notifyShutdown() {
	select {
	case s.eventCh <- sessionEvent{kind: eventShutdown}:
	default:
		panic("atoll: event queue overflow")
	}
}

// run is the session loop. It is the only goroutine that touches the host
// set, the pending counters, the worker cursor and the policy after Init.
func (s *Session) run() {
	defer close(s.done)

	s.bootstrap()

	for !s.stopped {
		select {
		case req := <-s.requestCh:
			s.processRequests(req)
		case ev := <-s.eventCh:
			s.processEvents(ev)
		case res := <-s.resolveCh:
			s.onResolve(res)
		}
	}
}

// bootstrap seeds the host set from the configured contact points. Literal
// addresses are inserted synchronously; symbolic names go through the
// resolver and come back on the resolve channel.
func (s *Session) bootstrap() {
	for _, contactPoint := range s.opts.ContactPoints {
		if host, ok := hostFromLiteral(contactPoint, s.opts.Port); ok {
			s.hosts.insert(host)
		} else {
			hostname, port := splitContactPoint(contactPoint, s.opts.Port)
			s.pendingResolves++
			go s.resolve(hostname, port)
		}
	}
	if s.pendingResolves == 0 {
		s.initPools()
	}
}

func (s *Session) resolve(hostname string, port int) {
	hosts, err := s.opts.Resolver.Resolve(context.Background(), hostname, port)
	s.resolveCh <- resolveOutcome{hostname: hostname, port: port, hosts: hosts, err: err}
}

func (s *Session) onResolve(res resolveOutcome) {
	if res.err != nil {
		s.opts.Logger.Report(ResolveFailedEvent{newBaseEvent(), res.hostname, res.port, res.err}, s)
		s.resolveErrs = multierror.Append(s.resolveErrs, res.err)
	} else {
		for _, host := range res.hosts {
			s.hosts.insert(host)
		}
	}
	if s.pendingResolves--; s.pendingResolves == 0 {
		s.initPools()
	}
}

// initPools runs exactly once per connect attempt, when the last
// outstanding resolution has completed (or there was none to begin with).
func (s *Session) initPools() {
	if len(s.hosts) == 0 {
		s.failConnect(s.resolveFailure())
		return
	}

	s.pendingConns = len(s.hosts) * len(s.workers) * s.opts.CoreConnectionsPerHost
	// Every connection attempt and every worker teardown produces one
	// event, and all of them may be outstanding at once. Refusing the
	// connect here keeps an undersized queue from overflowing later,
	// when the only remaining response would be a panic.
	if required := s.pendingConns + len(s.workers); required > cap(s.eventCh) {
		s.pendingConns = 0
		s.failConnect(ClientError{ErrEventQueueFull, fmt.Sprintf(
			"event queue capacity %d cannot cover %d pending events",
			cap(s.eventCh), required)})
		return
	}
	s.opts.Logger.Report(PoolBootstrapEvent{newBaseEvent(), len(s.hosts), len(s.workers), s.pendingConns}, s)
	for _, host := range s.hosts.list() {
		for _, w := range s.workers {
			w.AddPool(host)
		}
	}
}

func (s *Session) resolveFailure() error {
	if err := s.resolveErrs.ErrorOrNil(); err != nil {
		return err
	}
	return ClientError{ErrResolveFailed, "no contact points could be resolved"}
}

// failConnect aborts a connect attempt that cannot reach readiness, either
// because the host set ended empty or because the event queue cannot hold
// the bootstrap traffic. The session fails the connect future and goes
// through the regular teardown instead of waiting forever.
func (s *Session) failConnect(err error) {
	if fut := s.takeConnectFuture(); fut != nil {
		fut.SetError(err)
	}

	if atomic.CompareAndSwapUint32(&s.state, sessionStateConnecting, sessionStateDisconnecting) {
		s.mutex.Lock()
		for _, w := range s.workers {
			w.Shutdown()
		}
		s.mutex.Unlock()
	}
}

// processRequests drains every request queued at wake-up time.
func (s *Session) processRequests(req *Request) {
	for {
		s.dispatch(req)
		select {
		case req = <-s.requestCh:
		default:
			return
		}
	}
}

// dispatch asks the policy for the request's host plan, then offers the
// request to the workers in rotation order starting at the cursor. The
// cursor only advances past a worker that accepted, so a refused rotation
// leaves it unchanged.
func (s *Session) dispatch(req *Request) {
	req.hosts = s.policy.NewQueryPlan()

	size := len(s.workers)
	start := s.currentWorker
	remaining := size
	for remaining != 0 {
		w := s.workers[start%size]
		if w.Execute(req) {
			s.currentWorker = (start + 1) % size
			break
		}
		start++
		remaining--
	}

	if remaining == 0 {
		s.opts.Logger.Report(AllWorkersBusyEvent{newBaseEvent(), size}, s)
		req.fut.SetError(ClientError{ErrNoWorkersAvailable, "all workers are busy"})
	}
}

// processEvents drains every event queued at wake-up time.
func (s *Session) processEvents(ev sessionEvent) {
	for {
		s.handleEvent(ev)
		select {
		case ev = <-s.eventCh:
		default:
			return
		}
	}
}

func (s *Session) handleEvent(ev sessionEvent) {
	switch ev.kind {
	case eventConnected:
		if s.pendingConns == 0 {
			// Readiness already happened; a spurious event must not
			// re-resolve the cleared connect future.
			return
		}
		if s.pendingConns--; s.pendingConns == 0 {
			if !atomic.CompareAndSwapUint32(&s.state, sessionStateConnecting, sessionStateReady) {
				// Shutdown won the race. Teardown is in flight and the
				// connect future fails once the workers are joined.
				return
			}
			s.policy.Init(s.hosts.list())
			s.opts.Logger.Report(SessionReadyEvent{newBaseEvent(), len(s.hosts)}, s)
			if fut := s.takeConnectFuture(); fut != nil {
				fut.SetResult(&Response{Code: OkCode})
			}
		}
	case eventShutdown:
		for i, w := range s.workers {
			if !s.joined[i] && w.ShutdownDone() {
				w.Join()
				s.joined[i] = true
			}
		}
		for _, joined := range s.joined {
			if !joined {
				return
			}
		}
		if fut := s.takeShutdownFuture(); fut != nil {
			fut.SetResult(&Response{Code: OkCode})
		}
		if fut := s.takeConnectFuture(); fut != nil {
			fut.SetError(ClientError{ErrConnectionShutdown,
				"session was shut down before becoming ready"})
		}
		atomic.StoreUint32(&s.state, sessionStateDisconnected)
		s.opts.Logger.Report(SessionClosedEvent{newBaseEvent()}, s)
		s.stopped = true
	}
}

func (s *Session) setConnectFuture(fut *Future) {
	s.futmut.Lock()
	s.connectFut = fut
	s.futmut.Unlock()
}

func (s *Session) takeConnectFuture() *Future {
	s.futmut.Lock()
	fut := s.connectFut
	s.connectFut = nil
	s.futmut.Unlock()
	return fut
}

func (s *Session) setShutdownFuture(fut *Future) {
	s.futmut.Lock()
	s.shutdownFut = fut
	s.futmut.Unlock()
}

func (s *Session) takeShutdownFuture() *Future {
	s.futmut.Lock()
	fut := s.shutdownFut
	s.shutdownFut = nil
	s.futmut.Unlock()
	return fut
}

func (s *Session) stateToString() string {
	switch atomic.LoadUint32(&s.state) {
	case sessionStateNew:
		return "new"
	case sessionStateConnecting:
		return "connecting"
	case sessionStateReady:
		return "ready"
	case sessionStateDisconnecting:
		return "disconnecting"
	case sessionStateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}
