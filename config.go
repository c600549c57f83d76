package atoll

import "time"

// Opts is a way to configure a Session.
type Opts struct {
	// ContactPoints are seed addresses or hostnames used to bootstrap
	// cluster discovery. Each entry is either ip[:port] or hostname[:port];
	// entries without a port use Port.
	ContactPoints []string
	// Port is the default Atoll protocol port for contact points that do
	// not carry one explicitly. By default it is 9042.
	Port int
	// IOWorkers is a number of I/O worker goroutines, each owning its own
	// subset of per-host connection pools. By default one worker is used.
	IOWorkers int
	// CoreConnectionsPerHost is a number of connections every I/O worker
	// opens to every host during pool bootstrap. By default it is 2.
	CoreConnectionsPerHost int
	// QueueSizeIO is a capacity of the request queue between application
	// goroutines and the session loop. Execute fails with
	// ClientError{Code: ErrRequestQueueFull} when the queue is full; the
	// caller never blocks on enqueue. By default it is 4096.
	QueueSizeIO int
	// QueueSizeEvent is a capacity of the event queue between I/O workers
	// and the session loop. Event loss is not acceptable, so it must cover
	// the maximum outstanding event count (bounded by hosts times workers
	// times CoreConnectionsPerHost, plus one teardown event per worker).
	// Connect fails with ClientError{Code: ErrEventQueueFull} when the
	// capacity cannot cover the connection matrix. By default it is 4096.
	QueueSizeEvent int
	// ConnectTimeout is a timeout for a single network dial performed by an
	// I/O worker. By default it is 500ms.
	ConnectTimeout time.Duration
	// User for logging in to Atoll.
	User string
	// Pass is the user password for logging in to Atoll.
	Pass string
	// Logger is user specified logger used for session events.
	Logger Logger
	// Resolver turns symbolic contact points into addresses. By default
	// the system resolver is used.
	Resolver Resolver
	// Transport is the connection type, by default the connection is
	// unencrypted.
	Transport string
	// Ssl is used only if the Transport == 'ssl' is set.
	Ssl SslOpts
}

// Clone returns a copy of the Opts object.
func (opts Opts) Clone() Opts {
	optsCopy := opts
	optsCopy.ContactPoints = make([]string, len(opts.ContactPoints))
	copy(optsCopy.ContactPoints, opts.ContactPoints)

	return optsCopy
}

func (opts *Opts) fillDefaults() {
	if opts.Port == 0 {
		opts.Port = 9042
	}
	if opts.IOWorkers == 0 {
		opts.IOWorkers = 1
	}
	if opts.CoreConnectionsPerHost == 0 {
		opts.CoreConnectionsPerHost = 2
	}
	if opts.QueueSizeIO == 0 {
		opts.QueueSizeIO = 4096
	}
	if opts.QueueSizeEvent == 0 {
		opts.QueueSizeEvent = 4096
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 500 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = SimpleLogger{}
	}
	if opts.Resolver == nil {
		opts.Resolver = netResolver{}
	}
}
