package atoll

// LoadBalancingPolicy is a pluggable strategy choosing host preference
// order per request.
//
// A policy is exclusively owned by its Session: Init and NewQueryPlan are
// only ever called from the session loop goroutine, so implementations do
// not need to be safe for concurrent use. A policy may be replaced with
// Session.SetLoadBalancingPolicy only before Connect.
type LoadBalancingPolicy interface {
	// Init hands the policy the final host set once pool bootstrap has
	// finished.
	Init(hosts []Host)
	// NewQueryPlan returns an ordered host preference list for one request.
	// The returned slice is owned by the caller.
	NewQueryPlan() []Host
}

// RoundRobinPolicy cycles through the known hosts, starting every
// subsequent query plan one host further.
type RoundRobinPolicy struct {
	hosts   []Host
	current uint64
}

var _ LoadBalancingPolicy = (*RoundRobinPolicy)(nil)

func NewRoundRobinPolicy() *RoundRobinPolicy {
	return &RoundRobinPolicy{}
}

func (r *RoundRobinPolicy) Init(hosts []Host) {
	r.hosts = make([]Host, len(hosts))
	copy(r.hosts, hosts)
	r.current = 0
}

func (r *RoundRobinPolicy) NewQueryPlan() []Host {
	size := uint64(len(r.hosts))
	if size == 0 {
		return nil
	}
	plan := make([]Host, 0, size)
	start := r.current % size
	for i := uint64(0); i < size; i++ {
		plan = append(plan, r.hosts[(start+i)%size])
	}
	r.current++
	return plan
}
