package atoll

import (
	"context"
	"net"
)

// Resolver turns a symbolic contact point into one or more resolved
// addresses.
//
// Resolve may block; the session runs it on its own goroutine and delivers
// the outcome back onto the session loop, so implementations never observe
// concurrent calls for one session.
type Resolver interface {
	Resolve(ctx context.Context, hostname string, port int) ([]Host, error)
}

// netResolver is the default Resolver backed by the system resolver.
type netResolver struct{}

var _ Resolver = netResolver{}

func (netResolver) Resolve(ctx context.Context, hostname string, port int) ([]Host, error) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, hostname)
	if err != nil {
		return nil, err
	}
	hosts := make([]Host, 0, len(addrs))
	for _, addr := range addrs {
		hosts = append(hosts, NewHost(addr.IP, port))
	}
	return hosts, nil
}

// resolveOutcome is the completion of one asynchronous resolution, consumed
// by the session loop.
type resolveOutcome struct {
	hostname string
	port     int
	hosts    []Host
	err      error
}
