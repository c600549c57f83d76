package atoll

import (
	"net"
	"sort"
	"strconv"
)

// Host is a cluster member identified by its resolved network address.
//
// Equality and ordering are address based, so a set of hosts is
// deduplicated by address.
type Host struct {
	addr string
}

// NewHost creates a Host from a resolved ip:port address.
func NewHost(ip net.IP, port int) Host {
	return Host{addr: net.JoinHostPort(ip.String(), strconv.Itoa(port))}
}

// Addr returns the ip:port address of the host.
func (h Host) Addr() string {
	return h.addr
}

// String implements fmt.Stringer.
func (h Host) String() string {
	return h.addr
}

// Less orders hosts by address.
func (h Host) Less(other Host) bool {
	return h.addr < other.addr
}

// hostFromLiteral parses a contact point as a literal address, either
// ip:port or a bare ip that gets the default port. A symbolic name is not a
// literal and reports false.
func hostFromLiteral(contactPoint string, defaultPort int) (Host, bool) {
	hostPart, portPart, err := net.SplitHostPort(contactPoint)
	port := defaultPort
	if err != nil {
		hostPart = contactPoint
	} else if port, err = strconv.Atoi(portPart); err != nil {
		return Host{}, false
	}
	ip := net.ParseIP(hostPart)
	if ip == nil {
		return Host{}, false
	}
	return NewHost(ip, port), true
}

// splitContactPoint splits a contact point into a name and a port,
// defaulting the port when the contact point carries none.
func splitContactPoint(contactPoint string, defaultPort int) (string, int) {
	name, portPart, err := net.SplitHostPort(contactPoint)
	if err != nil {
		return contactPoint, defaultPort
	}
	port, err := strconv.Atoi(portPart)
	if err != nil {
		return contactPoint, defaultPort
	}
	return name, port
}

// hostSet is a set of known cluster members keyed by address.
// It is only ever touched from the session loop goroutine.
type hostSet map[string]Host

func (set hostSet) insert(h Host) {
	set[h.addr] = h
}

// list returns the hosts ordered by address.
func (set hostSet) list() []Host {
	hosts := make([]Host, 0, len(set))
	for _, h := range set {
		hosts = append(hosts, h)
	}
	sort.Slice(hosts, func(i, j int) bool { return hosts[i].Less(hosts[j]) })
	return hosts
}
