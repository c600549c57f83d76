package atoll_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/atolldb/go-atoll"
)

func planAddrs(plan []Host) []string {
	addrs := make([]string, 0, len(plan))
	for _, h := range plan {
		addrs = append(addrs, h.Addr())
	}
	return addrs
}

func TestRoundRobinPolicyRotation(t *testing.T) {
	policy := NewRoundRobinPolicy()
	policy.Init([]Host{
		NewHost(net.ParseIP("10.0.0.1"), 9042),
		NewHost(net.ParseIP("10.0.0.2"), 9042),
		NewHost(net.ParseIP("10.0.0.3"), 9042),
	})

	assert.Equal(t, []string{"10.0.0.1:9042", "10.0.0.2:9042", "10.0.0.3:9042"},
		planAddrs(policy.NewQueryPlan()))
	assert.Equal(t, []string{"10.0.0.2:9042", "10.0.0.3:9042", "10.0.0.1:9042"},
		planAddrs(policy.NewQueryPlan()))
	assert.Equal(t, []string{"10.0.0.3:9042", "10.0.0.1:9042", "10.0.0.2:9042"},
		planAddrs(policy.NewQueryPlan()))
	assert.Equal(t, []string{"10.0.0.1:9042", "10.0.0.2:9042", "10.0.0.3:9042"},
		planAddrs(policy.NewQueryPlan()))
}

func TestRoundRobinPolicyEmpty(t *testing.T) {
	policy := NewRoundRobinPolicy()
	policy.Init(nil)
	assert.Nil(t, policy.NewQueryPlan())
}

func TestRoundRobinPolicyInitCopies(t *testing.T) {
	hosts := []Host{
		NewHost(net.ParseIP("10.0.0.1"), 9042),
		NewHost(net.ParseIP("10.0.0.2"), 9042),
	}
	policy := NewRoundRobinPolicy()
	policy.Init(hosts)
	hosts[0] = NewHost(net.ParseIP("10.9.9.9"), 9042)

	plan := policy.NewQueryPlan()
	require.Len(t, plan, 2)
	assert.Equal(t, "10.0.0.1:9042", plan[0].Addr())
}

func TestRoundRobinPolicyReinit(t *testing.T) {
	policy := NewRoundRobinPolicy()
	policy.Init([]Host{NewHost(net.ParseIP("10.0.0.1"), 9042)})
	policy.NewQueryPlan()
	policy.NewQueryPlan()

	policy.Init([]Host{
		NewHost(net.ParseIP("10.0.0.1"), 9042),
		NewHost(net.ParseIP("10.0.0.2"), 9042),
	})
	plan := policy.NewQueryPlan()
	require.Len(t, plan, 2)
	assert.Equal(t, "10.0.0.1:9042", plan[0].Addr(), "Init must reset the rotation")
}
