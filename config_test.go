package atoll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/atolldb/go-atoll"
)

func TestOptsClone(t *testing.T) {
	opts := Opts{
		ContactPoints: []string{"127.0.0.1:9042", "127.0.0.2:9042"},
		IOWorkers:     4,
	}
	clone := opts.Clone()
	clone.ContactPoints[0] = "10.0.0.1:9042"

	assert.Equal(t, "127.0.0.1:9042", opts.ContactPoints[0],
		"Clone must not share the contact point slice")
	assert.Equal(t, 4, clone.IOWorkers)
}
