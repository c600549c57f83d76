//go:build !go_atoll_msgpack_v5
// +build !go_atoll_msgpack_v5

package uuid

import (
	"gopkg.in/vmihailenco/msgpack.v2"
)

func init() {
	msgpack.RegisterExt(ExtID, &UUID{})
}
