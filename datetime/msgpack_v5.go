//go:build go_atoll_msgpack_v5
// +build go_atoll_msgpack_v5

package datetime

import (
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	msgpack.RegisterExt(ExtID, (*Datetime)(nil))
}
