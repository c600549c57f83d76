//go:build go_atoll_msgpack_v5
// +build go_atoll_msgpack_v5

package atoll

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

type encoder = msgpack.Encoder
type decoder = msgpack.Decoder

func newEncoder(w io.Writer) *encoder {
	return msgpack.NewEncoder(w)
}

func newDecoder(r io.Reader) *decoder {
	dec := msgpack.NewDecoder(r)
	dec.SetMapDecoder(func(dec *msgpack.Decoder) (interface{}, error) {
		return dec.DecodeUntypedMap()
	})
	dec.UseLooseInterfaceDecoding(true)
	return dec
}

func encodeUint(e *encoder, v uint64) error {
	return e.EncodeUint(v)
}

func encodeInt(e *encoder, v int64) error {
	return e.EncodeInt(v)
}
