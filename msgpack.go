//go:build !go_atoll_msgpack_v5
// +build !go_atoll_msgpack_v5

package atoll

import (
	"io"

	"gopkg.in/vmihailenco/msgpack.v2"
)

type encoder = msgpack.Encoder
type decoder = msgpack.Decoder

func newEncoder(w io.Writer) *encoder {
	return msgpack.NewEncoder(w)
}

func newDecoder(r io.Reader) *decoder {
	return msgpack.NewDecoder(r)
}

func encodeUint(e *encoder, v uint64) error {
	return e.EncodeUint(uint(v))
}

func encodeInt(e *encoder, v int64) error {
	return e.EncodeInt(int(v))
}
