// Package datetime implements support for the Atoll timestamp column type.
//
// Timestamp values travel as a MessagePack extension whose payload is the
// number of milliseconds since the Unix epoch, stored as a signed 64-bit
// integer in big-endian order:
//
//	+--------+-------------------+--------------+-------------------+
//	| MP_EXT | length (optional) | MP_TIMESTAMP | milliseconds (8b) |
//	+--------+-------------------+--------------+-------------------+
//
// The millisecond resolution matches what an Atoll timestamp column stores,
// so sub-millisecond precision of a time.Time is dropped on encode.
package datetime

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ExtID is the timestamp MessagePack extension type identifier.
const ExtID = 3

const payloadLen = 8

// Datetime is an Atoll timestamp column value.
type Datetime struct {
	time time.Time
}

// MakeDatetime creates a new Datetime, truncated to the millisecond
// resolution of a timestamp column.
func MakeDatetime(t time.Time) Datetime {
	return Datetime{time: t.Truncate(time.Millisecond)}
}

// ToTime returns the time.Time the Datetime holds.
func (dt Datetime) ToTime() time.Time {
	return dt.time
}

// String implements fmt.Stringer.
func (dt Datetime) String() string {
	return dt.time.UTC().Format(time.RFC3339Nano)
}

// MarshalMsgpack implements a custom msgpack marshaler.
func (dt Datetime) MarshalMsgpack() ([]byte, error) {
	buf := make([]byte, payloadLen)
	binary.BigEndian.PutUint64(buf, uint64(dt.time.UnixMilli()))
	return buf, nil
}

// UnmarshalMsgpack implements a custom msgpack unmarshaler.
func (dt *Datetime) UnmarshalMsgpack(data []byte) error {
	if len(data) != payloadLen {
		return fmt.Errorf("msgpack: unexpected timestamp payload length %d", len(data))
	}
	ms := int64(binary.BigEndian.Uint64(data))
	*dt = Datetime{time: time.UnixMilli(ms).UTC()}
	return nil
}

func datetimeEncoder(e *msgpack.Encoder, v reflect.Value) ([]byte, error) {
	dt := v.Interface().(Datetime)

	return dt.MarshalMsgpack()
}

func datetimeDecoder(d *msgpack.Decoder, v reflect.Value, extLen int) error {
	b := make([]byte, extLen)

	switch n, err := d.Buffered().Read(b); {
	case err != nil:
		return err
	case n < extLen:
		return fmt.Errorf("msgpack: unexpected end of stream after %d timestamp bytes", n)
	}

	ptr := v.Addr().Interface().(*Datetime)
	return ptr.UnmarshalMsgpack(b)
}

func init() {
	msgpack.RegisterExtDecoder(ExtID, Datetime{}, datetimeDecoder)
	msgpack.RegisterExtEncoder(ExtID, Datetime{}, datetimeEncoder)
}
