// Package uuid implements support for the Atoll uuid column type.
//
// Uuid values travel as a MessagePack extension whose payload is the 16
// byte binary form of the identifier:
//
//	+--------+-------------------+---------+==============+
//	| MP_EXT | length (optional) | MP_UUID | 16 raw bytes |
//	+--------+-------------------+---------+==============+
package uuid

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// ExtID is the uuid MessagePack extension type identifier.
const ExtID = 2

const uuidLen = 16

// UUID is an Atoll uuid column value.
type UUID struct {
	uuid.UUID
}

// MakeUUID creates a new UUID from a uuid.UUID.
func MakeUUID(id uuid.UUID) UUID {
	return UUID{UUID: id}
}

// MakeUUIDFromString creates a new UUID from its canonical string form.
func MakeUUIDFromString(src string) (UUID, error) {
	id, err := uuid.Parse(src)
	if err != nil {
		return UUID{}, err
	}
	return MakeUUID(id), nil
}

// NewUUID creates a new random UUID.
func NewUUID() UUID {
	return MakeUUID(uuid.New())
}

// MarshalMsgpack implements a custom msgpack marshaler.
func (id UUID) MarshalMsgpack() ([]byte, error) {
	return id.MarshalBinary()
}

// UnmarshalMsgpack implements a custom msgpack unmarshaler.
func (id *UUID) UnmarshalMsgpack(data []byte) error {
	if len(data) != uuidLen {
		return fmt.Errorf("msgpack: unexpected uuid payload length %d", len(data))
	}
	parsed, err := uuid.FromBytes(data)
	if err != nil {
		return fmt.Errorf("msgpack: can't create uuid from bytes: %w", err)
	}
	*id = MakeUUID(parsed)
	return nil
}

func uuidEncoder(e *msgpack.Encoder, v reflect.Value) ([]byte, error) {
	id := v.Interface().(UUID)

	return id.MarshalMsgpack()
}

func uuidDecoder(d *msgpack.Decoder, v reflect.Value, extLen int) error {
	b := make([]byte, extLen)

	switch n, err := d.Buffered().Read(b); {
	case err != nil:
		return err
	case n < extLen:
		return fmt.Errorf("msgpack: unexpected end of stream after %d uuid bytes", n)
	}

	ptr := v.Addr().Interface().(*UUID)
	return ptr.UnmarshalMsgpack(b)
}

func init() {
	msgpack.RegisterExtDecoder(ExtID, UUID{}, uuidDecoder)
	msgpack.RegisterExtEncoder(ExtID, UUID{}, uuidEncoder)
}
