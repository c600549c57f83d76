// Package decimal implements support for the Atoll decimal column type.
//
// Decimal values travel as a MessagePack extension whose payload is the
// canonical string form of the number:
//
//	+--------+-------------------+------------+================+
//	| MP_EXT | length (optional) | MP_DECIMAL | decimal string |
//	+--------+-------------------+------------+================+
package decimal

import (
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// ExtID is the decimal MessagePack extension type identifier.
	ExtID = 1

	// decimalPrecision is the total number of digits a decimal column
	// holds, before and after the decimal point combined.
	decimalPrecision = 38
)

var (
	one = decimal.NewFromInt(1)
	// 10^decimalPrecision - 1
	maxSupportedDecimal = decimal.New(1, decimalPrecision).Sub(one)
	// -10^decimalPrecision + 1
	minSupportedDecimal = maxSupportedDecimal.Neg()
)

var (
	ErrDecimalOverflow = fmt.Errorf("msgpack: decimal number is bigger than"+
		" maximum supported number (10^%d - 1)", decimalPrecision)
	ErrDecimalUnderflow = fmt.Errorf("msgpack: decimal number is lesser than"+
		" minimum supported number (-10^%d + 1)", decimalPrecision)
)

// Decimal is an Atoll decimal column value.
type Decimal struct {
	decimal.Decimal
}

// MakeDecimal creates a new Decimal from a decimal.Decimal.
func MakeDecimal(decimal decimal.Decimal) Decimal {
	return Decimal{Decimal: decimal}
}

// MakeDecimalFromString creates a new Decimal from a string.
func MakeDecimalFromString(src string) (Decimal, error) {
	result := Decimal{}
	dec, err := decimal.NewFromString(src)
	if err != nil {
		return result, err
	}
	result = MakeDecimal(dec)
	return result, nil
}

// MarshalMsgpack implements a custom msgpack marshaler.
func (d Decimal) MarshalMsgpack() ([]byte, error) {
	switch {
	case d.GreaterThan(maxSupportedDecimal):
		return nil, ErrDecimalOverflow
	case d.LessThan(minSupportedDecimal):
		return nil, ErrDecimalUnderflow
	}
	return []byte(d.String()), nil
}

// UnmarshalMsgpack implements a custom msgpack unmarshaler.
func (d *Decimal) UnmarshalMsgpack(data []byte) error {
	dec, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("msgpack: can't decode decimal string (%q): %w", data, err)
	}
	*d = MakeDecimal(dec)
	return nil
}

func decimalEncoder(e *msgpack.Encoder, v reflect.Value) ([]byte, error) {
	dec := v.Interface().(Decimal)

	return dec.MarshalMsgpack()
}

func decimalDecoder(d *msgpack.Decoder, v reflect.Value, extLen int) error {
	b := make([]byte, extLen)

	switch n, err := d.Buffered().Read(b); {
	case err != nil:
		return err
	case n < extLen:
		return fmt.Errorf("msgpack: unexpected end of stream after %d decimal bytes", n)
	}

	ptr := v.Addr().Interface().(*Decimal)
	return ptr.UnmarshalMsgpack(b)
}

func init() {
	msgpack.RegisterExtDecoder(ExtID, Decimal{}, decimalDecoder)
	msgpack.RegisterExtEncoder(ExtID, Decimal{}, decimalEncoder)
}
