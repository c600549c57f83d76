package decimal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/atolldb/go-atoll/decimal"
)

func TestMakeDecimalFromString(t *testing.T) {
	cases := []string{
		"0",
		"1",
		"-1",
		"0.1",
		"-12.34",
		"123456789.987654321",
		"99999999999999999999999999999999999999",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			dec, err := MakeDecimalFromString(src)
			require.NoError(t, err)
			assert.Equal(t, src, dec.String())
		})
	}
}

func TestMakeDecimalFromStringInvalid(t *testing.T) {
	_, err := MakeDecimalFromString("not-a-number")
	assert.Error(t, err)
}

func TestDecimalMarshalRoundTrip(t *testing.T) {
	cases := []string{
		"0",
		"-1.5",
		"3.1415926535897932",
		"-99999999999999999999999999999999999998",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			dec, err := MakeDecimalFromString(src)
			require.NoError(t, err)

			buf, err := dec.MarshalMsgpack()
			require.NoError(t, err)

			var back Decimal
			require.NoError(t, back.UnmarshalMsgpack(buf))
			assert.True(t, dec.Equal(back.Decimal),
				"expected %s, got %s", dec, back)
		})
	}
}

func TestDecimalMarshalOverflow(t *testing.T) {
	over := MakeDecimal(decimal.New(1, 39))
	_, err := over.MarshalMsgpack()
	assert.Equal(t, ErrDecimalOverflow, err)

	under := MakeDecimal(decimal.New(-1, 39))
	_, err = under.MarshalMsgpack()
	assert.Equal(t, ErrDecimalUnderflow, err)
}

func TestDecimalUnmarshalGarbage(t *testing.T) {
	var dec Decimal
	err := dec.UnmarshalMsgpack([]byte("@#$"))
	assert.Error(t, err)
}
