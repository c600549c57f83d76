package datetime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/atolldb/go-atoll/datetime"
)

func TestMakeDatetimeTruncates(t *testing.T) {
	src := time.Date(2024, 3, 17, 12, 30, 45, 123456789, time.UTC)
	dt := MakeDatetime(src)
	assert.Equal(t, int64(123), int64(dt.ToTime().Nanosecond())/int64(time.Millisecond))
}

func TestDatetimeMarshalRoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Unix(0, 0).UTC(),
		time.Date(2024, 3, 17, 12, 30, 45, 123000000, time.UTC),
		time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, src := range cases {
		t.Run(src.Format(time.RFC3339), func(t *testing.T) {
			dt := MakeDatetime(src)

			buf, err := dt.MarshalMsgpack()
			require.NoError(t, err)
			require.Len(t, buf, 8)

			var back Datetime
			require.NoError(t, back.UnmarshalMsgpack(buf))
			assert.True(t, dt.ToTime().Equal(back.ToTime()),
				"expected %s, got %s", dt, back)
		})
	}
}

func TestDatetimeUnmarshalWrongLength(t *testing.T) {
	var dt Datetime
	err := dt.UnmarshalMsgpack([]byte{1, 2, 3})
	assert.Error(t, err)
}
