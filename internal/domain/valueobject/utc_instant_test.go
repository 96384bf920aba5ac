package valueobject_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truecost/mortgage-service/internal/domain/valueobject"
)

func TestParseUTCInstant(t *testing.T) {
	want := time.Date(2025, 12, 17, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "zulu designator", raw: "2025-12-17T19:00:00Z", want: want},
		{name: "explicit positive offset", raw: "2025-12-18T00:30:00+05:30", want: want},
		{name: "explicit negative offset", raw: "2025-12-17T14:00:00-05:00", want: want},
		{name: "compact offset", raw: "2025-12-18T00:30:00+0530", want: want},
		{name: "fractional seconds", raw: "2025-12-17T19:00:00.250Z", want: want.Add(250 * time.Millisecond)},
		{name: "zone-less read as UTC", raw: "2025-12-17T19:00:00", want: want},
		{name: "space separator", raw: "2025-12-17 19:00:00", want: want},
		{name: "minute precision", raw: "2025-12-17T19:00", want: want},
		{name: "date only", raw: "2025-12-17", want: time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC)},
		{name: "surrounding whitespace", raw: "  2025-12-17T19:00:00Z ", want: want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := valueobject.ParseUTCInstant(tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time()), "expected %s, got %s", tt.want, got.Time())
			assert.Equal(t, time.UTC, got.Time().Location())
		})
	}
}

func TestParseUTCInstant_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "tomorrow", "17/12/2025 19:00", "2025-13-40T99:00:00Z"} {
		t.Run(raw, func(t *testing.T) {
			_, err := valueobject.ParseUTCInstant(raw)
			assert.Error(t, err)
		})
	}
}

func TestUTCInstant_RoundTripsThroughString(t *testing.T) {
	in, err := valueobject.ParseUTCInstant("2025-12-17T19:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, "2025-12-17T19:00:00Z", in.String())

	again, err := valueobject.ParseUTCInstant(in.String())
	require.NoError(t, err)
	assert.True(t, in.Equal(again))
}

func TestUTCInstant_MarshalJSON(t *testing.T) {
	in := valueobject.NewUTCInstant(time.Date(2025, 12, 18, 0, 30, 0, 0, time.FixedZone("IST", 19800)))

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-12-17T19:00:00Z"`, string(data))
}

func TestUTCInstant_NotAfter(t *testing.T) {
	now := valueobject.NewUTCInstant(time.Date(2025, 12, 17, 19, 0, 0, 0, time.UTC))
	earlier := valueobject.NewUTCInstant(now.Time().Add(-time.Minute))
	later := valueobject.NewUTCInstant(now.Time().Add(time.Minute))

	assert.True(t, earlier.NotAfter(now))
	assert.True(t, now.NotAfter(now))
	assert.False(t, later.NotAfter(now))
}
