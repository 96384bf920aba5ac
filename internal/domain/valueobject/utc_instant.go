package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// UTCInstant is a point in time that is always held in UTC. Values parsed
// without a zone designator are read as UTC.
type UTCInstant struct {
	t time.Time
}

// isoLayouts are tried in order. Fractional seconds are optional in every
// layout that carries seconds.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// NewUTCInstant converts t to UTC.
func NewUTCInstant(t time.Time) UTCInstant {
	return UTCInstant{t: t.UTC()}
}

// ParseUTCInstant parses an ISO-8601 timestamp. A trailing "Z" or an explicit
// offset is honoured and the result converted to UTC.
func ParseUTCInstant(raw string) (UTCInstant, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return UTCInstant{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewUTCInstant(t), nil
		}
	}
	return UTCInstant{}, fmt.Errorf("invalid ISO-8601 timestamp %q", raw)
}

// Time returns the instant as a UTC time.Time.
func (u UTCInstant) Time() time.Time {
	return u.t
}

// IsZero reports whether the instant is unset.
func (u UTCInstant) IsZero() bool {
	return u.t.IsZero()
}

// NotAfter reports whether u is at or before other.
func (u UTCInstant) NotAfter(other UTCInstant) bool {
	return !u.t.After(other.t)
}

// Equal reports whether both values denote the same instant.
func (u UTCInstant) Equal(other UTCInstant) bool {
	return u.t.Equal(other.t)
}

// String formats the instant as RFC 3339 with a "Z" designator.
func (u UTCInstant) String() string {
	return u.t.Format(time.RFC3339Nano)
}

// MarshalJSON encodes the instant as an RFC 3339 UTC string.
func (u UTCInstant) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}
