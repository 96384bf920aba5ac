package testutil

import "time"

// Opaque client-generated user identifiers, as the web frontend sends them.
const (
	TestUserID1 = "6f1c2a8e-5b7d-4c1e-9a3f-0d2b4e6f8a10"
	TestUserID2 = "b2e4d6f8-1a3c-4e5b-8d7f-9c0a1b2c3d4e"
)

// FixedNow is a deterministic clock reading for time-sensitive tests.
var FixedNow = time.Date(2025, 12, 17, 19, 0, 0, 0, time.UTC)

// FixedClock returns a clock function that always reports FixedNow.
func FixedClock() func() time.Time {
	return func() time.Time { return FixedNow }
}
