package utils

import "time"

// Clock is injected everywhere the engine needs "now", replacing the
// teacher's direct time.Now() calls (DESIGN NOTES §9 "Global mutable
// state" — collaborators are injected, not reached for globally).
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock, backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock is a test Clock that always returns the same instant.
type FixedClock struct{ At time.Time }

func (f FixedClock) Now() time.Time { return f.At }
