// Package clock abstracts wall-clock time so tick catch-up, farming growth and
// vendor rotation can be driven deterministically in tests.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock.
type Real struct{}

// Now returns the current system time.
func (Real) Now() time.Time { return time.Now() }

// Fixed is a settable clock for tests.
type Fixed struct {
	Time time.Time
}

// Now returns the configured time.
func (f *Fixed) Now() time.Time { return f.Time }

// Advance moves the fixed clock forward.
func (f *Fixed) Advance(d time.Duration) { f.Time = f.Time.Add(d) }

// Millis returns t as milliseconds since the epoch, the unit persisted in
// generator lastTick and crop plantedAt fields.
func Millis(t time.Time) int64 { return t.UnixMilli() }
