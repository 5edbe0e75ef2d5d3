package gwutils

import "time"

// GapTimer gates an action to run at most once per gap of wall-clock time.
// The first call to Next fires immediately.
type GapTimer struct {
	gap  time.Duration
	last time.Time
}

// NewGapTimer creates a GapTimer with the given gap
func NewGapTimer(gap time.Duration) *GapTimer {
	return &GapTimer{
		gap:  gap,
		last: time.Now().Add(-gap),
	}
}

// Next reports whether the gap has elapsed since the last fire, rearming the
// timer when it has
func (t *GapTimer) Next() bool {
	now := time.Now()
	if now.Sub(t.last) >= t.gap {
		t.last = now
		return true
	}
	return false
}
