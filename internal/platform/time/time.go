// Package time contains clock seams and business location helpers
package time

import (
	"sync"
	"time"
)

// Clock yields the reference instant for a request
// callers read it once and thread the value through
type Clock interface {
	Now() time.Time
}

type system struct{ loc *time.Location }

func (s system) Now() time.Time { return time.Now().In(s.loc) }

// System returns the wall clock reporting instants in loc
func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return system{loc: loc}
}

// Fixed is a settable clock for tests and replays
type Fixed struct {
	mu sync.RWMutex
	t  time.Time
}

// NewFixed returns a Fixed clock stopped at t
func NewFixed(t time.Time) *Fixed { return &Fixed{t: t} }

// Now implements Clock
func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.t
}

// Set moves the clock to t
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.t = t
	f.mu.Unlock()
}

// Advance moves the clock forward by d
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

// StartOfDay returns midnight of the day containing t in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
