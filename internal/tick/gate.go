package tick

import "time"

// Gate rate-limits a periodic action to at most one fire per interval of
// wall-clock time, measured from the previous fire rather than from a fixed
// schedule. Drift is tolerated; a double fire within one interval is not.
//
// A Gate is not safe for concurrent use; every periodic behavior owns its
// own Gate and drives it from the tick loop.
type Gate struct {
	every time.Duration
	last  time.Time
}

// NewGate returns a gate that is immediately due on its first check.
func NewGate(every time.Duration) *Gate {
	return &Gate{every: every}
}

// Due reports whether the interval has elapsed since the previous fire and,
// if so, records now as the new fire time.
func (g *Gate) Due(now time.Time) bool {
	if !g.last.IsZero() && now.Sub(g.last) <= g.every {
		return false
	}
	g.last = now
	return true
}

// Interval returns the configured minimum spacing between fires.
func (g *Gate) Interval() time.Duration {
	return g.every
}

// SetInterval adjusts the spacing; the last fire time is preserved so a
// shorter interval cannot cause an immediate double fire.
func (g *Gate) SetInterval(every time.Duration) {
	g.every = every
}
