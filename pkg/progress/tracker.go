// pkg/progress/tracker.go
package progress

import "time"

// Tracker measures a run against a clock.
type Tracker struct {
	total     int
	completed int
	started   time.Time
	now       func() time.Time
}

// NewTracker starts tracking total steps. A nil now uses time.Now.
func NewTracker(total int, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{total: total, started: now(), now: now}
}

// Step marks one more step as finished and returns the new estimate.
func (t *Tracker) Step() Estimate {
	t.completed++
	return t.Estimate()
}

func (t *Tracker) Estimate() Estimate {
	return Compute(t.now().Sub(t.started), t.completed, t.total)
}

func (t *Tracker) Elapsed() time.Duration {
	return t.now().Sub(t.started)
}
