// pkg/progress/eta.go
package progress

import (
	"fmt"
	"time"
)

// Estimate is a snapshot of run progress.
type Estimate struct {
	Completed int
	Total     int
	Elapsed   time.Duration
	Remaining time.Duration // Zero while calculating or once done
}

// Compute derives an estimate from elapsed time and step counts. Total is
// clamped to at least 1 and completed to [0, total], so the result is never
// negative.
func Compute(elapsed time.Duration, completed, total int) Estimate {
	if total < 1 {
		total = 1
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	if elapsed < 0 {
		elapsed = 0
	}

	e := Estimate{Completed: completed, Total: total, Elapsed: elapsed}
	if completed > 0 && completed < total {
		perStep := elapsed / time.Duration(completed)
		e.Remaining = perStep * time.Duration(total-completed)
	}
	return e
}

// Calculating reports whether no step has finished yet.
func (e Estimate) Calculating() bool {
	return e.Completed == 0
}

// Done reports whether every step has finished.
func (e Estimate) Done() bool {
	return e.Completed >= e.Total
}

// Percent is the completed share in [0, 100].
func (e Estimate) Percent() float64 {
	if e.Total < 1 {
		return 0
	}
	return float64(e.Completed) * 100 / float64(e.Total)
}

func (e Estimate) String() string {
	switch {
	case e.Done():
		return "Completed in " + Clock(e.Elapsed)
	case e.Calculating():
		return "ETA: calculating..."
	default:
		return fmt.Sprintf("ETA: %s remaining", Clock(e.Remaining))
	}
}

// Clock formats d as mm:ss, minutes not wrapping at the hour.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
