// pkg/progress/eta_test.go
package progress

import (
	"testing"
	"time"
)

func TestComputeNeverNegative(t *testing.T) {
	for total := -1; total <= 12; total++ {
		for completed := -2; completed <= total+2; completed++ {
			for _, elapsed := range []time.Duration{-time.Second, 0, time.Millisecond, 90 * time.Second, 3 * time.Hour} {
				e := Compute(elapsed, completed, total)
				if e.Remaining < 0 {
					t.Fatalf("Compute(%s, %d, %d) remaining = %s", elapsed, completed, total, e.Remaining)
				}
				if e.Total < 1 {
					t.Fatalf("total not clamped: %d", e.Total)
				}
				if p := e.Percent(); p < 0 || p > 100 {
					t.Fatalf("percent = %f", p)
				}
			}
		}
	}
}

func TestComputeCalculating(t *testing.T) {
	e := Compute(10*time.Second, 0, 5)
	if !e.Calculating() {
		t.Fatal("expected calculating")
	}
	if e.String() != "ETA: calculating..." {
		t.Fatalf("String() = %q", e.String())
	}
}

func TestComputeAverage(t *testing.T) {
	e := Compute(2*time.Minute, 2, 5)
	if e.Remaining != 3*time.Minute {
		t.Fatalf("remaining = %s, want 3m", e.Remaining)
	}
	if e.String() != "ETA: 03:00 remaining" {
		t.Fatalf("String() = %q", e.String())
	}
}

func TestComputeDone(t *testing.T) {
	e := Compute(75*time.Second, 4, 4)
	if e.Remaining != 0 || !e.Done() {
		t.Fatalf("estimate = %+v", e)
	}
	if e.String() != "Completed in 01:15" {
		t.Fatalf("String() = %q", e.String())
	}
}

func TestClock(t *testing.T) {
	if got := Clock(61*time.Minute + 5*time.Second); got != "61:05" {
		t.Fatalf("Clock = %q", got)
	}
}

func TestTracker(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(3, func() time.Time { return now })

	now = now.Add(30 * time.Second)
	e := tr.Step()
	if e.Remaining != time.Minute {
		t.Fatalf("remaining = %s", e.Remaining)
	}
	if tr.Elapsed() != 30*time.Second {
		t.Fatalf("elapsed = %s", tr.Elapsed())
	}
}
