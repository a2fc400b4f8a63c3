// pkg/core/status.go
package core

import "fmt"

// StatusKind enumerates the per-item states of an operation.
type StatusKind int

const (
	StatusPending StatusKind = iota
	StatusRunning
	StatusVerifying
	StatusRetrying
	StatusSucceeded
	StatusFailed
)

func (k StatusKind) String() string {
	switch k {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusVerifying:
		return "verifying"
	case StatusRetrying:
		return "retrying"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(k))
	}
}

// ParseStatusKind is the inverse of StatusKind.String.
func ParseStatusKind(s string) (StatusKind, error) {
	for k := StatusPending; k <= StatusFailed; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return StatusPending, fmt.Errorf("unknown status kind %q", s)
}

// Status is the current state of an item. Attempt and MaxAttempts are only
// meaningful for StatusRetrying, Reason for StatusFailed. Note replaces the
// default text of a pending item (e.g. "Detected").
type Status struct {
	Kind        StatusKind
	Attempt     int
	MaxAttempts int
	Reason      string
	Note        string
}

func Pending() Status { return Status{Kind: StatusPending} }

// PendingNote is a pending status with custom display text.
func PendingNote(note string) Status { return Status{Kind: StatusPending, Note: note} }

func Running() Status { return Status{Kind: StatusRunning} }

func Verifying() Status { return Status{Kind: StatusVerifying} }

// Retrying marks attempt n of max as about to run.
func Retrying(n, max int) Status {
	return Status{Kind: StatusRetrying, Attempt: n, MaxAttempts: max}
}

func Succeeded() Status { return Status{Kind: StatusSucceeded} }

func Failed(reason string) Status { return Status{Kind: StatusFailed, Reason: reason} }

// Text renders the status the way it is shown to the user.
func (s Status) Text(flow Flow) string {
	switch s.Kind {
	case StatusPending:
		if s.Note != "" {
			return s.Note
		}
		return "Pending"
	case StatusRunning:
		if flow == FlowRemove {
			return "Removing..."
		}
		return "Installing..."
	case StatusVerifying:
		return "Verifying..."
	case StatusRetrying:
		return fmt.Sprintf("Retrying (%d/%d)", s.Attempt, s.MaxAttempts)
	case StatusSucceeded:
		if flow == FlowRemove {
			return "Removed"
		}
		return "Installed"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
