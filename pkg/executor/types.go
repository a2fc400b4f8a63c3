// pkg/executor/types.go
package executor

import (
	"context"
	"time"

	"github.com/UriCaBa/initio/pkg/core"
	"github.com/UriCaBa/initio/pkg/process"
	"github.com/UriCaBa/initio/pkg/progress"
)

// Tool performs one flow's operation against an external program.
type Tool interface {
	// Validate rejects items whose identifier must not reach a command line.
	Validate(item *core.PackageItem) error

	// Apply runs a single attempt, streaming output lines to onLine.
	Apply(ctx context.Context, item *core.PackageItem, onLine process.LineFunc) (*process.Result, error)

	// Succeeded reports whether the attempt's result alone proves success.
	Succeeded(item *core.PackageItem, res *process.Result) bool

	// Verify re-queries the external program for the item's goal state.
	Verify(ctx context.Context, item *core.PackageItem) (bool, error)
}

// Policy bounds the retry sequence of a single item.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultPolicy allows two attempts four seconds apart.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 2, Backoff: 4 * time.Second}
}

// Outcome is the result of an item's full retry sequence. Attempts is zero
// when the item failed validation and nothing was launched.
type Outcome struct {
	Success  bool
	ExitCode int
	Attempts int
	Err      error
}

// Skipped reports an item rejected before any attempt.
func (o Outcome) Skipped() bool {
	return !o.Success && o.Attempts == 0 && !o.Cancelled()
}

// Cancelled reports a sequence interrupted by the run context.
func (o Outcome) Cancelled() bool {
	return isCancelled(o.Err)
}

// Observer receives run events. Every call happens on the goroutine that
// called Run or Execute.
type Observer interface {
	Log(line string)
	Output(item *core.PackageItem, stream process.Stream, line string)
	Progress(item *core.PackageItem, est progress.Estimate)
}

// ObserverFuncs adapts optional functions to Observer.
type ObserverFuncs struct {
	OnLog      func(line string)
	OnOutput   func(item *core.PackageItem, stream process.Stream, line string)
	OnProgress func(item *core.PackageItem, est progress.Estimate)
}

func (o ObserverFuncs) Log(line string) {
	if o.OnLog != nil {
		o.OnLog(line)
	}
}

func (o ObserverFuncs) Output(item *core.PackageItem, stream process.Stream, line string) {
	if o.OnOutput != nil {
		o.OnOutput(item, stream, line)
	}
}

func (o ObserverFuncs) Progress(item *core.PackageItem, est progress.Estimate) {
	if o.OnProgress != nil {
		o.OnProgress(item, est)
	}
}

// RunReport summarises one run over a list of items.
type RunReport struct {
	ID        string
	Flow      core.Flow
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Cancelled bool
	Started   time.Time
	Finished  time.Time
	Outcomes  []Outcome
	Log       []string
}

// Elapsed is the wall time of the run.
func (r *RunReport) Elapsed() time.Duration {
	return r.Finished.Sub(r.Started)
}
