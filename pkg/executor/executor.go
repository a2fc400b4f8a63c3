// pkg/executor/executor.go
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/UriCaBa/initio/pkg/core"
	"github.com/UriCaBa/initio/pkg/process"
)

// Config configures an Executor
type Config struct {
	Tool     Tool
	Flow     core.Flow
	Policy   Policy
	Logger   *logrus.Logger
	Notifier core.ChangeNotifier
	Observer Observer

	// Now and Sleep are replaced in tests.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// Executor drives items through the retry and verification state machine,
// one at a time.
type Executor struct {
	tool     Tool
	flow     core.Flow
	policy   Policy
	logger   *logrus.Logger
	notifier core.ChangeNotifier
	observer Observer
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	log      []string
}

// New creates an Executor. Zero policy fields fall back to DefaultPolicy.
func New(cfg *Config) (*Executor, error) {
	if cfg == nil || cfg.Tool == nil {
		return nil, errors.New("executor: a tool is required")
	}
	policy := cfg.Policy
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = DefaultPolicy().MaxAttempts
	}
	if policy.Backoff < 0 {
		policy.Backoff = 0
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	observer := cfg.Observer
	if observer == nil {
		observer = ObserverFuncs{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	return &Executor{
		tool:     cfg.Tool,
		flow:     cfg.Flow,
		policy:   policy,
		logger:   logger,
		notifier: cfg.Notifier,
		observer: observer,
		now:      now,
		sleep:    sleep,
	}, nil
}

// Execute runs the full retry sequence for one item. Only the item's status
// is changed; the installed flag is left to the caller.
func (e *Executor) Execute(ctx context.Context, item *core.PackageItem) Outcome {
	before := item.Status
	log := e.logger.WithField("id", item.ID)
	maxAttempts := e.policy.MaxAttempts

	// 1. Validate once; a malformed id never reaches a process
	if err := e.tool.Validate(item); err != nil {
		e.setStatus(item, core.Failed(err.Error()))
		e.logf("  Skipping %s: %v", item.Name, err)
		log.WithError(err).Warn("Rejected invalid identifier")
		return Outcome{ExitCode: -1, Err: err}
	}

	out := Outcome{ExitCode: -1}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return e.cancelled(item, before, out)
		}
		out.Attempts = attempt
		e.setStatus(item, core.Running())
		alog := log.WithField("attempt", attempt)

		// 2. Run the attempt
		res, err := e.apply(ctx, item)
		if isCancelled(err) {
			return e.cancelled(item, before, out)
		}
		if res != nil {
			out.ExitCode = res.ExitCode
		}
		if errors.Is(err, process.ErrLaunch) {
			out.Err = Classify(res, err)
			e.fail(item, out.Err)
			alog.WithError(err).Error("Could not launch tool")
			return out
		}

		// 3. Success indicators in the output
		if err == nil && e.tool.Succeeded(item, res) {
			return e.succeed(item, out)
		}

		// 4. Ask the tool directly, also after a timeout
		e.setStatus(item, core.Verifying())
		ok, verr := e.tool.Verify(ctx, item)
		if isCancelled(verr) {
			return e.cancelled(item, before, out)
		}
		if verr != nil {
			alog.WithError(verr).Debug("Verification failed")
		}
		if ok {
			return e.succeed(item, out)
		}

		// 5. Classify and maybe retry
		out.Err = Classify(res, err)
		alog.WithError(out.Err).Info("Attempt failed")
		if !errors.Is(out.Err, ErrTransient) || attempt == maxAttempts {
			e.fail(item, out.Err)
			return out
		}

		e.setStatus(item, core.Retrying(attempt+1, maxAttempts))
		e.logf("  Retry (%d/%d) for %s...", attempt+1, maxAttempts, item.Name)
		if err := e.sleep(ctx, e.policy.Backoff); err != nil {
			return e.cancelled(item, before, out)
		}
	}
	return out
}

// apply runs the tool in a goroutine and forwards its output lines to the
// observer from this goroutine.
func (e *Executor) apply(ctx context.Context, item *core.PackageItem) (*process.Result, error) {
	type line struct {
		stream process.Stream
		text   string
	}
	type result struct {
		res *process.Result
		err error
	}

	lines := make(chan line, 64)
	done := make(chan result, 1)
	go func() {
		res, err := e.tool.Apply(ctx, item, func(stream process.Stream, text string) {
			lines <- line{stream: stream, text: text}
		})
		done <- result{res: res, err: err}
	}()

	for {
		select {
		case l := <-lines:
			e.observer.Output(item, l.stream, l.text)
		case r := <-done:
			for {
				select {
				case l := <-lines:
					e.observer.Output(item, l.stream, l.text)
				default:
					return r.res, r.err
				}
			}
		}
	}
}

func (e *Executor) succeed(item *core.PackageItem, out Outcome) Outcome {
	out.Success = true
	out.Err = nil
	e.setStatus(item, core.Succeeded())
	return out
}

func (e *Executor) fail(item *core.PackageItem, err error) {
	e.setStatus(item, core.Failed(err.Error()))
}

// cancelled puts the item back to the status it had before the sequence.
func (e *Executor) cancelled(item *core.PackageItem, before core.Status, out Outcome) Outcome {
	out.Success = false
	out.Err = fmt.Errorf("%w: %s", process.ErrCancelled, item.ID)
	e.setStatus(item, before)
	return out
}

func (e *Executor) setStatus(item *core.PackageItem, s core.Status) {
	item.Status = s
	core.Notify(e.notifier, item)
}

// logf appends a timestamped line to the run log.
func (e *Executor) logf(format string, args ...interface{}) {
	line := fmt.Sprintf("[%s] %s", e.now().Format("15:04:05"), fmt.Sprintf(format, args...))
	e.log = append(e.log, line)
	e.observer.Log(line)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
