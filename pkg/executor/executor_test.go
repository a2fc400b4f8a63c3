// pkg/executor/executor_test.go
package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/UriCaBa/initio/pkg/core"
	"github.com/UriCaBa/initio/pkg/process"
	"github.com/UriCaBa/initio/pkg/progress"
	"github.com/UriCaBa/initio/pkg/validate"
	"github.com/UriCaBa/initio/pkg/winget"
)

// recordingRunner stands in for the winget executable.
type recordingRunner struct {
	calls   [][]string
	respond func(ctx context.Context, args []string) (*process.Result, error)
}

func (r *recordingRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (*process.Result, error) {
	r.calls = append(r.calls, args)
	return r.respond(ctx, args)
}

func (r *recordingRunner) RunLines(ctx context.Context, name string, args []string, timeout time.Duration, onLine process.LineFunc) (*process.Result, error) {
	res, err := r.Run(ctx, name, args, timeout)
	if res != nil && onLine != nil {
		for _, l := range strings.Split(res.Stdout, "\n") {
			if l != "" {
				onLine(process.Stdout, l)
			}
		}
	}
	return res, err
}

func (r *recordingRunner) installs() int {
	n := 0
	for _, c := range r.calls {
		if c[0] == "install" {
			n++
		}
	}
	return n
}

var notFound = &process.Result{ExitCode: 1, Stdout: "No installed package found matching input criteria."}

func newTestExecutor(t *testing.T, runner process.Runner, obs Observer) *Executor {
	t.Helper()
	pm := winget.NewPackageManager(winget.NewClient(runner, nil, nil), nil)
	e, err := New(&Config{
		Tool:     pm,
		Flow:     core.FlowInstall,
		Policy:   DefaultPolicy(),
		Observer: obs,
		Sleep:    func(ctx context.Context, d time.Duration) error { return ctx.Err() },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestExecuteSuccessFirstAttempt(t *testing.T) {
	runner := &recordingRunner{respond: func(_ context.Context, args []string) (*process.Result, error) {
		return &process.Result{ExitCode: 0, Stdout: "Successfully installed"}, nil
	}}
	var output []string
	e := newTestExecutor(t, runner, ObserverFuncs{
		OnOutput: func(_ *core.PackageItem, _ process.Stream, line string) { output = append(output, line) },
	})
	item := core.NewPackageItem("Google Chrome", "Browsers", "Google.Chrome")

	out := e.Execute(context.Background(), item)
	if !out.Success || out.Attempts != 1 || out.ExitCode != 0 {
		t.Fatalf("outcome = %+v", out)
	}
	if item.Status.Kind != core.StatusSucceeded {
		t.Fatalf("status = %v", item.Status.Kind)
	}
	if item.Installed {
		t.Fatal("Execute must leave the installed flag to the run loop")
	}
	if len(output) != 1 || output[0] != "Successfully installed" {
		t.Fatalf("output = %q", output)
	}
}

func TestExecuteTransientThenSuccess(t *testing.T) {
	installs := 0
	runner := &recordingRunner{respond: func(_ context.Context, args []string) (*process.Result, error) {
		if args[0] == "list" {
			return notFound, nil
		}
		installs++
		if installs == 1 {
			return &process.Result{ExitCode: 1, Stdout: "network error: try again later"}, nil
		}
		return &process.Result{ExitCode: 0}, nil
	}}
	var statuses []core.StatusKind
	e := newTestExecutor(t, runner, nil)
	e.notifier = core.NotifierFunc(func(item *core.PackageItem) { statuses = append(statuses, item.Status.Kind) })

	out := e.Execute(context.Background(), core.NewPackageItem("Foo", "Test", "Foo.Bar"))
	if !out.Success || out.Attempts != 2 {
		t.Fatalf("outcome = %+v", out)
	}

	want := []core.StatusKind{
		core.StatusRunning, core.StatusVerifying, core.StatusRetrying,
		core.StatusRunning, core.StatusSucceeded,
	}
	if fmt.Sprint(statuses) != fmt.Sprint(want) {
		t.Fatalf("transitions = %v, want %v", statuses, want)
	}
}

func TestExecuteInvalidIDLaunchesNothing(t *testing.T) {
	runner := &recordingRunner{respond: func(context.Context, []string) (*process.Result, error) {
		t.Fatal("runner must not be invoked")
		return nil, nil
	}}
	e := newTestExecutor(t, runner, nil)
	item := core.NewPackageItem("Bad", "Test", "bad id;rm -rf")

	out := e.Execute(context.Background(), item)
	if out.Success || out.Attempts != 0 {
		t.Fatalf("outcome = %+v", out)
	}
	if !errors.Is(out.Err, validate.ErrInvalidID) || !out.Skipped() {
		t.Fatalf("err = %v", out.Err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("calls = %v", runner.calls)
	}
	if item.Status.Kind != core.StatusFailed {
		t.Fatalf("status = %v", item.Status.Kind)
	}
}

func TestExecuteTerminalFailureDoesNotRetry(t *testing.T) {
	runner := &recordingRunner{respond: func(_ context.Context, args []string) (*process.Result, error) {
		if args[0] == "list" {
			return notFound, nil
		}
		return &process.Result{ExitCode: 1603, Stdout: "Installer failed with exit code: 1603"}, nil
	}}
	e := newTestExecutor(t, runner, nil)

	out := e.Execute(context.Background(), core.NewPackageItem("App", "Test", "Vendor.App"))
	if out.Success || out.Attempts != 1 || !errors.Is(out.Err, ErrTerminal) {
		t.Fatalf("outcome = %+v", out)
	}
	if runner.installs() != 1 {
		t.Fatalf("installs = %d", runner.installs())
	}
}

func TestExecuteNeverExceedsMaxAttempts(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		runner := &recordingRunner{respond: func(_ context.Context, args []string) (*process.Result, error) {
			if args[0] == "list" {
				return notFound, nil
			}
			return &process.Result{ExitCode: 1, Stdout: "connection reset"}, nil
		}}
		e := newTestExecutor(t, runner, nil)
		e.policy.MaxAttempts = n

		out := e.Execute(context.Background(), core.NewPackageItem("App", "Test", "Vendor.App"))
		if out.Attempts != n || runner.installs() != n {
			t.Fatalf("max %d: attempts = %d, installs = %d", n, out.Attempts, runner.installs())
		}
		if !errors.Is(out.Err, ErrTransient) {
			t.Fatalf("err = %v", out.Err)
		}
	}
}

func TestExecuteVerifiesAfterTimeout(t *testing.T) {
	runner := &recordingRunner{respond: func(_ context.Context, args []string) (*process.Result, error) {
		if args[0] == "list" {
			return &process.Result{Stdout: "Vendor App  Vendor.App  1.0"}, nil
		}
		return &process.Result{ExitCode: -1}, fmt.Errorf("%w: winget", process.ErrTimeout)
	}}
	e := newTestExecutor(t, runner, nil)

	out := e.Execute(context.Background(), core.NewPackageItem("Vendor App", "Test", "Vendor.App"))
	if !out.Success || out.Attempts != 1 {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestExecuteLaunchFailureIsTerminal(t *testing.T) {
	runner := &recordingRunner{respond: func(context.Context, []string) (*process.Result, error) {
		return nil, fmt.Errorf("%w: winget: not found", process.ErrLaunch)
	}}
	e := newTestExecutor(t, runner, nil)

	out := e.Execute(context.Background(), core.NewPackageItem("App", "Test", "Vendor.App"))
	if out.Success || out.Attempts != 1 || !errors.Is(out.Err, ErrTerminal) {
		t.Fatalf("outcome = %+v", out)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("calls = %v", runner.calls)
	}
}

func TestRunCancelledMidItem(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := &recordingRunner{respond: func(ctx context.Context, args []string) (*process.Result, error) {
		if args[2] == "Vendor.App3" {
			cancel()
			<-ctx.Done()
			return &process.Result{ExitCode: -1}, fmt.Errorf("%w: winget", process.ErrCancelled)
		}
		return &process.Result{ExitCode: 0, Stdout: "Successfully installed"}, nil
	}}
	var estimates []progress.Estimate
	e := newTestExecutor(t, runner, ObserverFuncs{
		OnProgress: func(_ *core.PackageItem, est progress.Estimate) { estimates = append(estimates, est) },
	})

	var items []*core.PackageItem
	for i := 1; i <= 5; i++ {
		item := core.NewPackageItem(fmt.Sprintf("App %d", i), "Test", fmt.Sprintf("Vendor.App%d", i))
		item.SetSelected(true)
		items = append(items, item)
	}

	report := e.Run(ctx, items)
	if !report.Cancelled {
		t.Fatal("run not reported as cancelled")
	}
	if report.Succeeded != 2 || report.Failed != 0 {
		t.Fatalf("report = %+v", report)
	}
	for _, item := range items[:2] {
		if !item.Installed || item.Selected || item.Status.Kind != core.StatusSucceeded {
			t.Errorf("%s not resolved: %+v", item.ID, item)
		}
	}
	if items[2].Status.Kind != core.StatusPending || items[2].Installed {
		t.Errorf("item 3 status = %v", items[2].Status.Kind)
	}
	for _, item := range items[3:] {
		if item.Status.Kind != core.StatusPending {
			t.Errorf("%s was started", item.ID)
		}
	}
	if runner.installs() != 3 {
		t.Fatalf("installs = %d, want 3", runner.installs())
	}
	if len(estimates) != 2 {
		t.Fatalf("progress events = %d", len(estimates))
	}
	if !strings.Contains(report.Log[len(report.Log)-1], "Cancelled after 2 installs") {
		t.Fatalf("last log line = %q", report.Log[len(report.Log)-1])
	}
}

func TestRunCountsOutcomes(t *testing.T) {
	runner := &recordingRunner{respond: func(_ context.Context, args []string) (*process.Result, error) {
		if args[0] == "list" {
			return notFound, nil
		}
		if args[2] == "Vendor.Broken" {
			return &process.Result{ExitCode: 1, Stdout: "Installer hash does not match"}, nil
		}
		return &process.Result{ExitCode: 0}, nil
	}}
	e := newTestExecutor(t, runner, nil)
	e.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }

	items := []*core.PackageItem{
		core.NewPackageItem("Good", "Test", "Vendor.Good"),
		core.NewPackageItem("Broken", "Test", "Vendor.Broken"),
		core.NewPackageItem("Invalid", "Test", "not valid"),
	}
	report := e.Run(context.Background(), items)

	if report.Succeeded != 1 || report.Failed != 1 || report.Skipped != 1 || report.Cancelled {
		t.Fatalf("report = %+v", report)
	}
	if report.ID == "" || report.Total != 3 || len(report.Outcomes) != 3 {
		t.Fatalf("report = %+v", report)
	}
	if !strings.HasPrefix(report.Log[0], "[09:30:00] Starting installation of 3 app(s)") {
		t.Fatalf("first log line = %q", report.Log[0])
	}
}

func TestNewRequiresTool(t *testing.T) {
	if _, err := New(&Config{}); err == nil {
		t.Fatal("expected error")
	}
}
