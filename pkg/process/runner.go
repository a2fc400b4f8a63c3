// pkg/process/runner.go
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrLaunch indicates the executable could not be started
	ErrLaunch = errors.New("process launch failed")

	// ErrTimeout indicates the process outlived its timeout and was killed
	ErrTimeout = errors.New("process timed out")

	// ErrCancelled indicates the caller cancelled the run and the process was killed
	ErrCancelled = errors.New("operation cancelled")
)

// waitDelay bounds how long Wait keeps draining pipes after the process exits.
const waitDelay = 2 * time.Second

// Stream identifies which output stream a line came from.
type Stream int

const (
	Stdout Stream = iota + 1
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// LineFunc receives output lines without their trailing newline. Calls are
// serialized, never concurrent.
type LineFunc func(stream Stream, line string)

// Result is the captured outcome of one external invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Combined returns stdout followed by stderr.
func (r *Result) Combined() string {
	if r == nil {
		return ""
	}
	if r.Stderr == "" {
		return r.Stdout
	}
	if r.Stdout == "" {
		return r.Stderr
	}
	return r.Stdout + "\n" + r.Stderr
}

// Output returns stdout, or stderr when stdout is blank.
func (r *Result) Output() string {
	if r == nil {
		return ""
	}
	if strings.TrimSpace(r.Stdout) != "" {
		return r.Stdout
	}
	return r.Stderr
}

// Runner launches external executables.
type Runner interface {
	// Run executes name with args, waiting at most timeout (0 means no limit).
	// A non-zero exit code is not an error. On timeout or cancellation the
	// whole process tree is killed and the partial output is returned together
	// with ErrTimeout or ErrCancelled.
	Run(ctx context.Context, name string, args []string, timeout time.Duration) (*Result, error)

	// RunLines is Run with every output line also passed to onLine as it arrives.
	RunLines(ctx context.Context, name string, args []string, timeout time.Duration, onLine LineFunc) (*Result, error)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct {
	logger *logrus.Logger
}

// NewRunner creates a Runner. A nil logger discards diagnostics.
func NewRunner(logger *logrus.Logger) *ExecRunner {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (*Result, error) {
	return r.run(ctx, name, args, timeout, nil)
}

func (r *ExecRunner) RunLines(ctx context.Context, name string, args []string, timeout time.Duration, onLine LineFunc) (*Result, error) {
	return r.run(ctx, name, args, timeout, onLine)
}

func (r *ExecRunner) run(ctx context.Context, name string, args []string, timeout time.Duration, onLine LineFunc) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return &Result{ExitCode: -1}, fmt.Errorf("%w: %s not started", ErrCancelled, name)
	}

	var mu sync.Mutex
	stdout := newLineWriter(Stdout, onLine, &mu)
	stderr := newLineWriter(Stderr, onLine, &mu)

	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	prepareCommand(cmd)

	log := r.logger.WithField("command", name)
	log.Debugf("Running %s %s", name, strings.Join(args, " "))

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLaunch, name, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	var waitErr, runErr error
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		log.Debug("Cancellation requested, killing process tree")
		killTree(cmd.Process)
		waitErr = <-done
		runErr = fmt.Errorf("%w: %s", ErrCancelled, name)
	case <-expired:
		log.Debugf("Timed out after %s, killing process tree", timeout)
		killTree(cmd.Process)
		waitErr = <-done
		runErr = fmt.Errorf("%w: %s after %s", ErrTimeout, name, timeout)
	}

	stdout.flush()
	stderr.flush()

	res := &Result{
		ExitCode: exitCode(cmd, waitErr),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	log.WithFields(logrus.Fields{
		"exit_code": res.ExitCode,
		"elapsed":   time.Since(start).Round(time.Millisecond),
	}).Debug("Process finished")

	if runErr != nil {
		return res, runErr
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) && !errors.Is(waitErr, exec.ErrWaitDelay) {
		return res, fmt.Errorf("waiting for %s: %w", name, waitErr)
	}
	return res, nil
}

func exitCode(cmd *exec.Cmd, waitErr error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// lineWriter accumulates everything written to it and forwards complete
// lines to a callback.
type lineWriter struct {
	stream  Stream
	onLine  LineFunc
	mu      *sync.Mutex
	all     bytes.Buffer
	pending []byte
}

func newLineWriter(stream Stream, onLine LineFunc, mu *sync.Mutex) *lineWriter {
	return &lineWriter{stream: stream, onLine: onLine, mu: mu}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.all.Write(p)
	if w.onLine == nil {
		return len(p), nil
	}

	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.emit(w.pending[:i])
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}

func (w *lineWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.onLine != nil && len(w.pending) > 0 {
		w.emit(w.pending)
	}
	w.pending = nil
}

func (w *lineWriter) emit(line []byte) {
	text := strings.TrimRight(string(line), "\r")
	if strings.TrimSpace(text) == "" {
		return
	}
	w.onLine(w.stream, text)
}

func (w *lineWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.all.String()
}
