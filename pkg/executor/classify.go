// pkg/executor/classify.go
package executor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/UriCaBa/initio/pkg/process"
)

var (
	// ErrTransient marks a failure worth retrying
	ErrTransient = errors.New("transient failure")

	// ErrTerminal marks a failure that retrying will not fix
	ErrTerminal = errors.New("terminal failure")
)

// TransientKeywords are matched case-insensitively against tool output.
var TransientKeywords = []string{
	"network",
	"timeout",
	"timed out",
	"connection",
	"try again",
	"download",
	"source",
	"internet",
	"temporar",
}

// IsTransient reports whether output looks like a temporary condition.
func IsTransient(output string) bool {
	lower := strings.ToLower(output)
	for _, kw := range TransientKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify wraps an unsuccessful attempt in ErrTransient or ErrTerminal.
// Timeouts are transient, launch failures terminal, and anything else is
// decided from the captured output.
func Classify(res *process.Result, err error) error {
	switch {
	case errors.Is(err, process.ErrTimeout):
		return fmt.Errorf("%w: %v", ErrTransient, err)
	case errors.Is(err, process.ErrLaunch):
		return fmt.Errorf("%w: %v", ErrTerminal, err)
	}

	out := res.Combined()
	if IsTransient(out) {
		return fmt.Errorf("%w: %s", ErrTransient, summary(res))
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTerminal, err)
	}
	return fmt.Errorf("%w: %s", ErrTerminal, summary(res))
}

func isCancelled(err error) bool {
	return errors.Is(err, process.ErrCancelled)
}

// summary is the exit code plus the last non-blank output line.
func summary(res *process.Result) string {
	if res == nil {
		return "no result"
	}
	last := ""
	for _, line := range strings.Split(res.Combined(), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			last = s
		}
	}
	if last == "" {
		return fmt.Sprintf("exit code %d", res.ExitCode)
	}
	return fmt.Sprintf("exit code %d: %s", res.ExitCode, last)
}
