// pkg/executor/classify_test.go
package executor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/UriCaBa/initio/pkg/process"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		output string
		want   bool
	}{
		{"timeout", true},
		{"A network error occurred", true},
		{"The operation TIMED OUT", true},
		{"Failed when searching source: winget", true},
		{"Temporary failure in name resolution", true},
		{"Installer hash does not match", false},
		{"Access is denied.", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTransient(tt.output); got != tt.want {
			t.Errorf("IsTransient(%q) = %v, want %v", tt.output, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	if err := Classify(nil, fmt.Errorf("%w: winget", process.ErrTimeout)); !errors.Is(err, ErrTransient) {
		t.Errorf("timeout classified as %v", err)
	}
	if err := Classify(nil, fmt.Errorf("%w: winget", process.ErrLaunch)); !errors.Is(err, ErrTerminal) {
		t.Errorf("launch failure classified as %v", err)
	}
	err := Classify(&process.Result{ExitCode: 1, Stdout: "Downloading...\nInstaller hash does not match"}, nil)
	if !errors.Is(err, ErrTransient) {
		t.Errorf("download output classified as %v", err)
	}
	err = Classify(&process.Result{ExitCode: 5, Stderr: "Access is denied."}, nil)
	if !errors.Is(err, ErrTerminal) || err.Error() != "terminal failure: exit code 5: Access is denied." {
		t.Errorf("got %v", err)
	}
}
