// pkg/platform/utils.go
package platform

import (
	"os/exec"
	"path/filepath"
)

// lookPath resolves a tool on PATH; swapped in tests.
var lookPath = func(cmd string) (string, bool) {
	path, err := exec.LookPath(cmd)
	if err != nil {
		return "", false
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, true
}
