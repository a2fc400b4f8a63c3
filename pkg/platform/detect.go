// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"
	"slices"
)

// Tool names probed on PATH
const (
	ToolWinget     = "winget"
	ToolPowerShell = "powershell.exe"
	ToolPwsh       = "pwsh"
)

// Platform represents the detected system platform
type Platform struct {
	OS        string            // linux, darwin, windows
	Arch      string            // amd64, arm64, 386, arm
	Available []string          // Tools found on PATH
	Paths     map[string]string // Tool name to resolved path
}

// Detect records which of the given tools are on PATH. With no arguments the
// default tool set is probed.
func Detect(tools ...string) *Platform {
	if len(tools) == 0 {
		tools = []string{ToolWinget, ToolPowerShell, ToolPwsh}
	}

	p := &Platform{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Available: []string{},
		Paths:     make(map[string]string),
	}
	for _, tool := range tools {
		if path, ok := lookPath(tool); ok && !slices.Contains(p.Available, tool) {
			p.Available = append(p.Available, tool)
			p.Paths[tool] = path
		}
	}
	return p
}

// Has reports whether tool was found.
func (p *Platform) Has(tool string) bool {
	return slices.Contains(p.Available, tool)
}

// Supported reports whether the orchestrated tools can exist on this OS.
func (p *Platform) Supported() bool {
	return p.OS == "windows"
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (available: %v)", p.OS, p.Arch, p.Available)
}
