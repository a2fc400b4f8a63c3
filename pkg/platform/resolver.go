// pkg/platform/resolver.go
package platform

import (
	"fmt"
)

// ResolveShell picks the scripting shell: the configured one when present,
// otherwise Windows PowerShell, otherwise PowerShell 7. Only tools recorded in
// p count, so p must have been detected with the configured name.
func ResolveShell(p *Platform, configured string) (string, error) {
	// Priority:
	// 1. User-specified shell
	// 2. powershell.exe
	// 3. pwsh
	candidates := []string{ToolPowerShell, ToolPwsh}
	if configured != "" {
		candidates = append([]string{configured}, candidates...)
	}

	for _, c := range candidates {
		if p.Has(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("no scripting shell available (tried %v) on %s", candidates, p)
}

// ResolveWinget returns the configured winget executable if p found it.
func ResolveWinget(p *Platform, configured string) (string, error) {
	if configured == "" {
		configured = ToolWinget
	}
	if !p.Has(configured) {
		return "", fmt.Errorf("%s not found on %s; install App Installer from the Microsoft Store", configured, p)
	}
	return configured, nil
}
