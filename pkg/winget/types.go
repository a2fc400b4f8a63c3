// pkg/winget/types.go
package winget

import "time"

// SearchResult is one row of `winget search`
type SearchResult struct {
	Name string
	ID   string
}

// Config configures the winget client
type Config struct {
	Path       string // Executable, defaults to "winget"
	Silent     bool   // Pass --silent on install
	MaxResults int    // Search row cap

	VersionTimeout time.Duration
	InstallTimeout time.Duration
	ListTimeout    time.Duration
	ExportTimeout  time.Duration
}
