// pkg/winget/constants.go
package winget

import "time"

const (
	// DefaultExecutable is looked up on PATH
	DefaultExecutable = "winget"

	// DefaultSource restricts search to the community repository
	DefaultSource = "winget"

	// DefaultMaxResults caps parsed search rows
	DefaultMaxResults = 50
)

// Default timeouts
const (
	DefaultVersionTimeout = 30 * time.Second
	DefaultInstallTimeout = 15 * time.Minute
	DefaultListTimeout    = 15 * time.Second
	DefaultExportTimeout  = 15 * time.Second
)

// AcceptFlags are appended to every command that could otherwise prompt.
var AcceptFlags = []string{"--accept-package-agreements", "--accept-source-agreements"}

// SuccessPhrases mark a run as successful even with a non-zero exit code.
var SuccessPhrases = []string{
	"Successfully installed",
	"Already installed",
	"No available upgrade",
}
