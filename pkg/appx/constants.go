// pkg/appx/constants.go
package appx

import "time"

const (
	// DefaultShell is the scripting shell used for Appx cmdlets
	DefaultShell = "powershell.exe"

	DefaultDetectTimeout = 30 * time.Second
	DefaultRemoveTimeout = 60 * time.Second
	DefaultVerifyTimeout = 10 * time.Second
)

// Removal categories
const (
	CategoryGames      = "Games"
	CategorySocial     = "Social & Entertainment"
	CategoryMicrosoft  = "Microsoft Bloat"
	CategoryPromotions = "Promotions"
)

var shellArgs = []string{"-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass", "-Command"}

const (
	detectJSONScript = "Get-AppxPackage | Select-Object Name | ConvertTo-Json -Compress"
	detectTextScript = "Get-AppxPackage | Select-Object -ExpandProperty Name"
	removeScript     = "Get-AppxPackage '*%s*' | Remove-AppxPackage -ErrorAction Stop"
	verifyScript     = "Get-AppxPackage '*%s*' | Select-Object -ExpandProperty Name"
)
