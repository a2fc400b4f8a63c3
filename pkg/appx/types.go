// pkg/appx/types.go
package appx

import (
	"time"

	"github.com/UriCaBa/initio/pkg/core"
)

// Definition describes a removable preinstalled package.
type Definition struct {
	Name        string
	Category    string
	PackageName string // Substring of the Appx package name
	Description string
}

// Item converts the definition into a tracked removal target.
func (d Definition) Item() *core.PackageItem {
	return core.NewRemovalItem(d.Name, d.Category, d.PackageName, d.Description)
}

// Items returns a fresh removal item for every known definition.
func Items() []*core.PackageItem {
	items := make([]*core.PackageItem, 0, len(Known))
	for _, d := range Known {
		items = append(items, d.Item())
	}
	return items
}

// Config configures the scripting shell client
type Config struct {
	Shell string

	DetectTimeout time.Duration
	RemoveTimeout time.Duration
	VerifyTimeout time.Duration
}
