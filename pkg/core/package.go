// pkg/core/package.go
package core

import "fmt"

// Flow tells which operation an item is a target for.
type Flow int

const (
	// FlowInstall items are installed through the package manager.
	FlowInstall Flow = iota
	// FlowRemove items are removed through the scripting shell.
	FlowRemove
)

func (f Flow) String() string {
	switch f {
	case FlowInstall:
		return "install"
	case FlowRemove:
		return "remove"
	default:
		return fmt.Sprintf("flow(%d)", int(f))
	}
}

// PackageItem is a tracked package and its local installed/selection state.
type PackageItem struct {
	Name        string // Display name
	Category    string // Catalog or removal category
	ID          string // External id understood by the tool
	Description string // Optional, removal items only
	Flow        Flow
	Selected    bool
	Installed   bool
	Status      Status
}

// NewPackageItem returns an install target in the Pending state.
func NewPackageItem(name, category, id string) *PackageItem {
	return &PackageItem{
		Name:     name,
		Category: category,
		ID:       id,
		Flow:     FlowInstall,
		Status:   Pending(),
	}
}

// NewRemovalItem returns a removal target in the Pending state.
func NewRemovalItem(name, category, packageName, description string) *PackageItem {
	return &PackageItem{
		Name:        name,
		Category:    category,
		ID:          packageName,
		Description: description,
		Flow:        FlowRemove,
		Status:      Pending(),
	}
}

// SetInstalled updates the installed flag. An installed install target, or an
// absent removal target, is never left selected.
func (p *PackageItem) SetInstalled(installed bool) {
	p.Installed = installed
	switch p.Flow {
	case FlowInstall:
		if installed {
			p.Selected = false
		}
	case FlowRemove:
		if !installed {
			p.Selected = false
		}
	}
}

// SetSelected marks the item as a pending target. Items that are already in
// their goal state cannot be selected.
func (p *PackageItem) SetSelected(selected bool) bool {
	if selected && p.Done() {
		return false
	}
	p.Selected = selected
	return true
}

// Done reports whether the item is already in the state its flow aims for.
func (p *PackageItem) Done() bool {
	if p.Flow == FlowRemove {
		return !p.Installed
	}
	return p.Installed
}

// StatusText returns the human status for the item's flow.
func (p *PackageItem) StatusText() string {
	return p.Status.Text(p.Flow)
}

func (p *PackageItem) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.ID)
}
