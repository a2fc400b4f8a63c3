// pkg/setup/setup.go
package setup

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/UriCaBa/initio/pkg/core"
)

//go:embed default.toml
var defaultManifest []byte

// App is one [[app]] table of a setup file.
type App struct {
	Name     string `toml:"name"`
	Category string `toml:"category"`
	ID       string `toml:"id"`
	Selected bool   `toml:"selected"`
}

// Manifest is a setup file: the list of apps a machine should have.
type Manifest struct {
	Name string `toml:"name,omitempty"`
	Apps []App  `toml:"app"`
}

// Default returns the setup compiled into the binary.
func Default() *Manifest {
	m, err := Parse(defaultManifest)
	if err != nil {
		return &Manifest{Name: "default"}
	}
	return m
}

// Load reads and parses a setup file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("setup: reading '%s': %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("setup: failed to parse '%s': %w", path, err)
	}
	return m, nil
}

// Parse decodes a setup document. Every app needs an id.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key '%s'", undecoded[0])
	}
	for i, app := range m.Apps {
		if strings.TrimSpace(app.ID) == "" {
			return nil, fmt.Errorf("app %d (%q) has no id", i+1, app.Name)
		}
	}
	return &m, nil
}

// Items converts the manifest to tracked install items, dropping repeated ids.
func (m *Manifest) Items() []*core.PackageItem {
	seen := make(map[string]bool)
	var items []*core.PackageItem
	for _, app := range m.Apps {
		id := strings.TrimSpace(app.ID)
		key := strings.ToLower(id)
		if seen[key] {
			continue
		}
		seen[key] = true

		name := strings.TrimSpace(app.Name)
		if name == "" {
			name = DisplayName(id)
		}
		category := strings.TrimSpace(app.Category)
		if category == "" {
			category = "Custom"
		}

		item := core.NewPackageItem(name, category, id)
		item.Selected = app.Selected
		items = append(items, item)
	}
	return items
}

// FromItems builds a manifest from tracked install items.
func FromItems(name string, items []*core.PackageItem) *Manifest {
	m := &Manifest{Name: name}
	for _, item := range items {
		if item.Flow != core.FlowInstall {
			continue
		}
		m.Apps = append(m.Apps, App{
			Name:     item.Name,
			Category: item.Category,
			ID:       item.ID,
			Selected: item.Selected,
		})
	}
	return m
}

// Encode renders the manifest as TOML.
func (m *Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, fmt.Errorf("setup: encoding: %w", err)
	}
	return buf.Bytes(), nil
}

// Write saves the manifest to path.
func (m *Manifest) Write(path string) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("setup: creating directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("setup: writing '%s': %w", path, err)
	}
	return nil
}

// DisplayName derives a name from an id: the last dot-separated segment.
func DisplayName(id string) string {
	id = strings.TrimSpace(id)
	if i := strings.LastIndex(id, "."); i >= 0 && i < len(id)-1 {
		return id[i+1:]
	}
	return id
}
