// pkg/setup/setup_test.go
package setup

import (
	"path/filepath"
	"testing"

	"github.com/UriCaBa/initio/pkg/core"
)

func TestDefaultSetup(t *testing.T) {
	m := Default()
	items := m.Items()
	if len(items) != 12 {
		t.Fatalf("default setup has %d apps", len(items))
	}
	for _, item := range items {
		if !item.Selected || item.Flow != core.FlowInstall {
			t.Errorf("%s: %+v", item.ID, item)
		}
	}
	if items[0].ID != "Google.Chrome" || items[9].ID != "Notepad++.Notepad++" {
		t.Errorf("unexpected order: %s, %s", items[0].ID, items[9].ID)
	}
}

func TestParseErrors(t *testing.T) {
	for _, doc := range []string{
		"[[app]]\nname = \"NoID\"\n",
		"[[app]]\nid = \"A.B\"\ncolour = \"red\"\n",
		"[[app]\n",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q) succeeded", doc)
		}
	}
}

func TestItemsDefaultsAndDuplicates(t *testing.T) {
	m, err := Parse([]byte(`
[[app]]
id = "JetBrains.Toolbox"

[[app]]
id = "jetbrains.toolbox"
name = "Duplicate"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	items := m.Items()
	if len(items) != 1 {
		t.Fatalf("items = %d", len(items))
	}
	if items[0].Name != "Toolbox" || items[0].Category != "Custom" || items[0].Selected {
		t.Fatalf("item = %+v", items[0])
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	items := []*core.PackageItem{
		core.NewPackageItem("VLC", "Media", "VideoLAN.VLC"),
		core.NewRemovalItem("News", "Microsoft Bloat", "Microsoft.BingNews", ""),
	}
	items[0].Selected = true

	path := filepath.Join(t.TempDir(), "nested", "setup.toml")
	if err := FromItems("laptop", items).Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "laptop" || len(m.Apps) != 1 {
		t.Fatalf("manifest = %+v", m)
	}
	if m.Apps[0] != (App{Name: "VLC", Category: "Media", ID: "VideoLAN.VLC", Selected: true}) {
		t.Fatalf("app = %+v", m.Apps[0])
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"Spotify.Spotify": "Spotify",
		"9NKSQGP7F2NH":    "9NKSQGP7F2NH",
		"Trailing.":       "Trailing.",
	}
	for id, want := range tests {
		if got := DisplayName(id); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", id, got, want)
		}
	}
}
