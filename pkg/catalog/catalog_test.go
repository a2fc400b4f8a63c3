// pkg/catalog/catalog_test.go
package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/UriCaBa/initio/pkg/validate"
)

const smallCatalog = `{"categories":[
	{"name":"Browsers","apps":[
		{"name":"Chrome","wingetId":"Google.Chrome"},
		{"name":"Nameless","wingetId":""},
		{"name":"Firefox","wingetId":"Mozilla.Firefox"}
	]},
	{"name":"Media","apps":[
		{"name":"Chrome again","wingetId":"google.chrome"},
		{"wingetId":"VideoLAN.VLC"}
	]}
]}`

func TestParseRanksWithoutGaps(t *testing.T) {
	entries, err := Parse([]byte(smallCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %+v", entries)
	}
	firefox := entries[1]
	if firefox.ID != "Mozilla.Firefox" || firefox.Rank != 2 {
		t.Errorf("firefox = %+v", firefox)
	}
	vlc := entries[2]
	if vlc.Category != "Media" || vlc.Rank != 1 || vlc.Name != "Unknown" {
		t.Errorf("vlc = %+v", vlc)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, doc := range []string{"", "{", `{"apps":[]}`, `{"categories":{}}`} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q) succeeded", doc)
		}
	}
	entries, err := Parse([]byte(`{"categories":[]}`))
	if err != nil || len(entries) != 0 {
		t.Errorf("empty catalog = %v, %v", entries, err)
	}
}

func TestDerivedFields(t *testing.T) {
	tests := []struct {
		rank   int
		signal string
		rating float64
		trend  int
	}{
		{1, SignalTopRanked, 4.9, 100},
		{3, SignalTopRanked, 4.8, 96},
		{4, SignalTopFree, 4.8, 94},
		{10, SignalTopFree, 4.5, 82},
		{11, SignalRising, 4.5, 80},
		{20, SignalRising, 4.1, 62},
		{21, SignalNew, 4.1, 60},
		{40, SignalNew, 3.5, 42},
		{200, SignalNew, 3.5, 42},
	}
	for _, tt := range tests {
		if got := Signal(tt.rank); got != tt.signal {
			t.Errorf("Signal(%d) = %q, want %q", tt.rank, got, tt.signal)
		}
		if got := Rating(tt.rank); got != tt.rating {
			t.Errorf("Rating(%d) = %v, want %v", tt.rank, got, tt.rating)
		}
		if got := TrendScore(tt.rank); got != tt.trend {
			t.Errorf("TrendScore(%d) = %d, want %d", tt.rank, got, tt.trend)
		}
	}
	for rank := 1; rank <= 100; rank++ {
		if r := Rating(rank); r < 3.5 || r > 5.0 {
			t.Fatalf("Rating(%d) = %v out of range", rank, r)
		}
	}
}

func TestEmbeddedCatalog(t *testing.T) {
	entries := Embedded()
	counts := make(map[string]int)
	seen := make(map[string]bool)
	last := make(map[string]int)
	for _, e := range entries {
		counts[e.Category]++
		key := strings.ToLower(e.ID)
		if seen[key] {
			t.Errorf("duplicate id %s", e.ID)
		}
		seen[key] = true
		if err := validate.PackageID(e.ID); err != nil {
			t.Errorf("invalid id: %v", err)
		}
		if e.Rank != last[e.Category]+1 {
			t.Errorf("%s: rank %d follows %d", e.ID, e.Rank, last[e.Category])
		}
		last[e.Category] = e.Rank
	}

	want := []string{"Productivity", "Communication", "Media & Creativity", "Development", "Gaming", "Security & Privacy", "System Utilities"}
	if got := Categories(entries); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("categories = %v", got)
	}
	for _, c := range want {
		if counts[c] < 10 {
			t.Errorf("%s has %d apps", c, counts[c])
		}
	}
}

func TestResolveRemoteWritesCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(smallCatalog))
	}))
	defer srv.Close()

	cache := filepath.Join(t.TempDir(), "Initio", "catalog_cache.json")
	r := NewResolver(&Config{URL: srv.URL, CachePath: cache})

	entries, source := r.Resolve(context.Background())
	if source != SourceRemote || len(entries) != 3 {
		t.Fatalf("Resolve = %d entries from %s", len(entries), source)
	}
	data, err := os.ReadFile(cache)
	if err != nil {
		t.Fatalf("cache not written: %v", err)
	}
	if string(data) != smallCatalog {
		t.Fatal("cache differs from remote document")
	}
}

func TestResolveFallsBackToCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	cache := filepath.Join(t.TempDir(), "catalog_cache.json")
	if err := os.WriteFile(cache, []byte(smallCatalog), 0644); err != nil {
		t.Fatal(err)
	}

	entries, source := NewResolver(&Config{URL: srv.URL, CachePath: cache}).Resolve(context.Background())
	if source != SourceCache || len(entries) != 3 {
		t.Fatalf("Resolve = %d entries from %s", len(entries), source)
	}
}

func TestResolveEmptyRemoteDoesNotOverwriteCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"categories":[{"name":"Empty","apps":[]}]}`))
	}))
	defer srv.Close()

	cache := filepath.Join(t.TempDir(), "catalog_cache.json")
	if err := os.WriteFile(cache, []byte(smallCatalog), 0644); err != nil {
		t.Fatal(err)
	}

	_, source := NewResolver(&Config{URL: srv.URL, CachePath: cache}).Resolve(context.Background())
	if source != SourceCache {
		t.Fatalf("source = %s", source)
	}
	data, _ := os.ReadFile(cache)
	if string(data) != smallCatalog {
		t.Fatal("cache overwritten by empty document")
	}
}

func TestResolveEmbeddedWhenOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, cfg := range []*Config{
		{URL: srv.URL, CachePath: filepath.Join(dir, "missing.json"), Timeout: 50 * time.Millisecond},
		{URL: srv.URL, CachePath: corrupt, Timeout: 50 * time.Millisecond},
		{},
	} {
		entries, source := NewResolver(cfg).Resolve(context.Background())
		if source != SourceEmbedded || len(entries) == 0 {
			t.Fatalf("Resolve = %d entries from %s", len(entries), source)
		}
	}
}

func TestLookupFilterSuggest(t *testing.T) {
	entries := Embedded()

	if e, ok := Lookup(entries, "videolan.vlc"); !ok || e.Name != "VLC" {
		t.Fatalf("Lookup = %+v, %v", e, ok)
	}
	if got := Filter(entries, "development", "git"); len(got) < 2 {
		t.Fatalf("Filter = %+v", got)
	}

	s := Suggest(entries, "Mozila.Firefox", 3)
	if len(s) == 0 || s[0].ID != "Mozilla.Firefox" {
		t.Fatalf("Suggest = %+v", s)
	}
	if Suggest(entries, "", 3) != nil {
		t.Fatal("empty query should not suggest")
	}
}
