// pkg/catalog/types.go
package catalog

// Source labels where a resolved catalog came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceCache    Source = "cache"
	SourceEmbedded Source = "embedded"
)

// Popularity signals, derived from rank.
const (
	SignalTopRanked = "Top ranked"
	SignalTopFree   = "Top free"
	SignalRising    = "Rising"
	SignalNew       = "New"
)

// Entry is one installable app in the catalog.
type Entry struct {
	Category   string
	Rank       int // 1-based within Category
	Name       string
	ID         string
	Rating     float64
	Signal     string
	TrendScore int
}

// Document is the catalog JSON shape shared by the remote file, the cache and
// the embedded fallback.
type Document struct {
	Categories []Category `json:"categories"`
}

type Category struct {
	Name string `json:"name"`
	Apps []App  `json:"apps"`
}

type App struct {
	Name     string `json:"name"`
	WingetID string `json:"wingetId"`
}
