// pkg/reconcile/reconcile.go
package reconcile

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/UriCaBa/initio/pkg/core"
)

// Source reports what an external tool considers installed.
type Source interface {
	Installed(ctx context.Context) (core.Listing, error)
}

// Result describes one reconciliation pass.
type Result struct {
	Installed  []string // IDs of items found installed
	Structured bool     // Whether the listing carried parsed identifiers
}

// Reconciler syncs installed flags with a Source.
type Reconciler struct {
	source   Source
	notifier core.ChangeNotifier
	logger   *logrus.Logger
}

func New(source Source, notifier core.ChangeNotifier, logger *logrus.Logger) *Reconciler {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Reconciler{source: source, notifier: notifier, logger: logger}
}

// Reconcile queries the source once and updates every item in place. When the
// source fails the items are left untouched.
func (r *Reconciler) Reconcile(ctx context.Context, items []*core.PackageItem) (*Result, error) {
	listing, err := r.source.Installed(ctx)
	if err != nil {
		return nil, err
	}

	res := Apply(listing, items)
	for _, item := range items {
		core.Notify(r.notifier, item)
	}
	r.logger.WithFields(logrus.Fields{
		"items":      len(items),
		"installed":  len(res.Installed),
		"structured": res.Structured,
	}).Debug("Reconciled installed state")
	return res, nil
}

// Apply updates items from an already obtained listing.
func Apply(listing core.Listing, items []*core.PackageItem) *Result {
	m := newMatcher(listing)
	res := &Result{Structured: listing.Structured()}

	for _, item := range items {
		installed := m.installed(item)
		item.SetInstalled(installed)
		if installed {
			res.Installed = append(res.Installed, item.ID)
		}

		switch item.Flow {
		case core.FlowRemove:
			if installed {
				item.Status = core.PendingNote("Detected")
			} else {
				item.Status = core.PendingNote("Not Found")
			}
		default:
			if installed {
				item.Status = core.Succeeded()
			} else {
				item.Status = core.Pending()
			}
		}
	}
	return res
}

// Matches reports whether the listing shows item as installed.
func Matches(listing core.Listing, item *core.PackageItem) bool {
	return newMatcher(listing).installed(item)
}

type matcher struct {
	structured bool
	ids        map[string]bool
	segments   map[string]bool
	entries    []string // Lowercased listing entries
	text       string   // Lowercased free text
}

func newMatcher(l core.Listing) *matcher {
	m := &matcher{
		structured: l.Structured(),
		ids:        make(map[string]bool),
		segments:   make(map[string]bool),
		text:       strings.ToLower(l.Text),
	}
	for _, id := range l.IDs {
		lower := strings.ToLower(strings.TrimSpace(id))
		if lower == "" {
			continue
		}
		m.ids[lower] = true
		m.entries = append(m.entries, lower)
		for _, seg := range strings.Split(lower, ".") {
			m.segments[seg] = true
		}
	}
	if !m.structured {
		for _, line := range strings.Split(m.text, "\n") {
			if s := strings.TrimSpace(line); s != "" {
				m.entries = append(m.entries, s)
			}
		}
	}
	return m
}

func (m *matcher) installed(item *core.PackageItem) bool {
	id := strings.ToLower(strings.TrimSpace(item.ID))
	if id == "" {
		return false
	}

	// Removal names are fragments of the real package name.
	if item.Flow == core.FlowRemove {
		for _, e := range m.entries {
			if strings.Contains(e, id) {
				return true
			}
		}
		return false
	}

	name := strings.ToLower(strings.TrimSpace(item.Name))
	if m.structured {
		if m.ids[id] {
			return true
		}
		compact := strings.ReplaceAll(name, " ", "")
		if compact != "" && (m.segments[compact] || m.ids[compact]) {
			return true
		}
	} else if containsToken(m.text, id) {
		return true
	}

	// Store installs are exported under a store code, not the catalog id.
	return name != "" && strings.Contains(m.text, name)
}

// containsToken reports whether token occurs in s delimited by characters
// that cannot be part of an id. \b is not enough: "Notepad++" ends in a
// non-word character.
func containsToken(s, token string) bool {
	re := regexp.MustCompile(`(?:^|[^a-z0-9.+_\-])` + regexp.QuoteMeta(token) + `(?:$|[^a-z0-9.+_\-])`)
	return re.MatchString(s)
}
