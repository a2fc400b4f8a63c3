// items.go
package initio

import (
	"context"
	"fmt"
	"strings"

	"github.com/UriCaBa/initio/pkg/catalog"
	"github.com/UriCaBa/initio/pkg/core"
	"github.com/UriCaBa/initio/pkg/reconcile"
	"github.com/UriCaBa/initio/pkg/setup"
	"github.com/UriCaBa/initio/pkg/validate"
)

// AddResult reports what Add did with each requested id.
type AddResult struct {
	Added       []*PackageItem
	Duplicates  []string
	Invalid     map[string]error
	Suggestions map[string][]CatalogEntry // Ids not in the catalog
}

// Add tracks new install items. Names and categories come from the catalog
// when the id is listed there; otherwise the item is filed under "Custom".
func (m *Manager) Add(ctx context.Context, ids ...string) (*AddResult, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return nil, err
	}
	entries, _ := m.Catalog(ctx)

	res := &AddResult{
		Invalid:     make(map[string]error),
		Suggestions: make(map[string][]CatalogEntry),
	}
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if err := validate.PackageID(id); err != nil {
			res.Invalid[raw] = err
			continue
		}
		if _, existing := findItem(items, id); existing != nil {
			res.Duplicates = append(res.Duplicates, id)
			continue
		}

		var item *PackageItem
		if e, ok := catalog.Lookup(entries, id); ok {
			item = core.NewPackageItem(e.Name, e.Category, e.ID)
		} else {
			item = core.NewPackageItem(setup.DisplayName(id), "Custom", id)
			if s := catalog.Suggest(entries, id, 3); len(s) > 0 {
				res.Suggestions[id] = s
			}
		}
		item.Selected = true
		items = append(items, item)
		res.Added = append(res.Added, item)
		m.notify(item)
	}

	if len(res.Added) > 0 {
		if err := m.SaveItems(ctx, items); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Drop stops tracking the given ids and returns how many were removed.
func (m *Manager) Drop(ctx context.Context, ids ...string) (int, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return 0, err
	}

	dropped := 0
	seen := make(map[string]bool)
	for _, id := range ids {
		key := strings.ToLower(strings.TrimSpace(id))
		if seen[key] {
			continue
		}
		seen[key] = true

		i, item := findItem(items, id)
		if item == nil {
			return 0, &Error{Op: "drop", Package: id, Err: ErrItemNotFound}
		}
		items = append(items[:i], items[i+1:]...)
		dropped++
	}
	if err := m.SaveItems(ctx, items); err != nil {
		return 0, err
	}
	return dropped, nil
}

// Select marks items as install targets (or clears them). With no ids every
// item is affected. Installed items cannot be selected; the count of
// changed items is returned.
func (m *Manager) Select(ctx context.Context, selected bool, ids ...string) (int, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return 0, err
	}

	targets := items
	if len(ids) > 0 {
		targets = nil
		for _, id := range ids {
			_, item := findItem(items, id)
			if item == nil {
				return 0, &Error{Op: "select", Package: id, Err: ErrItemNotFound}
			}
			targets = append(targets, item)
		}
	}

	changed := 0
	for _, item := range targets {
		if item.Selected == selected {
			continue
		}
		if item.SetSelected(selected) {
			changed++
			m.notify(item)
		}
	}
	if err := m.SaveItems(ctx, items); err != nil {
		return 0, err
	}
	return changed, nil
}

// Refresh reconciles installed flags with winget and saves the result.
func (m *Manager) Refresh(ctx context.Context) ([]*PackageItem, *reconcile.Result, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return nil, nil, err
	}

	res, err := reconcile.New(m.winget, m.notifier, m.logger).Reconcile(ctx, items)
	if err != nil {
		return items, nil, &Error{Op: "refresh", Err: err}
	}
	if err := m.SaveItems(ctx, items); err != nil {
		return items, nil, err
	}
	return items, res, nil
}

// CatalogStatus annotates catalog entries: "Installed" when the last refresh
// saw the id installed, "In My Setup" when tracked, "" otherwise.
func CatalogStatus(entries []CatalogEntry, items []*PackageItem) map[string]string {
	status := make(map[string]string, len(entries))
	for _, e := range entries {
		_, item := findItem(items, e.ID)
		switch {
		case item == nil:
		case item.Installed:
			status[e.ID] = "Installed"
		default:
			status[e.ID] = "In My Setup"
		}
	}
	return status
}

// ImportSetup merges a setup file into the tracked items and returns how
// many were added.
func (m *Manager) ImportSetup(ctx context.Context, path string) (int, error) {
	manifest, err := setup.Load(path)
	if err != nil {
		return 0, &Error{Op: "import", Err: err}
	}
	items, err := m.Items(ctx)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, item := range manifest.Items() {
		if _, existing := findItem(items, item.ID); existing != nil {
			continue
		}
		items = append(items, item)
		added++
		m.notify(item)
	}
	if err := m.SaveItems(ctx, items); err != nil {
		return 0, err
	}
	return added, nil
}

// ExportSetup writes the tracked items to a setup file.
func (m *Manager) ExportSetup(ctx context.Context, path, name string) (int, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return 0, err
	}
	manifest := setup.FromItems(name, items)
	if err := manifest.Write(path); err != nil {
		return 0, &Error{Op: "export", Err: fmt.Errorf("%s: %w", path, err)}
	}
	return len(manifest.Apps), nil
}
