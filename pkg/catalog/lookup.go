// pkg/catalog/lookup.go
package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Lookup finds an entry by id, ignoring case.
func Lookup(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.ID, id) {
			return e, true
		}
	}
	return Entry{}, false
}

// Filter keeps entries in category (when set) whose name or id contains
// query (when set), ignoring case.
func Filter(entries []Entry, category, query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Entry
	for _, e := range entries {
		if category != "" && !strings.EqualFold(e.Category, category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Name), query) &&
			!strings.Contains(strings.ToLower(e.ID), query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Categories lists category names in document order.
func Categories(entries []Entry) []string {
	var names []string
	seen := make(map[string]bool)
	for _, e := range entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			names = append(names, e.Category)
		}
	}
	return names
}

// Suggest returns up to limit entries whose id or name is closest to query by
// edit distance. Candidates further than half the query length are dropped.
func Suggest(entries []Entry, query string, limit int) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}
	threshold := len(q)/2 + 1

	type scored struct {
		entry Entry
		dist  int
	}
	var candidates []scored
	for _, e := range entries {
		d := levenshtein.ComputeDistance(q, strings.ToLower(e.ID))
		if nd := levenshtein.ComputeDistance(q, strings.ToLower(e.Name)); nd < d {
			d = nd
		}
		if d <= threshold {
			candidates = append(candidates, scored{entry: e, dist: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]Entry, len(candidates))
	for i, c := range candidates {
		out[i] = c.entry
	}
	return out
}
