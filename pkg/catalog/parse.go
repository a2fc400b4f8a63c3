// pkg/catalog/parse.go
package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// Parse turns a catalog document into ranked entries. Apps without an id are
// skipped, as are ids already seen anywhere in the document (ignoring case).
// Ranks count only the kept apps, so each category is numbered 1..N.
func Parse(data []byte) ([]Entry, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("catalog is not valid JSON")
	}
	if !gjson.GetBytes(data, "categories").IsArray() {
		return nil, fmt.Errorf("catalog has no categories array")
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	seen := make(map[string]bool)
	var entries []Entry
	for _, cat := range doc.Categories {
		category := strings.TrimSpace(cat.Name)
		if category == "" {
			category = "Unknown"
		}

		rank := 0
		for _, app := range cat.Apps {
			id := strings.TrimSpace(app.WingetID)
			if id == "" {
				continue
			}
			key := strings.ToLower(id)
			if seen[key] {
				continue
			}
			seen[key] = true

			name := strings.TrimSpace(app.Name)
			if name == "" {
				name = "Unknown"
			}

			rank++
			entries = append(entries, Entry{
				Category:   category,
				Rank:       rank,
				Name:       name,
				ID:         id,
				Rating:     Rating(rank),
				Signal:     Signal(rank),
				TrendScore: TrendScore(rank),
			})
		}
	}
	return entries, nil
}

// Signal maps a rank to its popularity label.
func Signal(rank int) string {
	switch {
	case rank <= 3:
		return SignalTopRanked
	case rank <= 10:
		return SignalTopFree
	case rank <= 20:
		return SignalRising
	default:
		return SignalNew
	}
}

// Rating starts at 4.9 for rank 1 and drops 0.04 per rank, never below 3.5.
func Rating(rank int) float64 {
	if rank < 1 {
		rank = 1
	}
	r := math.Round((4.9-float64(rank-1)*0.04)*10) / 10
	return math.Max(3.5, r)
}

// TrendScore starts at 100 and drops 2 per rank, never below 42.
func TrendScore(rank int) int {
	if rank < 1 {
		rank = 1
	}
	score := 100 - (rank-1)*2
	if score < 42 {
		return 42
	}
	return score
}
