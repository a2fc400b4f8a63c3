// pkg/winget/parser.go
package winget

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

const exportIDPath = "Sources.#.Packages.#.PackageIdentifier"

var multiSpace = regexp.MustCompile(`\s{2,}`)

// ParseExport extracts package identifiers from a `winget export` document.
// Only Sources[].Packages[].PackageIdentifier is read.
func ParseExport(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("export document is not valid JSON")
	}

	var ids []string
	for _, source := range gjson.GetBytes(data, exportIDPath).Array() {
		for _, id := range source.Array() {
			if s := strings.TrimSpace(id.String()); s != "" {
				ids = append(ids, s)
			}
		}
	}
	return ids, nil
}

type column struct {
	start, end int
}

// ParseSearch reads the column table printed by `winget search`. Columns are
// located from the dashed separator line, else from the " Id " header; when
// neither works rows are split on runs of two or more spaces.
func ParseSearch(output string, maxResults int) []SearchResult {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	var lines [][]rune
	for _, l := range strings.Split(output, "\n") {
		l = strings.TrimRight(l, " \t\r")
		// Progress spinners redraw with carriage returns; keep the final frame.
		if i := strings.LastIndex(l, "\r"); i >= 0 {
			l = l[i+1:]
		}
		if strings.TrimSpace(l) != "" {
			lines = append(lines, []rune(l))
		}
	}
	if len(lines) == 0 {
		return nil
	}

	separator := -1
	for i, l := range lines {
		s := string(l)
		if strings.HasPrefix(strings.TrimSpace(s), "---") || strings.Contains(s, "----") {
			separator = i
			break
		}
	}

	header := -1
	if separator >= 0 {
		header = separator - 1
	} else {
		for i, l := range lines {
			s := string(l)
			if indexFold(s, " Id ") >= 0 || strings.EqualFold(strings.TrimSpace(s), "Id") {
				header = i
				break
			}
		}
	}

	idStart := -1
	if separator >= 0 {
		if cols := columns(lines[separator]); len(cols) >= 2 {
			idStart = cols[1].start
		}
	}
	if idStart < 0 && header >= 0 {
		idStart = idColumn(lines[header])
	}

	start := header + 1
	if separator >= 0 {
		start = separator + 1
	}
	if start < 0 {
		start = 0
	}

	var results []SearchResult
	for _, line := range lines[start:] {
		if len(results) >= maxResults {
			break
		}

		var name, id string
		if idStart > 0 && idStart < len(line) {
			name = strings.TrimSpace(string(line[:idStart]))
			rest := string(line[idStart:])
			if i := strings.IndexByte(rest, ' '); i >= 0 {
				rest = rest[:i]
			}
			id = strings.TrimSpace(rest)
		} else {
			parts := multiSpace.Split(strings.TrimSpace(string(line)), -1)
			if len(parts) < 2 {
				continue
			}
			name, id = parts[0], parts[1]
		}

		id = strings.TrimRight(id, "…")
		if name == "" || id == "" || !strings.Contains(id, ".") || strings.Contains(id, " ") {
			continue
		}
		if strings.EqualFold(id, "Id") {
			continue
		}
		results = append(results, SearchResult{Name: name, ID: id})
	}
	return results
}

// columns returns the dash runs of a separator line.
func columns(line []rune) []column {
	var cols []column
	for i := 0; i < len(line); {
		if line[i] != '-' {
			i++
			continue
		}
		start := i
		for i < len(line) && line[i] == '-' {
			i++
		}
		cols = append(cols, column{start: start, end: i})
	}
	return cols
}

// idColumn finds the rune offset of the Id header, -1 if absent.
func idColumn(header []rune) int {
	lower := strings.ToLower(string(header))
	if i := strings.Index(lower, " id "); i >= 0 {
		return len([]rune(lower[:i])) + 1
	}
	if strings.HasSuffix(lower, " id") {
		return len(header) - 2
	}
	return -1
}

func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
