package scanner

import (
	"sort"
	"strings"

	"dirscope/internal/model"
)

// Sort orders entries in place: directories always precede files; within a
// tier, descending size when bySize, otherwise case-insensitive ascending
// name. The sort is stable so ties keep their listing order.
func Sort(entries []model.FileEntry, bySize bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		if bySize {
			return a.Size > b.Size
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// Search returns the entries whose name contains query, case-insensitively.
// An empty query returns the input unchanged. Search never re-scans; it
// only narrows the list it is given.
func Search(entries []model.FileEntry, query string) []model.FileEntry {
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)
	out := make([]model.FileEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}
