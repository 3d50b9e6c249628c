// Package model contains the shared data types of the scanning engine.
package model

// FileEntry describes one child of a scanned directory. Size is the byte
// length for files and the recursive aggregate for directories. Entries are
// immutable once created; a re-scan replaces them wholesale.
type FileEntry struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	IsDir bool   `json:"isDir"`
}

// DefaultMinSize is the size threshold below which entries are hidden
// unless ShowAll is set.
const DefaultMinSize int64 = 100 * 1024

// FilterConfig controls what a scan keeps and how results are ordered.
// It lives for the session and is never persisted.
type FilterConfig struct {
	MinSize    int64  // drop entries smaller than this unless ShowAll
	ShowAll    bool   // ignore MinSize
	ShowHidden bool   // keep dot-entries
	Query      string // case-insensitive substring match, display-time only
	SortBySize bool   // descending size within tier; otherwise name
}

// DefaultFilter returns the filter state a fresh session starts with.
func DefaultFilter() FilterConfig {
	return FilterConfig{
		MinSize:    DefaultMinSize,
		SortBySize: true,
	}
}

// TotalOf sums entry sizes. Kept here so every caller repairs totals the
// same way after removing entries.
func TotalOf(entries []FileEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total
}
