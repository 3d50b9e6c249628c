// Package session owns the scanning model: navigator state, filter
// configuration and the latest scan result. Presentation layers only
// query it and issue commands; no scan logic lives outside this core.
package session

import (
	"context"
	"errors"
	"sync"

	"dirscope/internal/deleter"
	"dirscope/internal/model"
	"dirscope/internal/nav"
	"dirscope/internal/scanner"
)

// ErrNoRoot is returned by operations that need a root directory first.
var ErrNoRoot = errors.New("no root directory selected")

// Stats summarizes the current entry list for a details view.
type Stats struct {
	Items int
	Files int
	Dirs  int
	Total int64
}

// Session is safe for use from multiple goroutines; a TUI typically runs
// Rescan on a worker while the render loop reads the accessors.
type Session struct {
	mu       sync.Mutex
	nav      nav.Navigator
	scanner  *scanner.Scanner
	filter   model.FilterConfig
	entries  []model.FileEntry // latest sorted scan result
	filtered []model.FileEntry // entries narrowed by the search query
	total    int64
	skipped  int
	scanning bool
	cached   bool // last result came from the cache
}

// New creates a session around sc with the given starting filter.
func New(sc *scanner.Scanner, filter model.FilterConfig) *Session {
	return &Session{scanner: sc, filter: filter}
}

// SetRoot establishes the navigation boundary and scans it.
func (s *Session) SetRoot(path string) {
	s.mu.Lock()
	s.nav.SetRoot(path)
	s.mu.Unlock()
	s.Rescan()
}

// NavigateTo moves to a child or validated ancestor and scans it.
func (s *Session) NavigateTo(path string) {
	s.mu.Lock()
	s.nav.NavigateTo(path)
	s.mu.Unlock()
	s.Rescan()
}

// GoUp moves to the parent directory unless that would leave the root.
// It reports whether the position changed; a change triggers a scan.
func (s *Session) GoUp() bool {
	s.mu.Lock()
	moved := s.nav.Up()
	s.mu.Unlock()
	if moved {
		s.Rescan()
	}
	return moved
}

// Rescan scans the current directory, honoring the cache: a fresh cache
// entry is returned as-is even if the filter changed since it was stored.
func (s *Session) Rescan() {
	s.runScan(false)
}

// Refresh drops the cache entry for the current directory first, forcing
// a fresh listing.
func (s *Session) Refresh() {
	s.runScan(true)
}

func (s *Session) runScan(invalidate bool) {
	s.mu.Lock()
	if !s.nav.Ready() {
		s.mu.Unlock()
		return
	}
	path := s.nav.Current()
	cfg := s.filter
	s.scanning = true
	s.mu.Unlock()

	if invalidate {
		s.scanner.Cache().Invalidate(path)
	}
	res := s.scanner.Scan(path, cfg)

	// Copy before adopting: the result slice is shared with the cache, and
	// the session sorts and compacts its list in place.
	entries := make([]model.FileEntry, len(res.Entries))
	copy(entries, res.Entries)

	s.mu.Lock()
	s.entries = entries
	s.total = res.Total
	s.skipped = res.Skipped
	s.cached = res.FromCache
	s.applySearchLocked()
	s.scanning = false
	s.mu.Unlock()
}

// applySearchLocked rebuilds the filtered view from entries and the query.
func (s *Session) applySearchLocked() {
	s.filtered = scanner.Search(s.entries, s.filter.Query)
}

// SetQuery updates the search string and narrows the in-memory list. It
// never touches the filesystem.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Query = q
	s.applySearchLocked()
}

// SetSortBySize reorders the in-memory result; the choice also applies to
// subsequent scans.
func (s *Session) SetSortBySize(bySize bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SortBySize = bySize
	scanner.Sort(s.entries, bySize)
	s.applySearchLocked()
}

// SetShowAll changes the size-threshold bypass. Takes effect on the next
// scan.
func (s *Session) SetShowAll(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.ShowAll = v
}

// SetShowHidden changes dot-entry visibility. Takes effect on the next
// scan.
func (s *Session) SetShowHidden(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.ShowHidden = v
}

// SetMinSize changes the size threshold. Takes effect on the next scan.
func (s *Session) SetMinSize(v int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.MinSize = v
}

// Delete removes entry from disk. On success the cache entry for the
// current directory is invalidated, the entry leaves the in-memory list
// and the total is recomputed from what remains; no re-scan happens. On
// failure nothing changes.
func (s *Session) Delete(entry model.FileEntry) error {
	s.mu.Lock()
	if !s.nav.Ready() {
		s.mu.Unlock()
		return ErrNoRoot
	}
	current := s.nav.Current()
	s.mu.Unlock()

	if err := deleter.Delete(entry); err != nil {
		return err
	}

	s.scanner.Cache().Invalidate(current)

	s.mu.Lock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Path != entry.Path {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.total = model.TotalOf(s.entries)
	s.applySearchLocked()
	s.mu.Unlock()
	return nil
}

// DeleteMany removes targets concurrently, then repairs the session the
// same way Delete does for whatever succeeded: cache invalidation for the
// current directory, removal from the in-memory list, total recomputed
// from the remainder. Failures stay in the list. With dryRun nothing is
// removed and the view is left alone.
func (s *Session) DeleteMany(ctx context.Context, targets []model.FileEntry, concurrency int, progress chan<- deleter.Progress, dryRun bool) deleter.Summary {
	s.mu.Lock()
	ready := s.nav.Ready()
	current := s.nav.Current()
	s.mu.Unlock()
	if !ready {
		return deleter.Summary{}
	}

	sum := deleter.DeleteTargets(ctx, targets, concurrency, progress, dryRun)
	if dryRun || len(sum.Successes) == 0 {
		return sum
	}

	s.scanner.Cache().Invalidate(current)

	removed := make(map[string]struct{}, len(sum.Successes))
	for _, e := range sum.Successes {
		removed[e.Path] = struct{}{}
	}
	s.mu.Lock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if _, ok := removed[e.Path]; !ok {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.total = model.TotalOf(s.entries)
	s.applySearchLocked()
	s.mu.Unlock()
	return sum
}

// Entries returns the current filtered view.
func (s *Session) Entries() []model.FileEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.FileEntry, len(s.filtered))
	copy(out, s.filtered)
	return out
}

// Total returns the aggregate size of the latest scan's retained entries.
func (s *Session) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Skipped reports how many children the latest scan could not read.
func (s *Session) Skipped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

// FromCache reports whether the latest result was served from the cache.
func (s *Session) FromCache() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cached
}

// Scanning reports whether a scan is in flight.
func (s *Session) Scanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanning
}

// Ready reports whether a root has been selected.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Ready()
}

// Root returns the boundary directory.
func (s *Session) Root() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Root()
}

// Current returns the directory the session is looking at.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

// Breadcrumbs returns the ancestor chain from root to current for a path
// bar; every element is a valid NavigateTo target.
func (s *Session) Breadcrumbs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Ancestors()
}

// Filter returns a copy of the active filter configuration.
func (s *Session) Filter() model.FilterConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Stats summarizes the unfiltered entry list.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Items: len(s.entries), Total: s.total}
	for _, e := range s.entries {
		if e.IsDir {
			st.Dirs++
		} else {
			st.Files++
		}
	}
	return st
}
