// Package scanner lists directories, aggregates sizes and caches results.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/singleflight"

	"dirscope/internal/cache"
	"dirscope/internal/model"
)

// Result is the outcome of scanning one directory. FromCache marks results
// served from the cache; those carry the entry list produced under the
// filter config active when they were cached, which may differ from the
// one passed to Scan.
type Result struct {
	Entries   []model.FileEntry
	Total     int64
	Skipped   int
	FromCache bool
}

// Scanner performs directory scans, consulting a TTL cache first.
// Concurrent scans of the same path share one traversal.
type Scanner struct {
	cache *cache.Cache
	group singleflight.Group
}

// New returns a Scanner backed by c.
func New(c *cache.Cache) *Scanner {
	return &Scanner{cache: c}
}

// Cache exposes the backing cache for invalidation by callers.
func (s *Scanner) Cache() *cache.Cache {
	return s.cache
}

// Scan returns the entries and aggregate total for path. A fresh cache
// entry short-circuits filesystem access entirely; otherwise the directory
// is listed, children sized and filtered per cfg, and the result stored.
// An unreadable directory yields an empty result, not an error.
func (s *Scanner) Scan(path string, cfg model.FilterConfig) Result {
	if e, ok := s.cache.Lookup(path); ok {
		return Result{Entries: e.Entries, Total: e.Total, Skipped: e.Skipped, FromCache: true}
	}

	v, _, _ := s.group.Do(path, func() (interface{}, error) {
		// A sibling flight may have stored a result while we queued.
		if e, ok := s.cache.Lookup(path); ok {
			return Result{Entries: e.Entries, Total: e.Total, Skipped: e.Skipped, FromCache: true}, nil
		}
		return s.scanDisk(path, cfg), nil
	})
	return v.(Result)
}

func (s *Scanner) scanDisk(path string, cfg model.FilterConfig) Result {
	children, err := os.ReadDir(path)
	if err != nil {
		return Result{}
	}

	var res Result
	for _, child := range children {
		name := child.Name()
		if !cfg.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		info, err := child.Info()
		if err != nil {
			res.Skipped++
			continue
		}
		childPath := filepath.Join(path, name)
		var size int64
		if info.IsDir() {
			var sk int
			size, sk = aggregate(childPath)
			res.Skipped += sk
		} else {
			size = info.Size()
		}
		if !cfg.ShowAll && size < cfg.MinSize {
			continue
		}
		res.Entries = append(res.Entries, model.FileEntry{
			Path:  childPath,
			Name:  name,
			Size:  size,
			IsDir: info.IsDir(),
		})
	}

	res.Total = model.TotalOf(res.Entries)
	Sort(res.Entries, cfg.SortBySize)
	s.cache.Store(path, res.Entries, res.Total, res.Skipped)
	return res
}
