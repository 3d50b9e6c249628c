package scanner

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"dirscope/internal/cache"
	"dirscope/internal/model"
)

// buildDataDir creates root/photos (3 files totaling 500000 bytes) and
// root/readme.txt (50 bytes).
func buildDataDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	photos := filepath.Join(root, "photos")
	if err := os.MkdirAll(photos, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFileOfSize(t, filepath.Join(photos, "one.jpg"), 200000)
	writeFileOfSize(t, filepath.Join(photos, "two.jpg"), 200000)
	writeFileOfSize(t, filepath.Join(photos, "three.jpg"), 100000)
	writeFileOfSize(t, filepath.Join(root, "readme.txt"), 50)
	return root
}

func TestScan_MinSizeFilter(t *testing.T) {
	root := buildDataDir(t)
	s := New(cache.New(time.Minute))

	res := s.Scan(root, model.FilterConfig{MinSize: 100 * 1024, SortBySize: true})
	if len(res.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(res.Entries), res.Entries)
	}
	if res.Entries[0].Name != "photos" || res.Entries[0].Size != 500000 || !res.Entries[0].IsDir {
		t.Fatalf("unexpected entry: %+v", res.Entries[0])
	}
	if res.Total != 500000 {
		t.Fatalf("total = %d, want 500000", res.Total)
	}
}

func TestScan_ShowAllBypassesMinSize(t *testing.T) {
	root := buildDataDir(t)
	s := New(cache.New(time.Minute))

	res := s.Scan(root, model.FilterConfig{MinSize: 100 * 1024, ShowAll: true, SortBySize: true})
	if len(res.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(res.Entries))
	}
	// directories come before files regardless of ordering field
	if !res.Entries[0].IsDir || res.Entries[0].Name != "photos" {
		t.Fatalf("expected photos first, got %+v", res.Entries[0])
	}
	if res.Entries[1].Name != "readme.txt" {
		t.Fatalf("expected readme.txt second, got %+v", res.Entries[1])
	}
	if res.Total != 500050 {
		t.Fatalf("total = %d, want 500050", res.Total)
	}
}

func TestScan_HiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeFileOfSize(t, filepath.Join(root, ".secret"), 10)
	writeFileOfSize(t, filepath.Join(root, "plain"), 10)
	s := New(cache.New(time.Minute))

	res := s.Scan(root, model.FilterConfig{ShowAll: true})
	if len(res.Entries) != 1 || res.Entries[0].Name != "plain" {
		t.Fatalf("hidden entry leaked: %+v", res.Entries)
	}

	s.Cache().Invalidate(root)
	res = s.Scan(root, model.FilterConfig{ShowAll: true, ShowHidden: true})
	if len(res.Entries) != 2 {
		t.Fatalf("expected 2 entries with ShowHidden, got %d", len(res.Entries))
	}
}

func TestScan_CacheHitSkipsFilesystem(t *testing.T) {
	root := buildDataDir(t)
	s := New(cache.New(time.Minute))
	cfg := model.FilterConfig{ShowAll: true, SortBySize: true}

	first := s.Scan(root, cfg)
	if first.FromCache {
		t.Fatal("first scan should not come from cache")
	}

	// Mutate the directory; a cached second scan must not notice.
	if err := os.Remove(filepath.Join(root, "readme.txt")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	second := s.Scan(root, cfg)
	if !second.FromCache {
		t.Fatal("second scan should hit the cache")
	}
	if len(second.Entries) != len(first.Entries) || second.Total != first.Total {
		t.Fatalf("cached result differs: %+v vs %+v", second, first)
	}
	for i := range first.Entries {
		if second.Entries[i] != first.Entries[i] {
			t.Fatalf("entry %d differs: %+v vs %+v", i, second.Entries[i], first.Entries[i])
		}
	}
}

func TestScan_TTLExpiryForcesRelisting(t *testing.T) {
	root := buildDataDir(t)
	c := cache.New(time.Minute)
	now := time.Now()
	c.SetClock(func() time.Time { return now })
	s := New(c)
	cfg := model.FilterConfig{ShowAll: true, SortBySize: true}

	s.Scan(root, cfg)
	if err := os.Remove(filepath.Join(root, "readme.txt")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	now = now.Add(2 * time.Minute)
	res := s.Scan(root, cfg)
	if res.FromCache {
		t.Fatal("expected fresh listing after TTL")
	}
	if len(res.Entries) != 1 || res.Entries[0].Name != "photos" {
		t.Fatalf("expected only photos after relist, got %+v", res.Entries)
	}
}

func TestScan_UnreadableDirYieldsEmptyResult(t *testing.T) {
	s := New(cache.New(time.Minute))
	res := s.Scan(filepath.Join(t.TempDir(), "missing"), model.FilterConfig{ShowAll: true})
	if len(res.Entries) != 0 || res.Total != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestScan_ConcurrentSamePath(t *testing.T) {
	root := buildDataDir(t)
	s := New(cache.New(time.Minute))
	cfg := model.FilterConfig{ShowAll: true, SortBySize: true}

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Scan(root, cfg)
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		if r.Total != 500050 || len(r.Entries) != 2 {
			t.Fatalf("result %d inconsistent: %+v", i, r)
		}
	}
}
