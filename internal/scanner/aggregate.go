package scanner

import (
	"os"
	"path/filepath"
)

// AggregateSize returns the total byte size of the tree rooted at path.
// Files report their metadata length; directories sum their children
// recursively. Children that cannot be read contribute 0 and are skipped,
// and an unlistable directory contributes 0 as a whole. Failures never
// propagate to the caller.
func AggregateSize(path string) int64 {
	size, _ := aggregate(path)
	return size
}

// aggregate also counts entries that were silently skipped, so scans can
// report how much of the tree they could not see.
func aggregate(path string) (int64, int) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, 1
	}
	if !info.IsDir() {
		return info.Size(), 0
	}

	children, err := os.ReadDir(path)
	if err != nil {
		return 0, 1
	}
	var total int64
	var skipped int
	for _, child := range children {
		ci, err := child.Info()
		if err != nil {
			// entry disappeared or is unreadable; keep walking siblings
			skipped++
			continue
		}
		if ci.IsDir() {
			sz, sk := aggregate(filepath.Join(path, child.Name()))
			total += sz
			skipped += sk
		} else {
			total += ci.Size()
		}
	}
	return total, skipped
}
