// Package deleter removes files and directory subtrees from disk.
package deleter

import (
	"context"
	"fmt"
	"os"
	"sync"

	"dirscope/internal/model"
)

// Delete removes the file or subtree named by entry. Directories are
// removed recursively. The error message distinguishes directory from file
// removal so callers can surface it verbatim; no other state is touched
// here — cache invalidation and list repair are the caller's job.
func Delete(entry model.FileEntry) error {
	if entry.IsDir {
		if err := os.RemoveAll(entry.Path); err != nil {
			return fmt.Errorf("delete directory %s: %w", entry.Path, err)
		}
		return nil
	}
	if err := os.Remove(entry.Path); err != nil {
		return fmt.Errorf("delete file %s: %w", entry.Path, err)
	}
	return nil
}

// Progress reports one finished target during a batch deletion.
type Progress struct {
	Completed int
	Total     int
	Path      string
	Err       error
}

// Failure records a target that could not be removed.
type Failure struct {
	Path string
	Err  error
}

// Summary is the outcome of a batch deletion.
type Summary struct {
	Successes []model.FileEntry
	Failures  []Failure
	Freed     int64
}

// DeleteTargets removes all targets concurrently, sending a best-effort
// Progress update per finished target. With dryRun set nothing is removed
// and every target counts as freed. The progress channel is never closed
// here.
func DeleteTargets(ctx context.Context, targets []model.FileEntry, concurrency int, progress chan<- Progress, dryRun bool) Summary {
	if ctx == nil {
		ctx = context.Background()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	total := len(targets)
	jobs := make(chan model.FileEntry)
	var wg sync.WaitGroup

	var mu sync.Mutex
	sum := Summary{}
	completed := 0

	worker := func() {
		defer wg.Done()
		for entry := range jobs {
			var err error
			select {
			case <-ctx.Done():
				err = ctx.Err()
			default:
				if !dryRun {
					err = Delete(entry)
				}
			}
			mu.Lock()
			if err != nil {
				sum.Failures = append(sum.Failures, Failure{Path: entry.Path, Err: err})
			} else {
				sum.Successes = append(sum.Successes, entry)
				sum.Freed += entry.Size
			}
			completed++
			if progress != nil {
				select {
				case progress <- Progress{Completed: completed, Total: total, Path: entry.Path, Err: err}:
				default:
				}
			}
			mu.Unlock()
		}
	}

	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go worker()
	}
	go func() {
		defer close(jobs)
		for _, entry := range targets {
			select {
			case <-ctx.Done():
				return
			case jobs <- entry:
			}
		}
	}()
	wg.Wait()
	return sum
}
