// Package scanner fans lint checks out over a worker pool. Archive files are
// independent of each other, so there is no ordering between workers; the
// merged report is sorted once the pool drains.
package scanner

import (
	"context"
	"sync"

	"github.com/mei-archive/meilint/internal/lint"
)

// Scanner lints a list of files with a fixed number of workers.
type Scanner struct {
	workers int
	opts    lint.Options
}

// New creates a Scanner. A worker count below one is clamped to one.
func New(workers int, opts lint.Options) *Scanner {
	if workers < 1 {
		workers = 1
	}
	return &Scanner{workers: workers, opts: opts}
}

// Run lints every path and returns the merged, sorted report. Cancelling the
// context stops the feed; files already picked up by a worker finish and
// their findings are kept.
func (s *Scanner) Run(ctx context.Context, paths []string) *lint.Report {
	pathCh := make(chan string)
	resultCh := make(chan []lint.Finding)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go s.worker(ctx, i, pathCh, resultCh, &wg)
	}

	go func() {
		defer close(pathCh)
		for _, p := range paths {
			if ctx.Err() != nil {
				return
			}
			select {
			case pathCh <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	report := lint.NewReport()
	for findings := range resultCh {
		report.Add(findings...)
	}
	report.Sort()
	return report
}
