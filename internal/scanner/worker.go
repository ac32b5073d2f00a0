package scanner

import (
	"context"
	"sync"

	"github.com/mei-archive/meilint/internal/ctxlog"
	"github.com/mei-archive/meilint/internal/lint"
)

// worker is the processing loop for a single concurrent worker.
func (s *Scanner) worker(ctx context.Context, id int, paths <-chan string, results chan<- []lint.Finding, wg *sync.WaitGroup) {
	defer wg.Done()
	logger := ctxlog.FromContext(ctx).With("workerID", id)
	logger.Debug("Worker started.")

	for path := range paths {
		logger.Debug("Linting file.", "path", path)
		findings := lint.File(path, s.opts)
		if len(findings) > 0 {
			logger.Debug("File has findings.", "path", path, "count", len(findings))
		}
		results <- findings
	}

	logger.Debug("Worker finished.")
}
