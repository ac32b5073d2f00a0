// Package testutil provides fixtures and a harness for exercising the full
// lint pipeline against a temporary archive tree.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mei-archive/meilint/internal/app"
	"github.com/mei-archive/meilint/internal/hclcfg"
)

// SafeBuffer is a thread-safe buffer for capturing log output written by
// concurrent scan workers.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements io.Writer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements fmt.Stringer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteTree writes the given relative-path → content map into a fresh
// temporary directory and returns its root. Subdirectories in the paths are
// created as needed.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// Result holds the outcome of a harness run.
type Result struct {
	Root      string
	Output    string
	LogOutput string
	Err       error
}

// RunLint writes the fixture tree and runs the full app over it. The mutate
// callbacks adjust the Config before the run.
func RunLint(t *testing.T, files map[string]string, mutate ...func(*app.Config)) *Result {
	t.Helper()

	root := WriteTree(t, files)
	cfg, err := app.NewConfig(app.Config{
		Path:         root,
		LogFormat:    "text",
		LogLevel:     "debug",
		ReportFormat: "text",
	})
	require.NoError(t, err)
	for _, m := range mutate {
		m(cfg)
	}

	var out bytes.Buffer
	logs := &SafeBuffer{}
	linter := app.NewApp(&out, logs, cfg, hclcfg.NewLoader())
	runErr := linter.Run(context.Background())

	return &Result{
		Root:      root,
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
	}
}
