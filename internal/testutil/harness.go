// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/depscope/internal/ctxlog"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles creates a temporary directory holding files, keyed by relative
// path, and returns its root.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	return root
}

// LoggerContext returns a context carrying a debug-level text logger that
// writes into the returned buffer. When DEPSCOPE_TEST_LOGS=true the buffer is
// dumped at the end of the test.
func LoggerContext(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Cleanup(func() {
		if os.Getenv("DEPSCOPE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger), buf
}

// SampleInverseJSON is the inverse dependency map of a small form: a button,
// an input that reads the button's text and a chart titled after the button.
const SampleInverseJSON = `{
  "Button1.text": ["Input1.defaultText", "Button1"],
  "Input1.defaultText": ["Input1.text", "Input1"],
  "Input1.inputType": ["Input1.isValid", "Input1"],
  "Input1.text": ["Input1.isValid", "Input1.value", "Input1"],
  "Input1.isRequired": ["Input1.isValid", "Input1"],
  "Input1.isValid": ["Button1.isVisible", "Input1"],
  "Button1.isVisible": ["Button1"],
  "Button1": ["Chart1.chartName"],
  "Chart1.chartName": ["Chart1"],
  "Input1.value": ["Input1"]
}`
