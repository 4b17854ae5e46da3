package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/manifreeze/internal/app"
	"github.com/vk/manifreeze/internal/hcl"
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

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput  string
	LockOutput string
	Err        error
	App        *app.App
	Root       string
}

// WriteTree writes the given relative-path -> content files under root,
// creating intermediate directories as needed.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		filePath := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
}

// RunManifestTest provides a standardized harness for evaluating a
// manifest tree given as a map of relative paths to file contents. The
// tree must contain a "manifest.hcl" at its root; the app is pointed at
// the root directory so manifest resolution is exercised too.
func RunManifestTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunManifestTestWithContext(context.Background(), t, files)
}

// RunManifestTestWithContext is RunManifestTest with a caller-provided
// context.
func RunManifestTestWithContext(ctx context.Context, t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	WriteTree(t, tmpDir, files)

	appConfig := &app.Config{
		ManifestPath: tmpDir,
		LogLevel:     "debug",
		LogFormat:    "text",
	}

	logBuffer := &SafeBuffer{}
	lockBuffer := &bytes.Buffer{}

	var testApp *app.App
	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		testApp = app.NewApp(lockBuffer, logBuffer, appConfig, hcl.NewLoader())
		runErr = testApp.Run(ctx)
	}()

	return &HarnessResult{
		LogOutput:  logBuffer.String(),
		LockOutput: lockBuffer.String(),
		Err:        runErr,
		App:        testApp,
		Root:       tmpDir,
	}
}
