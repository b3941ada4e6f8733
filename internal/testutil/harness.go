// Package testutil runs whole scripts through the application for
// integration tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/app"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/prompt"
)

// ScriptName is the file the harness writes the script under test to.
const ScriptName = "main.smpl"

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
	Output    string // what the script printed, prompts included
	LogOutput string
	Err       error
	Dir       string // directory holding the script and its files
}

// Path joins elem onto the run directory.
func (r *HarnessResult) Path(elem ...string) string {
	return filepath.Join(append([]string{r.Dir}, elem...)...)
}

// RunScript provides a standardized harness for running a script using a
// default background context. files are written next to the script; a
// settings.hcl among them is what __CURR_CONFIG__ reads. input is the
// operator's typed input.
func RunScript(t *testing.T, script string, files map[string]string, input string) *HarnessResult {
	t.Helper()
	return RunScriptWithContext(context.Background(), t, script, files, input)
}

// RunScriptWithContext is RunScript with a caller supplied context.
func RunScriptWithContext(ctx context.Context, t *testing.T, script string, files map[string]string, input string) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	scriptPath := filepath.Join(dir, ScriptName)
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o644))

	cfg, err := app.NewConfig(app.Config{
		ScriptPath: scriptPath,
		ConfigPath: filepath.Join(dir, "settings.hcl"),
		LogLevel:   "debug",
		LogFormat:  "text",
	})
	require.NoError(t, err)

	out := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	prompter := prompt.NewReader(strings.NewReader(input), out)

	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		runErr = app.NewApp(out, logBuffer, prompter, cfg).Run(ctx)
	}()

	if os.Getenv("SMPL_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}
	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		Dir:       dir,
	}
}
