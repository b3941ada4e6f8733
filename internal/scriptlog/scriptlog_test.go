package scriptlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/parser"
)

func TestLog_TraceIsBufferedUntilFlush(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf)

	l.Trace(3, parser.KindStaticCall, `print("hi")`)
	assert.Zero(t, buf.Len())

	require.NoError(t, l.Flush())
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "statement", rec["msg"])
	assert.Equal(t, float64(3), rec["line"])
	assert.Equal(t, "StaticCall", rec["kind"])
	assert.Equal(t, `print("hi")`, rec["text"])
}

func TestOpen(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := filepath.Join(t.TempDir(), "logs")

	// --- Act ---
	l, err := Open(dir, "/scripts/weekly.smpl")
	require.NoError(t, err)
	l.Trace(1, parser.KindInstanceDecl, "x: 1")
	l.Event("script failed", "kind", "GrammarError")
	require.NoError(t, l.Close())

	// --- Assert ---
	assert.Equal(t, filepath.Join(dir, "weekly.log"), l.Path())
	f, err := os.Open(l.Path())
	require.NoError(t, err)
	defer f.Close()
	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines++
		assert.True(t, json.Valid(sc.Bytes()))
	}
	assert.Equal(t, 2, lines)
}
