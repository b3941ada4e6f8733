package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/cli"
)

func init() {
	color.NoColor = true
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.smpl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	script := writeScript(t, "include: __DEF_CONFIG__\nname: input_word(\"name? \")\nprintln(\"hi \", name)\n")
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), strings.NewReader("Ada\n"), out, errOut, []string{script})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "name? hi Ada\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestRun_ScriptError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	script := writeScript(t, "print(\"hi\")\n")
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), strings.NewReader(""), out, errOut, []string{script})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cli.CodeScriptFailed, exitErr.Code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "PreProcessorError at line 1")
	assert.Contains(t, errOut.String(), `print("hi")`)
}

func TestRun_Interrupted(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "include: __DEF_CONFIG__\nprintln(1)\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, []string{script})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cli.CodeInterrupted, exitErr.Code)
}

func TestRun_MissingScript(t *testing.T) {
	t.Parallel()

	errOut := &bytes.Buffer{}
	err := run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, errOut, []string{filepath.Join(t.TempDir(), "nope.smpl")})

	require.Error(t, err)
	assert.Contains(t, errOut.String(), "failed to open script")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), strings.NewReader(""), out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
