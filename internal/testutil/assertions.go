package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
)

// RequireScriptError checks that the run failed with a script error of the
// given kind on the given line, and returns it for further checks.
func RequireScriptError(t *testing.T, result *HarnessResult, kind scripterr.Kind, line int) *scripterr.Error {
	t.Helper()

	var se *scripterr.Error
	require.True(t, errors.As(result.Err, &se), "expected a script error, got %v", result.Err)
	require.Equal(t, kind, se.Kind, "unexpected kind for %v", se)
	require.Equal(t, line, se.Line, "unexpected line for %v", se)
	return se
}
