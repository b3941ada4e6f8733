package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testLoader() *Loader {
	return &Loader{Environ: func() []string { return []string{"SMPL_HOME=/home/smpl"} }}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.hcl", `
settings {
  hours_per_day = [0, 6, 6, 6, 6, 6, 0]
  max_days      = max(3, 10)
  strategy      = 2
  log_dir       = "${env.SMPL_HOME}/logs"
  html_dir      = "${script_dir}/${lower("HTML")}"

  relay {
    url     = "http://localhost:3000/socket.io/"
    timeout = "2s"
  }
}
`)

	// --- Act ---
	s, err := testLoader().Load(context.Background(), "/scripts", path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []int{0, 6, 6, 6, 6, 6, 0}, s.HoursPerDay)
	assert.Equal(t, 10, s.MaxDays)
	assert.Equal(t, schedule.Latest, s.Strategy)
	assert.Equal(t, "/home/smpl/logs", s.LogDir)
	assert.Equal(t, "/scripts/html", s.HTMLDir)
	require.NotNil(t, s.Relay)
	assert.Equal(t, "/", s.Relay.Namespace)
	assert.Equal(t, 2*time.Second, s.Relay.Timeout)
}

func TestLoader_LoadDirectoryMerges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `settings { max_days = 5 }`)
	writeFile(t, dir, "b.hcl", `settings { strategy = 1 }`)

	s, err := testLoader().Load(context.Background(), dir, dir)
	require.NoError(t, err)

	assert.Equal(t, 5, s.MaxDays)
	assert.Equal(t, schedule.Balanced, s.Strategy)
	assert.Equal(t, Default().HoursPerDay, s.HoursPerDay)
	assert.Nil(t, s.Relay)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "syntax", content: `settings {`, wantErr: "failed to parse"},
		{name: "unknown attribute", content: `settings { colour = 1 }`, wantErr: "failed to decode"},
		{name: "bad strategy", content: `settings { strategy = 9 }`, wantErr: "strategy"},
		{name: "bad week", content: `settings { hours_per_day = [1, 2] }`, wantErr: "7 entries"},
		{name: "bad timeout", content: `settings {
  relay {
    url     = "http://x"
    timeout = "soon"
  }
}`, wantErr: "relay.timeout"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "s.hcl", tc.content)
			_, err := testLoader().Load(context.Background(), "", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := testLoader().Load(context.Background(), "", filepath.Join(t.TempDir(), "none.hcl"))
		assert.ErrorContains(t, err, "no settings file")
	})
}

func TestSettings_ScheduleOptions(t *testing.T) {
	t.Parallel()

	opts := Default().ScheduleOptions()
	assert.Equal(t, [7]int{4, 8, 8, 8, 8, 8, 4}, opts.HoursPerDay)
	assert.Equal(t, 14, opts.MaxDays)
	require.NoError(t, Default().Validate())
}
