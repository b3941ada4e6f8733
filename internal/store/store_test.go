package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
)

func sampleBoard(t *testing.T) *schedule.Board {
	t.Helper()
	b := schedule.NewBoard()
	b.Strategy = schedule.Latest
	work := b.NewCard("Work", schedule.ColorBlue)
	task, err := b.NewTask("Report", 4, 3)
	require.NoError(t, err)
	b.AssignTask(task, work)
	_, err = b.NewTask("Gym", 1, 0)
	require.NoError(t, err)
	cl := b.NewCheckList("Groceries")
	cl.AddItem("milk")
	cl.AddItem("eggs")
	cl.MarkByName("eggs")
	return b
}

func TestIsDatabase(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDatabase("plan.db"))
	assert.True(t, IsDatabase("plan.SQLITE"))
	assert.False(t, IsDatabase("plan.yaml"))
	assert.False(t, IsDatabase("plan"))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"board.yaml", "board.db"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), name)
			want := sampleBoard(t).Snapshot()

			// --- Act ---
			require.NoError(t, Save(ctx, path, want))
			got, err := Load(ctx, path)

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, want, got)

			restored := schedule.NewBoard()
			require.NoError(t, restored.Restore(got))
			require.Len(t, restored.Cards, 1)
			require.Len(t, restored.Cards[0].Tasks, 1)
			assert.Equal(t, "Report", restored.Cards[0].Tasks[0].Title)
			assert.Equal(t, 50, restored.CheckLists[0].Percent())
		})
	}
}

func TestSaveSQLite_ReplacesPreviousBoard(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "board.db")
	require.NoError(t, SaveSQLite(path, sampleBoard(t).Snapshot()))

	small := schedule.NewBoard()
	_, err := small.NewTask("Only", 2, 1)
	require.NoError(t, err)
	require.NoError(t, SaveSQLite(path, small.Snapshot()))

	got, err := LoadSQLite(path)
	require.NoError(t, err)
	assert.Equal(t, schedule.Compact, got.Strategy)
	assert.Empty(t, got.Cards)
	assert.Empty(t, got.CheckLists)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "Only", got.Tasks[0].Title)
}

func TestLoadYAML_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := LoadYAML(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: 9\nboard: {}\n"), 0o644))
	_, err = LoadYAML(bad)
	assert.ErrorContains(t, err, "version 9")

	garbage := filepath.Join(dir, "garbage.yaml")
	require.NoError(t, os.WriteFile(garbage, []byte("version: [\n"), 0o644))
	_, err = LoadYAML(garbage)
	assert.Error(t, err)
}

func TestLoadSQLite_Empty(t *testing.T) {
	t.Parallel()

	_, err := LoadSQLite(filepath.Join(t.TempDir(), "empty.db"))
	assert.ErrorContains(t, err, "holds no board")
}
