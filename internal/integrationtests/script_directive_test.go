package integration_tests

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/report"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/store"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/testutil"
)

func TestDirective_CurrentConfig(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"settings.hcl": `
settings {
  max_days = 5
  strategy = 2
  log_dir  = "${script_dir}/custom-logs"
}
`,
	}
	script := "include: __CURR_CONFIG__, __LOG__\ntask: \"Essay\", 2, 1\nbuild()\n"

	// --- Act ---
	result := testutil.RunScript(t, script, files, "")

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "over 5 days (latest)")

	data, err := os.ReadFile(result.Path("custom-logs", "main.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "two statements and the closing event")
	assert.Contains(t, lines[0], `"text":"task: \"Essay\", 2, 1"`)
	assert.Contains(t, lines[2], "Script finished.")
}

func TestDirective_CurrentConfigFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		files   map[string]string
		wantMsg string
	}{
		{
			name:    "no settings file",
			wantMsg: "failed to load settings",
		},
		{
			name:    "invalid settings",
			files:   map[string]string{"settings.hcl": "settings {\n  max_days = 0\n}\n"},
			wantMsg: "invalid settings",
		},
		{
			name:    "broken file",
			files:   map[string]string{"settings.hcl": "settings {\n"},
			wantMsg: "failed to parse settings file",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := testutil.RunScript(t, "include: __CURR_CONFIG__\nprintln(\"hi\")\n", tc.files, "")

			se := testutil.RequireScriptError(t, result, scripterr.PreProcessor, 1)
			assert.Contains(t, se.Msg, tc.wantMsg)
			assert.Empty(t, result.Output)
		})
	}
}

func TestDirective_DefaultConfigIgnoresSettingsFile(t *testing.T) {
	t.Parallel()

	files := map[string]string{"settings.hcl": "settings {\n  max_days = 0\n}\n"}
	result := testutil.RunScript(t, "include: __DEF_CONFIG__\ntask: \"Essay\", 2, 1\nbuild()\n", files, "")

	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "(compact)")
}

func TestDirective_Stats(t *testing.T) {
	t.Parallel()

	script := `include: __STATS__
func twice(x):
    return x.add(x)
println(twice(2))
`
	result := testutil.RunScript(t, script, nil, "")

	require.NoError(t, result.Err)
	assert.True(t, strings.HasPrefix(result.Output, "4\n"), "got %q", result.Output)
	assert.Contains(t, result.Output, "functions defined: 1\n")
	assert.Contains(t, result.Output, "function calls: 1\n")
	assert.Contains(t, result.Output, "elapsed: ")
}

func TestDirective_HTML(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunScript(t, "include: __HTML__\ntask: \"Essay\", 2, 1\nbuild()\n", nil, "")

	// --- Assert ---
	require.NoError(t, result.Err)
	page, err := os.ReadFile(result.Path("html", report.HTMLFile))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Essay")
	_, err = os.Stat(result.Path("logs"))
	assert.True(t, os.IsNotExist(err), "no log directory without __LOG__")
}

func TestTransfer_RoundTrip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "plan.yaml")
	dbPath := filepath.Join(dir, "plan.db")
	csvPath := filepath.Join(dir, "plan.csv")

	export := fmt.Sprintf(`include: __DEF_CONFIG__
work: card("Work", "BLUE")
t: task("Report", 4, 3)
add_task_card(t, work)
groceries: checklist("Groceries")
groceries.add_item("milk")
build()
export_schedule(%q)
export_schedule(%q)
export_excel(%q)
`, yamlPath, dbPath, csvPath)

	restore := fmt.Sprintf(`include: __DEF_CONFIG__
import_schedule(%q)
println(get_card(1))
`, dbPath)

	// --- Act ---
	exported := testutil.RunScript(t, export, nil, "")
	restored := testutil.RunScript(t, restore, nil, "")

	// --- Assert ---
	require.NoError(t, exported.Err)
	require.NoError(t, restored.Err)

	fromYAML, err := store.LoadYAML(yamlPath)
	require.NoError(t, err)
	fromDB, err := store.LoadSQLite(dbPath)
	require.NoError(t, err)
	if diff := cmp.Diff(fromYAML, fromDB); diff != "" {
		t.Errorf("yaml and sqlite snapshots differ (-yaml +sqlite):\n%s", diff)
	}

	if diff := cmp.Diff("Card{id=1, title=\"Work\", color=BLUE, tasks=1}\n", restored.Output); diff != "" {
		t.Errorf("restored output mismatch (-want +got):\n%s", diff)
	}

	sheet, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(sheet), "Report")
}
