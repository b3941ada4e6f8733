package integration_tests

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/app"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/testutil"
)

func TestScript_Output(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		script string
		input  string
		want   string
	}{
		{
			name:   "task declaration printed",
			script: "include: __DEF_CONFIG__\ntask: \"HW\", 3, 2\nprint: task\n",
			want:   `Task{id=1, title="HW", hours=3, due=2, color=NONE}`,
		},
		{
			name: "function result without touching globals",
			script: `include: __DEF_CONFIG__
x: 10
func add_two(x):
    y: x.add(2)
    return y
r: add_two(3)
println(r)
println(x)
`,
			want: "5\n10\n",
		},
		{
			name: "conditional chain",
			script: `include: __DEF_CONFIG__
func size(n):
    if(n.>(3)):
        println("big")
    elif(n.==(3)):
        println("three")
    else:
        println("small")
size(input_int("n? "))
`,
			input: "3\n",
			want:  "n? three\n",
		},
		{
			name: "card and checklist",
			script: `include: __DEF_CONFIG__
work: card("Work", "BLUE")
t: task("Report", 4, 3)
add_task_card(t, work)
println(work)
groceries: checklist("Groceries")
groceries.add_item("milk")
groceries.add_item("eggs")
groceries.mark_item_by_name("eggs")
println(groceries.get_percent())
`,
			want: "Card{id=1, title=\"Work\", color=BLUE, tasks=1}\n50\n",
		},
		{
			name:   "exit stops the script",
			script: "include: __DEF_CONFIG__\nprintln(\"a\")\nexit()\nprintln(\"b\")\n",
			want:   "a\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.RunScript(t, tc.script, nil, tc.input)

			// --- Assert ---
			require.NoError(t, result.Err)
			if diff := cmp.Diff(tc.want, result.Output); diff != "" {
				t.Errorf("script output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScript_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		script string
		kind   scripterr.Kind
		line   int
		output string
	}{
		{
			name:   "missing header",
			script: "print(\"hi\")\n",
			kind:   scripterr.PreProcessor,
			line:   1,
		},
		{
			name:   "unknown variable",
			script: "include: __DEF_CONFIG__\nprintln(\"before\")\nprintln(missing)\n",
			kind:   scripterr.Dereference,
			line:   3,
			output: "before\n",
		},
		{
			name:   "bad statement",
			script: "include: __DEF_CONFIG__\nx: 1\nprintln(\"open\n",
			kind:   scripterr.Grammar,
			line:   3,
		},
		{
			name:   "wrong argument types",
			script: "include: __DEF_CONFIG__\nc: card(\"A\", \"RED\")\nadd_task_card(c, c)\n",
			kind:   scripterr.Pairing,
			line:   3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := testutil.RunScript(t, tc.script, nil, "")

			testutil.RequireScriptError(t, result, tc.kind, tc.line)
			require.Equal(t, tc.output, result.Output)
		})
	}
}

func TestScript_Interrupted(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// --- Act ---
	result := testutil.RunScriptWithContext(ctx, t, "include: __DEF_CONFIG__\nprintln(\"hi\")\n", nil, "")

	// --- Assert ---
	require.True(t, app.IsInterrupted(result.Err), "got %v", result.Err)
	require.Empty(t, result.Output)
}
