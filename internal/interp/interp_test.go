package interp

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/parser"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/registry"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// newTestInterpreter wires an interpreter with a minimal print/println/exit/
// inject_code set writing to the returned buffer.
func newTestInterpreter(t *testing.T, opts ...Option) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	write := func(newline bool) registry.Fn {
		return func(c *registry.Call) (*value.Value, error) {
			for _, a := range c.Args {
				out.WriteString(a.String())
			}
			if newline {
				out.WriteString("\n")
			}
			return nil, nil
		}
	}
	reg := registry.New()
	reg.Register(&registry.Builtin{Name: "print", MaxArgs: registry.Variadic, Fn: write(false)})
	reg.Register(&registry.Builtin{Name: "println", MaxArgs: registry.Variadic, Fn: write(true)})
	reg.Register(&registry.Builtin{Name: "exit", Fn: func(c *registry.Call) (*value.Value, error) {
		c.Env.Runtime.Exit()
		return nil, nil
	}})
	reg.Register(&registry.Builtin{Name: "inject_code", MinArgs: 1, MaxArgs: 1, Fn: func(c *registry.Call) (*value.Value, error) {
		s, err := c.Str(0)
		if err != nil {
			return nil, err
		}
		c.Env.Runtime.Inject(strings.Split(s, ";"))
		return nil, nil
	}})
	env := &registry.Env{Out: out, Board: schedule.NewBoard()}
	return New(reg, env, opts...), out
}

func run(t *testing.T, script string, opts ...Option) (*Interpreter, string, error) {
	t.Helper()
	in, out := newTestInterpreter(t, opts...)
	err := in.Run(context.Background(), strings.NewReader(script))
	return in, out.String(), err
}

func globalInt(t *testing.T, in *Interpreter, name string) int64 {
	t.Helper()
	v, ok := in.Global().Lookup(name)
	require.True(t, ok, "global %q not bound", name)
	n, ok := v.Int()
	require.True(t, ok, "global %q is %s", name, v.TypeName())
	return n
}

func TestRun_DeclaresTaskAndPrintsIt(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	script := "include: __DEF_CONFIG__\ntask: \"HW\", 3, 2\nprint: task\n"

	// --- Act ---
	in, out, err := run(t, script)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, in.env.Board.Tasks, 1)
	task := in.env.Board.Tasks[0]
	assert.Equal(t, "HW", task.Title)
	assert.Equal(t, 3, task.Hours)
	assert.Equal(t, 2, task.DueIn)
	assert.Equal(t, task.String(), out)
}

func TestRun_FunctionReturnsWithoutTouchingGlobals(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	script := `include: __DEF_CONFIG__
x: 10
func add_two(x):
    y: x.add(2)
    return y
r: add_two(3)
`

	// --- Act ---
	in, _, err := run(t, script)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, int64(5), globalInt(t, in, "r"))
	assert.Equal(t, int64(10), globalInt(t, in, "x"))
	_, leaked := in.Global().Lookup("y")
	assert.False(t, leaked, "local y must not reach the global scope")
	assert.Equal(t, []string{"x", "r"}, in.Global().Names())
}

func TestRun_MissingHeader(t *testing.T) {
	t.Parallel()

	_, out, err := run(t, "print(\"hi\")\n")

	require.Error(t, err)
	assert.True(t, scripterr.Is(err, scripterr.PreProcessor))
	assert.Empty(t, out)
}

func TestRun_HeaderRules(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		script string
		kind   scripterr.Kind
	}{
		{name: "duplicate flag", script: "include: __LOG__, __LOG__\n", kind: scripterr.PreProcessor},
		{name: "unknown flag", script: "include: __FOO__\n", kind: scripterr.PreProcessor},
		{name: "second directive", script: "include: __LOG__\ninclude: __STATS__\n", kind: scripterr.PreProcessor},
		{name: "statement first", script: "x: 1\ninclude: __LOG__\n", kind: scripterr.PreProcessor},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := run(t, tc.script)
			require.Error(t, err)
			assert.True(t, scripterr.Is(err, tc.kind), "got %v", err)
		})
	}
}

func TestRun_CommentsMayPrecedeHeader(t *testing.T) {
	t.Parallel()

	in, _, err := run(t, "# planner\n\ninclude: __DEF_CONFIG__, __LOG__\nprintln(1)\n")

	require.NoError(t, err)
	assert.True(t, in.Flags().Has(parser.FlagDefaultConfig))
	assert.True(t, in.Flags().Has(parser.FlagLog))
	assert.False(t, in.Flags().Has(parser.FlagStats))
}

func TestRun_LocalShadowsGlobal(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	script := `include: __DEF_CONFIG__
n: 1
func bump(n):
    n.++
    println(n)
bump(n)
println(n)
`

	// --- Act ---
	in, out, err := run(t, script)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "2\n1\n", out)
	assert.Equal(t, int64(1), globalInt(t, in, "n"))
}

func TestRun_FunctionAssignsToGlobal(t *testing.T) {
	t.Parallel()

	script := `include: __DEF_CONFIG__
total: 0
func store(v):
    total: v
store(7)
`
	in, _, err := run(t, script)

	require.NoError(t, err)
	assert.Equal(t, int64(7), globalInt(t, in, "total"))
}

func TestRun_LinkedValuesAlias(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	script := `include: __DEF_CONFIG__
a: card("Work", "RED")
b: a
b.set_title("Home")
println(a.get_title())
p: 1
q: p
q.++
println(p)
`

	// --- Act ---
	in, out, err := run(t, script)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "Home\n1\n", out)
	require.Len(t, in.env.Board.Cards, 1)
	assert.Equal(t, "Home", in.env.Board.Cards[0].Title)
}

func TestRun_EntityPassedToFunctionIsShared(t *testing.T) {
	t.Parallel()

	script := `include: __DEF_CONFIG__
func rename(c, title):
    c.set_title(title)
work: card("Work", "BLUE")
rename(work, "Office")
println(work.get_title())
`
	_, out, err := run(t, script)

	require.NoError(t, err)
	assert.Equal(t, "Office\n", out)
}

func TestRun_ConditionalChain(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	script := `include: __DEF_CONFIG__
func pick(n):
    if(n.==(1)):
        println("one")
    elif(n.==(2)):
        println("two")
    else:
        println("other")
pick(1)
pick(2)
pick(3)
`

	// --- Act ---
	_, out, err := run(t, script)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nother\n", out)
}

func TestRun_ElifSkippedAfterTrueIf(t *testing.T) {
	t.Parallel()

	// undefined is never bound, so evaluating the elif condition would fail.
	script := `include: __DEF_CONFIG__
if(true):
    println("if")
elif(undefined.==(1)):
    println("elif")
println("done")
`
	_, out, err := run(t, script)

	require.NoError(t, err)
	assert.Equal(t, "if\ndone\n", out)
}

func TestRun_IfFalseElifTrue(t *testing.T) {
	t.Parallel()

	script := `include: __DEF_CONFIG__
func f():
    if(false):
        println("a")
    elif(true):
        println("b")
    else:
        println("c")
f()
`
	_, out, err := run(t, script)

	require.NoError(t, err)
	assert.Equal(t, "b\n", out)
}

func TestRun_ChainingErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		script string
		kind   scripterr.Kind
	}{
		{
			name:   "orphan elif",
			script: "include: __DEF_CONFIG__\nelif(true):\n    println(1)\n",
			kind:   scripterr.Grammar,
		},
		{
			name:   "else at top level",
			script: "include: __DEF_CONFIG__\nif(false):\n    println(1)\nelse:\n    println(2)\n",
			kind:   scripterr.Grammar,
		},
		{
			name:   "orphan else in block",
			script: "include: __DEF_CONFIG__\nfunc f():\n    x: 0\n    else:\n        println(1)\nf()\n",
			kind:   scripterr.Grammar,
		},
		{
			name:   "elif after unrelated statement",
			script: "include: __DEF_CONFIG__\nif(false):\n    println(1)\nx: 1\nelif(true):\n    println(2)\n",
			kind:   scripterr.Grammar,
		},
		{
			name:   "non boolean condition",
			script: "include: __DEF_CONFIG__\nif(1):\n    println(1)\n",
			kind:   scripterr.Function,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, out, err := run(t, tc.script)
			require.Error(t, err)
			assert.True(t, scripterr.Is(err, tc.kind), "got %v", err)
			assert.Empty(t, out)
		})
	}
}

func TestRun_BlockCapture(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		script string
		want   string
	}{
		{
			name:   "tab indented chain inside a function",
			script: "func f(n):\n\tif(n.==(1)):\n\t\tprintln(\"one\")\n\telse:\n\t\tprintln(\"other\")\nf(1)\nf(2)\n",
			want:   "one\nother\n",
		},
		{
			name:   "tab and four spaces are the same depth",
			script: "func f():\n\tx: 1\n    println(x)\nf()\n",
			want:   "1\n",
		},
		{
			name:   "blank lines stay in the body",
			script: "func f():\n    println(\"a\")\n\n    println(\"b\")\nf()\n",
			want:   "a\nb\n",
		},
		{
			name:   "line after the body runs at the outer level",
			script: "func f():\n    println(\"in\")\nprintln(\"out\")\nf()\n",
			want:   "out\nin\n",
		},
		{
			name:   "nested body ends at the header column",
			script: "func f():\n    if(true):\n        println(\"a\")\n    println(\"b\")\nf()\n",
			want:   "a\nb\n",
		},
		{
			name:   "skipped body then outer line",
			script: "if(false):\n    println(\"skip\")\n\nprintln(\"after\")\n",
			want:   "after\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, out, err := run(t, "include: __DEF_CONFIG__\n"+tc.script)

			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestRun_ConditionalScopeIsDiscarded(t *testing.T) {
	t.Parallel()

	script := `include: __DEF_CONFIG__
if(true):
    inner: 1
println(inner)
`
	_, _, err := run(t, script)

	require.Error(t, err)
	assert.True(t, scripterr.Is(err, scripterr.Dereference))
}

func TestRun_ErrorsCarryLineNumbers(t *testing.T) {
	t.Parallel()

	script := `include: __DEF_CONFIG__
func boom():
    println("before")
    missing.++
boom()
`
	_, out, err := run(t, script)

	require.Error(t, err)
	var serr *scripterr.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, scripterr.Dereference, serr.Kind)
	assert.Equal(t, 4, serr.Line)
	assert.Equal(t, "missing.++", serr.Source)
	assert.Equal(t, "before\n", out)
}

func TestRun_FunctionErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		script string
		kind   scripterr.Kind
	}{
		{name: "unknown function", script: "include: __LOG__\nnope(1)\n", kind: scripterr.Function},
		{name: "wrong arity", script: "include: __LOG__\nfunc f(a):\n    println(a)\nf(1, 2)\n", kind: scripterr.Function},
		{name: "pairing", script: "include: __LOG__\nc: card(\"A\", \"RED\")\nc.set_color(\"BLUE\")\n", kind: scripterr.Pairing},
		{name: "unknown variable", script: "include: __LOG__\nghost\n", kind: scripterr.Dereference},
		{name: "bad grammar", script: "include: __LOG__\nprintln(\"open\n", kind: scripterr.Grammar},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := run(t, tc.script)
			require.Error(t, err)
			assert.True(t, scripterr.Is(err, tc.kind), "got %v", err)
		})
	}
}

func TestRun_RecursionLimit(t *testing.T) {
	t.Parallel()

	script := "include: __LOG__\nfunc loop():\n    loop()\nloop()\n"
	_, _, err := run(t, script, WithMaxDepth(8))

	require.Error(t, err)
	assert.True(t, scripterr.Is(err, scripterr.Function))
	assert.ErrorContains(t, err, "depth limit of 8")
}

func TestRun_FirstDefinitionWins(t *testing.T) {
	t.Parallel()

	script := `include: __LOG__
func f():
    println("first")
func f():
    println("second")
f()
`
	in, out, err := run(t, script)

	require.NoError(t, err)
	assert.Equal(t, "first\n", out)
	fn, ok := in.Function("f")
	require.True(t, ok)
	assert.Equal(t, 2, fn.Line)
	assert.Equal(t, 1, in.Stats().FunctionsDefined)
}

func TestRun_ExitStopsScript(t *testing.T) {
	t.Parallel()

	_, out, err := run(t, "include: __LOG__\nprintln(1)\nexit()\nprintln(2)\n")

	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestRun_TopLevelReturnEndsScript(t *testing.T) {
	t.Parallel()

	_, out, err := run(t, "include: __LOG__\nprintln(1)\nreturn\nprintln(2)\n")

	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestRun_BindingWithoutValueBindsNothing(t *testing.T) {
	t.Parallel()

	in, out, err := run(t, "include: __DEF_CONFIG__\nx: println(1)\nx: 2\ny: println(x)\n")

	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
	assert.Equal(t, int64(2), globalInt(t, in, "x"))
	assert.Equal(t, []string{"x"}, in.Global().Names())
}

func TestRun_InjectCode(t *testing.T) {
	t.Parallel()

	script := "include: __LOG__\ninject_code(\"x: 41;x.++\")\nprintln(x)\n"
	in, out, err := run(t, script)

	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
	assert.Equal(t, int64(42), globalInt(t, in, "x"))
}

func TestRun_InjectedFunctionErrorKeepsBodyLine(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	script := "include: __DEF_CONFIG__\ninject_code(\"func f():;    y: nope\")\nf()\n"

	// --- Act ---
	_, _, err := run(t, script)

	// --- Assert ---
	var se *scripterr.Error
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, scripterr.Dereference, se.Kind)
	assert.Equal(t, 0, se.Line)
	assert.Equal(t, "y: nope", se.Source)
}

func TestRun_Interrupted(t *testing.T) {
	t.Parallel()

	in, out := newTestInterpreter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := in.Run(ctx, strings.NewReader("include: __LOG__\nprintln(1)\n"))

	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Empty(t, out.String())
}

type recordingTracer struct {
	kinds []parser.Kind
}

func (r *recordingTracer) Trace(_ int, kind parser.Kind, _ string) {
	r.kinds = append(r.kinds, kind)
}

func TestRun_DirectiveHook(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tracer := &recordingTracer{}
	var got parser.Flags
	hook := func(_ context.Context, flags parser.Flags) (Tracer, error) {
		got = flags
		return tracer, nil
	}

	// --- Act ---
	_, _, err := run(t, "include: __STATS__\nx: 1\nx.++\n", WithDirectiveHook(hook))

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, got.Has(parser.FlagStats))
	assert.Equal(t, []parser.Kind{parser.KindInstanceDecl, parser.KindAttribute}, tracer.kinds)
}

func TestRun_DirectiveHookFailure(t *testing.T) {
	t.Parallel()

	hook := func(context.Context, parser.Flags) (Tracer, error) {
		return nil, assert.AnError
	}
	_, _, err := run(t, "include: __LOG__\nprintln(1)\n", WithDirectiveHook(hook))

	require.Error(t, err)
	assert.True(t, scripterr.Is(err, scripterr.PreProcessor))
}

func TestRun_CachesRepeatedLines(t *testing.T) {
	t.Parallel()

	script := "include: __LOG__\nfunc f():\n    println(1)\nf()\nf()\nf()\n"
	in, out, err := run(t, script)

	require.NoError(t, err)
	assert.Equal(t, "1\n1\n1\n", out)
	stats := in.Stats()
	assert.Equal(t, 3, stats.FunctionCalls)
	assert.GreaterOrEqual(t, stats.CacheHits, 4)
}
