package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/config"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/parser"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/prompt"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// Module is the interface that all built-in modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Variadic marks a Builtin without an upper argument bound.
const Variadic = -1

// Fn implements a built-in. A nil value means the call produces nothing.
type Fn func(c *Call) (*value.Value, error)

// Builtin is a registered built-in function and its arity contract.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int // Variadic for no limit
	Fn      Fn
}

// Runtime is the part of the interpreter a built-in may steer.
type Runtime interface {
	// Inject splices lines in front of the remaining script.
	Inject(lines []string)
	// Exit stops the script after the current statement.
	Exit()
	// Enabled reports whether the include directive set flag.
	Enabled(flag parser.Flag) bool
}

// Relay is the calendar relay used by the calendar built-ins.
type Relay interface {
	Emit(ctx context.Context, event string, payload any) error
	Request(ctx context.Context, event, reply string, payload any) (json.RawMessage, error)
}

// Env carries the collaborators a built-in works with.
type Env struct {
	Out      io.Writer
	Prompter prompt.Prompter
	Board    *schedule.Board
	Settings *config.Settings
	Relay    Relay // nil when no relay is configured
	Runtime  Runtime
}

// Call is a single invocation of a built-in.
type Call struct {
	Ctx  context.Context
	Name string
	Args []*value.Value
	Env  *Env
}

// Registry holds all the registered built-ins for a single interpreter.
type Registry struct {
	builtins map[string]*Builtin
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{builtins: make(map[string]*Builtin)}
}

// Register adds a built-in. It panics on a duplicate name or a nonsensical
// arity, both of which are programming errors.
func (r *Registry) Register(b *Builtin) {
	if _, exists := r.builtins[b.Name]; exists {
		panic(fmt.Sprintf("built-in with name '%s' already registered", b.Name))
	}
	if b.Fn == nil || b.MinArgs < 0 || (b.MaxArgs != Variadic && b.MaxArgs < b.MinArgs) {
		panic(fmt.Sprintf("built-in '%s' has an invalid definition", b.Name))
	}
	slog.Debug("Registering built-in.", "name", b.Name)
	r.builtins[b.Name] = b
}

// Lookup finds a built-in by name.
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	b, ok := r.builtins[name]
	return b, ok
}

// Has reports whether name is a built-in.
func (r *Registry) Has(name string) bool {
	_, ok := r.builtins[name]
	return ok
}

// Names lists the registered built-ins in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builtins))
	for n := range r.builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Invoke checks the arity contract and runs the built-in.
func (r *Registry) Invoke(ctx context.Context, name string, args []*value.Value, env *Env) (*value.Value, error) {
	b, ok := r.builtins[name]
	if !ok {
		return nil, scripterr.Functionf("unknown function %q", name)
	}
	if len(args) < b.MinArgs || (b.MaxArgs != Variadic && len(args) > b.MaxArgs) {
		return nil, scripterr.Functionf("%s expects %s, got %d", name, b.arity(), len(args))
	}
	return b.Fn(&Call{Ctx: ctx, Name: name, Args: args, Env: env})
}

func (b *Builtin) arity() string {
	switch {
	case b.MaxArgs == Variadic:
		return fmt.Sprintf("at least %d argument(s)", b.MinArgs)
	case b.MinArgs == b.MaxArgs:
		return fmt.Sprintf("%d argument(s)", b.MinArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", b.MinArgs, b.MaxArgs)
	}
}
