package interp

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/tevino/abool/v2"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/parser"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/registry"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
)

// ErrInterrupted is returned by Run when Interrupt stopped the script.
var ErrInterrupted = errors.New("script interrupted")

// Tracer receives every statement the interpreter executes.
type Tracer interface {
	Trace(lineNum int, kind parser.Kind, text string)
}

// DirectiveHook runs once the include directive has been read, before any
// other statement. It may return a Tracer to receive the statements that
// follow. A non-script error it returns is reported as a PreProcessorError.
type DirectiveHook func(ctx context.Context, flags parser.Flags) (Tracer, error)

// Function is a user-defined function captured from the script.
type Function struct {
	Name   string
	Params []string
	Body   []line
	Line   int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithDirectiveHook installs the hook run when the include directive is read.
func WithDirectiveHook(h DirectiveHook) Option {
	return func(in *Interpreter) { in.onDirective = h }
}

// WithMaxDepth limits the nesting of user-defined function calls.
func WithMaxDepth(n int) Option {
	return func(in *Interpreter) { in.maxDepth = n }
}

// Interpreter is the execution context of one script run.
type Interpreter struct {
	reg    *registry.Registry
	env    *registry.Env
	parser *parser.Parser
	cache  *descriptorCache

	global    *Scope
	functions map[string]*Function
	flags     parser.Flags
	active    bool

	top         *source
	tracer      Tracer
	onDirective DirectiveHook
	maxDepth    int
	depth       int

	exit        *abool.AtomicBool
	interrupted *abool.AtomicBool

	stats Stats
}

// New creates an interpreter calling built-ins from reg with env. env.Runtime
// is set to the interpreter.
func New(reg *registry.Registry, env *registry.Env, opts ...Option) *Interpreter {
	in := &Interpreter{
		reg:         reg,
		env:         env,
		parser:      parser.New(reg.Has),
		cache:       newDescriptorCache(),
		global:      NewScope(nil),
		functions:   make(map[string]*Function),
		maxDepth:    256,
		exit:        abool.New(),
		interrupted: abool.New(),
	}
	for _, opt := range opts {
		opt(in)
	}
	env.Runtime = in
	return in
}

// Run executes the script read from r.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	logger := ctxlog.FromContext(ctx)
	src, err := readSource(r)
	if err != nil {
		return err
	}
	in.top = src
	in.stats.Started = time.Now()
	defer func() { in.stats.Elapsed = time.Since(in.stats.Started) }()

	logger.Debug("Script started.", "lines", src.q.Len())
	_, err = in.execBlock(ctx, src, in.global, 0)
	switch {
	case errors.Is(err, errStop):
		if in.interrupted.IsSet() {
			return ErrInterrupted
		}
		logger.Debug("Script exited early.")
		return nil
	case err != nil:
		return err
	}
	logger.Debug("Script finished.", "statements", in.stats.Statements, "cache_hits", in.cache.hits)
	return nil
}

// Global is the script's global scope.
func (in *Interpreter) Global() *Scope { return in.global }

// Function returns a captured user-defined function.
func (in *Interpreter) Function(name string) (*Function, bool) {
	f, ok := in.functions[name]
	return f, ok
}

// Flags returns the flags set by the include directive.
func (in *Interpreter) Flags() parser.Flags { return in.flags }

// Stats returns the counters of the run so far.
func (in *Interpreter) Stats() Stats {
	s := in.stats
	s.CacheHits = in.cache.hits
	return s
}

// Inject splices lines in front of the rest of the script.
func (in *Interpreter) Inject(lines []string) {
	if in.top != nil {
		in.top.inject(lines)
	}
}

// Exit stops the script once the current statement completes.
func (in *Interpreter) Exit() { in.exit.Set() }

// Interrupt is Exit for an external stop request; Run then returns
// ErrInterrupted. It is safe to call from another goroutine.
func (in *Interpreter) Interrupt() {
	in.interrupted.Set()
	in.exit.Set()
}

// Enabled reports whether the include directive set flag.
func (in *Interpreter) Enabled(flag parser.Flag) bool { return in.flags.Has(flag) }

func (in *Interpreter) installDirective(ctx context.Context, d *parser.Directive) error {
	if in.active {
		return scripterr.PreProcessorf("include directive may only appear once")
	}
	in.flags = d.Flags
	in.active = true
	ctxlog.FromContext(ctx).Debug("Directive installed.", "flags", d.Flags.String())
	if in.onDirective == nil {
		return nil
	}
	tracer, err := in.onDirective(ctx, d.Flags)
	if err != nil {
		if _, ok := scripterr.KindOf(err); ok {
			return err
		}
		return scripterr.PreProcessorf("%v", err)
	}
	in.tracer = tracer
	return nil
}
