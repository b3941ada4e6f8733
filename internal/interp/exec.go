package interp

import (
	"context"
	"errors"
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/parser"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// errStop unwinds every block when the script has been asked to exit.
var errStop = errors.New("stop")

// chainState tracks where the block is in an if/elif/else chain.
type chainState int

const (
	chainNone chainState = iota
	chainTestedTrue
	chainTestedFalse
)

// returned is produced by a return statement. val is nil for a bare return.
type returned struct {
	val *value.Value
}

// frame is the state of one executing block.
type frame struct {
	scope *Scope
	depth int // 0 for the top level of the script
	chain chainState
}

func (in *Interpreter) descriptor(text string) (parser.Descriptor, error) {
	if d, ok := in.cache.get(text); ok {
		return d, nil
	}
	d, err := in.parser.Parse(text)
	if err != nil {
		return nil, err
	}
	in.cache.put(text, d)
	return d, nil
}

// execBlock runs the lines of src until they run out or a return statement
// ends the block.
func (in *Interpreter) execBlock(ctx context.Context, src *source, scope *Scope, depth int) (*returned, error) {
	fr := &frame{scope: scope, depth: depth}
	for {
		if in.exit.IsSet() {
			return nil, errStop
		}
		if ctx.Err() != nil {
			in.Interrupt()
			return nil, errStop
		}
		ln, ok := src.next()
		if !ok {
			return nil, nil
		}
		ret, err := in.execLine(ctx, src, fr, ln)
		if err != nil {
			if errors.Is(err, errStop) {
				return nil, err
			}
			return nil, scripterr.At(err, ln.num, strings.TrimSpace(ln.text))
		}
		if ret != nil {
			return ret, nil
		}
	}
}

func (in *Interpreter) execLine(ctx context.Context, src *source, fr *frame, ln line) (*returned, error) {
	d, err := in.descriptor(ln.text)
	if err != nil {
		return nil, err
	}
	kind := d.Kind()
	if kind == parser.KindComment {
		return nil, nil
	}
	if dir, ok := d.(*parser.Directive); ok {
		return nil, in.installDirective(ctx, dir)
	}
	if !in.active {
		return nil, scripterr.PreProcessorf("statement before the include directive")
	}

	in.stats.Statements++
	if in.tracer != nil {
		in.tracer.Trace(ln.num, kind, strings.TrimSpace(ln.text))
	}
	ctxlog.FromContext(ctx).Debug("Executing statement.", "line", ln.num, "kind", kind.String())

	if c, ok := d.(*parser.Conditional); ok {
		return in.execConditional(ctx, src, fr, c)
	}
	fr.chain = chainNone

	switch d := d.(type) {
	case *parser.FunctionDef:
		in.defineFunction(ctx, src, d, ln)
		return nil, nil
	case *parser.Return:
		if d.Expr == nil {
			return &returned{}, nil
		}
		v, err := in.eval(ctx, d.Expr, fr.scope)
		if err != nil {
			return nil, err
		}
		return &returned{val: v}, nil
	case *parser.StaticCall:
		_, err := in.evalCall(ctx, d.Call, fr.scope)
		return nil, err
	case *parser.AttributeCall:
		_, err := in.eval(ctx, d.Expr, fr.scope)
		return nil, err
	case *parser.InstanceDecl:
		return nil, in.declare(ctx, d, fr.scope)
	case *parser.Constant:
		return nil, nil
	case *parser.VariableReference:
		if _, ok := fr.scope.Lookup(d.Name); !ok {
			return nil, scripterr.Dereferencef("unknown variable %q", d.Name)
		}
		return nil, nil
	default:
		return nil, scripterr.Grammarf("unsupported statement %s", kind)
	}
}

// capture consumes the body of a block header indented at width: every
// following line indented deeper, blank lines included. The first line that
// is not part of the body is pushed back.
func capture(src *source, width int) []line {
	var body []line
	for {
		ln, ok := src.next()
		if !ok {
			return body
		}
		if strings.TrimSpace(ln.text) == "" || parser.Indent(ln.text) > width {
			body = append(body, ln)
			continue
		}
		src.unread(ln)
		return body
	}
}

func (in *Interpreter) defineFunction(ctx context.Context, src *source, d *parser.FunctionDef, ln line) {
	body := capture(src, d.Indent)
	if _, exists := in.functions[d.Name]; exists {
		ctxlog.FromContext(ctx).Debug("Function already defined; keeping the first definition.", "name", d.Name, "line", ln.num)
		return
	}
	in.functions[d.Name] = &Function{Name: d.Name, Params: d.Params, Body: body, Line: ln.num}
	in.stats.FunctionsDefined++
	ctxlog.FromContext(ctx).Debug("Function defined.", "name", d.Name, "params", len(d.Params), "body_lines", len(body))
}

func (in *Interpreter) execConditional(ctx context.Context, src *source, fr *frame, c *parser.Conditional) (*returned, error) {
	body := capture(src, c.Indent)

	switch c.Keyword {
	case parser.Elif:
		switch fr.chain {
		case chainNone:
			return nil, scripterr.Grammarf("elif without a preceding if")
		case chainTestedTrue:
			return nil, nil
		}
	case parser.Else:
		if fr.depth == 0 {
			return nil, scripterr.Grammarf("else is only allowed inside a block")
		}
		state := fr.chain
		fr.chain = chainNone
		switch state {
		case chainNone:
			return nil, scripterr.Grammarf("else without a preceding if")
		case chainTestedTrue:
			return nil, nil
		}
		return in.runBranch(ctx, body, fr)
	}

	v, err := in.eval(ctx, c.Cond, fr.scope)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, scripterr.Functionf("%s condition produced no value", c.Keyword)
	}
	ok, isBool := v.Bool()
	if !isBool {
		return nil, scripterr.Functionf("%s condition must be a Boolean, got %s", c.Keyword, v.TypeName())
	}
	if !ok {
		fr.chain = chainTestedFalse
		return nil, nil
	}
	fr.chain = chainTestedTrue
	return in.runBranch(ctx, body, fr)
}

// runBranch executes a conditional body in a fresh scope nested in the
// current one.
func (in *Interpreter) runBranch(ctx context.Context, body []line, fr *frame) (*returned, error) {
	in.stats.BranchesTaken++
	return in.execBlock(ctx, newSource(body), NewScope(fr.scope), fr.depth+1)
}

func (in *Interpreter) declare(ctx context.Context, d *parser.InstanceDecl, scope *Scope) error {
	var (
		v   *value.Value
		err error
	)
	if d.Ctor != nil {
		v, err = in.construct(ctx, d.Ctor.Entity, d.Ctor.Args, scope)
	} else {
		v, err = in.eval(ctx, d.Expr, scope)
	}
	if err != nil {
		return err
	}
	if v == nil {
		ctxlog.FromContext(ctx).Debug("Expression produced no value; nothing bound.", "name", d.Name)
		return nil
	}
	if existing, ok := scope.Lookup(d.Name); ok {
		existing.Assign(v)
		return nil
	}
	scope.Define(d.Name, v.Copy(d.Name))
	return nil
}
