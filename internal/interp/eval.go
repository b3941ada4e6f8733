package interp

import (
	"context"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/parser"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// eval evaluates e. Identifiers evaluate to the bound value itself so that
// mutating operations change the variable. The result is nil when e is a
// call that produces no value.
func (in *Interpreter) eval(ctx context.Context, e parser.Expr, scope *Scope) (*value.Value, error) {
	switch e := e.(type) {
	case *parser.Literal:
		return e.Value.Copy(""), nil
	case *parser.Ident:
		v, ok := scope.Lookup(e.Name)
		if !ok {
			return nil, scripterr.Dereferencef("unknown variable %q", e.Name)
		}
		return v, nil
	case *parser.Call:
		return in.evalCall(ctx, e, scope)
	case *parser.Attr:
		return in.evalAttr(ctx, e, scope)
	default:
		return nil, scripterr.Grammarf("unsupported expression %T", e)
	}
}

// evalArgs evaluates call arguments. Each must produce a value.
func (in *Interpreter) evalArgs(ctx context.Context, what string, exprs []parser.Expr, scope *Scope) ([]*value.Value, error) {
	args := make([]*value.Value, 0, len(exprs))
	for i, e := range exprs {
		v, err := in.eval(ctx, e, scope)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, scripterr.Functionf("%s: argument %d produced no value", what, i+1)
		}
		args = append(args, v)
	}
	return args, nil
}

func (in *Interpreter) evalAttr(ctx context.Context, a *parser.Attr, scope *Scope) (*value.Value, error) {
	recv, err := in.eval(ctx, a.Target, scope)
	if err != nil {
		return nil, err
	}
	for i, op := range a.Ops {
		if recv == nil {
			return nil, scripterr.Functionf("cannot apply %q: previous call produced no value", op.Name)
		}
		args, err := in.evalArgs(ctx, op.Name, op.Args, scope)
		if err != nil {
			return nil, err
		}
		recv, err = recv.Call(op.Name, args, in.env.Board)
		if err != nil {
			return nil, err
		}
		if recv == nil && i < len(a.Ops)-1 {
			return nil, scripterr.Functionf("%q produced no value to chain from", op.Name)
		}
	}
	return recv, nil
}

// evalCall resolves a static call: entity constructors first, then
// built-ins, then user-defined functions.
func (in *Interpreter) evalCall(ctx context.Context, c *parser.Call, scope *Scope) (*value.Value, error) {
	args, err := in.evalArgs(ctx, c.Name, c.Args, scope)
	if err != nil {
		return nil, err
	}
	if entity, arity, ok := parser.LookupConstructor(c.Name); ok && !in.reg.Has(c.Name) {
		if len(args) != arity {
			return nil, scripterr.Functionf("%s expects %d arguments, got %d", c.Name, arity, len(args))
		}
		return in.build(entity, args)
	}
	if in.reg.Has(c.Name) {
		in.stats.BuiltinCalls++
		return in.reg.Invoke(ctx, c.Name, args, in.env)
	}
	if fn, ok := in.functions[c.Name]; ok {
		return in.callFunction(ctx, fn, args)
	}
	return nil, scripterr.Functionf("unknown function %q", c.Name)
}

func (in *Interpreter) callFunction(ctx context.Context, fn *Function, args []*value.Value) (*value.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, scripterr.Functionf("%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	if in.depth >= in.maxDepth {
		return nil, scripterr.Functionf("%s: call depth limit of %d exceeded", fn.Name, in.maxDepth)
	}
	local := NewScope(in.global)
	for i, p := range fn.Params {
		local.Define(p, args[i].Copy(p))
	}

	in.stats.FunctionCalls++
	in.depth++
	defer func() { in.depth-- }()
	ctxlog.FromContext(ctx).Debug("Calling function.", "name", fn.Name, "depth", in.depth)

	ret, err := in.execBlock(ctx, newSource(fn.Body), local, in.depth)
	if err != nil || ret == nil {
		return nil, err
	}
	return ret.val, nil
}

func (in *Interpreter) construct(ctx context.Context, entity value.EntityKind, exprs []parser.Expr, scope *Scope) (*value.Value, error) {
	args, err := in.evalArgs(ctx, entity.String(), exprs, scope)
	if err != nil {
		return nil, err
	}
	return in.build(entity, args)
}

// build creates a schedule entity from constructor arguments whose count has
// already been checked.
func (in *Interpreter) build(entity value.EntityKind, args []*value.Value) (*value.Value, error) {
	board := in.env.Board
	str := func(i int) (string, error) {
		s, ok := args[i].Str()
		if !ok {
			return "", scripterr.Functionf("%s: argument %d must be a String, got %s", entity, i+1, args[i].TypeName())
		}
		return s, nil
	}
	num := func(i int) (int, error) {
		n, ok := args[i].Int()
		if !ok {
			return 0, scripterr.Functionf("%s: argument %d must be an Integer, got %s", entity, i+1, args[i].TypeName())
		}
		return int(n), nil
	}

	switch entity {
	case value.EntityCard:
		title, err := str(0)
		if err != nil {
			return nil, err
		}
		colorName, err := str(1)
		if err != nil {
			return nil, err
		}
		color, err := schedule.ParseColor(colorName)
		if err != nil {
			return nil, scripterr.Functionf("card: %v", err)
		}
		return value.Card(board.NewCard(title, color)), nil
	case value.EntityTask:
		title, err := str(0)
		if err != nil {
			return nil, err
		}
		hours, err := num(1)
		if err != nil {
			return nil, err
		}
		due, err := num(2)
		if err != nil {
			return nil, err
		}
		t, err := board.NewTask(title, hours, due)
		if err != nil {
			return nil, scripterr.Functionf("%v", err)
		}
		return value.Task(t), nil
	default:
		title, err := str(0)
		if err != nil {
			return nil, err
		}
		return value.CheckList(board.NewCheckList(title)), nil
	}
}
