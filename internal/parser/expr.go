package parser

import (
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// Expr is an evaluable argument or right-hand side.
type Expr interface {
	exprNode()
}

// Literal holds a template value. Evaluators must copy it before handing it
// to an operation that may mutate its receiver.
type Literal struct {
	Value *value.Value
}

// Ident is a bare variable reference.
type Ident struct {
	Name string
}

// Call is a static call `name(args)`.
type Call struct {
	Name string
	Args []Expr
}

// OpCall is one `.op(args)` link of an attribute chain.
type OpCall struct {
	Name string
	Args []Expr
}

// Attr is `target.op(args)[.op(args)...]`.
type Attr struct {
	Target Expr
	Ops    []OpCall
}

func (*Literal) exprNode() {}
func (*Ident) exprNode() {}
func (*Call) exprNode() {}
func (*Attr) exprNode() {}

// ParseExpr parses a single expression.
func ParseExpr(text string) (Expr, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, scripterr.Grammarf("empty expression")
	}
	if v, ok := value.ParseLiteral(s); ok {
		return &Literal{Value: v}, nil
	}
	if dot := indexTopLevel(s, '.'); dot >= 0 {
		target, err := ParseExpr(s[:dot])
		if err != nil {
			return nil, err
		}
		ops, err := parseChain(s[dot+1:])
		if err != nil {
			return nil, err
		}
		return &Attr{Target: target, Ops: ops}, nil
	}
	if open := strings.IndexByte(s, '('); open >= 0 {
		return parseCall(s, open)
	}
	if !isIdent(s) {
		return nil, scripterr.Grammarf("malformed expression %q", s)
	}
	return &Ident{Name: s}, nil
}

func parseCall(s string, open int) (*Call, error) {
	name := strings.TrimSpace(s[:open])
	if !isIdent(name) {
		return nil, scripterr.Grammarf("malformed call %q", s)
	}
	end, err := MatchParen(s, open)
	if err != nil {
		return nil, err
	}
	if end != len(s)-1 {
		return nil, scripterr.Grammarf("unexpected text after call in %q", s)
	}
	args, err := parseArgs(s[open+1 : end])
	if err != nil {
		return nil, err
	}
	return &Call{Name: name, Args: args}, nil
}

func parseArgs(inner string) ([]Expr, error) {
	parts, err := SplitArgs(inner)
	if err != nil {
		return nil, err
	}
	out := make([]Expr, 0, len(parts))
	for _, p := range parts {
		e, err := ParseExpr(p)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// parseChain parses `op(args).op2(args)...` where the parentheses of a link
// are optional when it takes no arguments.
func parseChain(s string) ([]OpCall, error) {
	var ops []OpCall
	rest := strings.TrimSpace(s)
	for {
		stop := strings.IndexAny(rest, "(.")
		var name string
		if stop < 0 {
			name, rest = strings.TrimSpace(rest), ""
		} else {
			name = strings.TrimSpace(rest[:stop])
		}
		if name == "" || strings.ContainsAny(name, " \t\",") {
			return nil, scripterr.Grammarf("malformed operation name in %q", s)
		}
		op := OpCall{Name: name}
		if stop >= 0 && rest[stop] == '(' {
			end, err := MatchParen(rest, stop)
			if err != nil {
				return nil, err
			}
			if op.Args, err = parseArgs(rest[stop+1 : end]); err != nil {
				return nil, err
			}
			rest = strings.TrimSpace(rest[end+1:])
		} else if stop >= 0 {
			rest = rest[stop:]
		}
		ops = append(ops, op)
		if rest == "" {
			return ops, nil
		}
		if rest[0] != '.' {
			return nil, scripterr.Grammarf("unexpected %q after operation %q", rest, name)
		}
		rest = strings.TrimSpace(rest[1:])
	}
}
