package parser

import (
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

var constructors = map[string]struct {
	entity value.EntityKind
	arity  int
}{
	"card":      {value.EntityCard, 2},
	"task":      {value.EntityTask, 3},
	"checklist": {value.EntityCheckList, 1},
}

// LookupConstructor reports the entity kind and the required argument count
// of an entity constructor keyword.
func LookupConstructor(name string) (value.EntityKind, int, bool) {
	c, ok := constructors[name]
	return c.entity, c.arity, ok
}

// Parser turns raw lines into descriptors. IsBuiltin decides whether
// `name: args` is the colon form of a built-in call rather than a binding.
type Parser struct {
	IsBuiltin func(name string) bool
}

// New returns a parser that consults isBuiltin; a nil func knows no built-ins.
func New(isBuiltin func(string) bool) *Parser {
	if isBuiltin == nil {
		isBuiltin = func(string) bool { return false }
	}
	return &Parser{IsBuiltin: isBuiltin}
}

// Parse classifies line and builds its descriptor.
func (p *Parser) Parse(line string) (Descriptor, error) {
	s := strings.TrimSpace(line)
	switch Classify(line) {
	case KindComment:
		return Comment{}, nil
	case KindPreProcessor:
		flags, err := ParseDirective(s)
		if err != nil {
			return nil, err
		}
		return &Directive{Flags: flags}, nil
	case KindReturn:
		return p.parseReturn(s)
	case KindFunctionDef:
		return p.parseFunctionDef(s, Indent(line))
	case KindConditional:
		return p.parseConditional(s, Indent(line))
	case KindInstanceDecl:
		return p.parseInstanceDecl(s)
	case KindConstant:
		v, ok := value.ParseLiteral(s)
		if !ok {
			return nil, scripterr.Grammarf("malformed constant %q", s)
		}
		return &Constant{Value: v}, nil
	case KindAttribute:
		e, err := ParseExpr(s)
		if err != nil {
			return nil, err
		}
		attr, ok := e.(*Attr)
		if !ok {
			return nil, scripterr.Grammarf("expected an attribute call, got %q", s)
		}
		return &AttributeCall{Expr: attr}, nil
	case KindStaticCall:
		call, err := parseCall(s, strings.IndexByte(s, '('))
		if err != nil {
			return nil, err
		}
		return &StaticCall{Call: call}, nil
	default:
		if !isIdent(s) {
			return nil, scripterr.Grammarf("unrecognised statement %q", s)
		}
		return &VariableReference{Name: s}, nil
	}
}

func (p *Parser) parseReturn(s string) (Descriptor, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(s, "return"))
	if rest == "" {
		return &Return{}, nil
	}
	e, err := ParseExpr(rest)
	if err != nil {
		return nil, err
	}
	return &Return{Expr: e}, nil
}

// header strips the keyword and an optional trailing ':' from a block header.
func header(s, keyword string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(s, keyword))
	return strings.TrimSpace(strings.TrimSuffix(rest, ":"))
}

func (p *Parser) parseFunctionDef(s string, indent int) (Descriptor, error) {
	sig := header(s, "func")
	open := strings.IndexByte(sig, '(')
	if open < 0 {
		return nil, scripterr.Grammarf("function definition needs a parameter list: %q", s)
	}
	name := strings.TrimSpace(sig[:open])
	if !isIdent(name) {
		return nil, scripterr.Grammarf("invalid function name %q", name)
	}
	if p.IsBuiltin(name) {
		return nil, scripterr.Grammarf("cannot redefine built-in %q", name)
	}
	end, err := MatchParen(sig, open)
	if err != nil {
		return nil, err
	}
	if end != len(sig)-1 {
		return nil, scripterr.Grammarf("unexpected text after parameter list: %q", s)
	}
	params, err := SplitArgs(sig[open+1 : end])
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(params))
	for _, param := range params {
		if !isIdent(param) {
			return nil, scripterr.Grammarf("invalid parameter %q in %q", param, name)
		}
		if seen[param] {
			return nil, scripterr.Grammarf("duplicate parameter %q in %q", param, name)
		}
		seen[param] = true
	}
	return &FunctionDef{Name: name, Params: params, Indent: indent}, nil
}

func (p *Parser) parseConditional(s string, indent int) (Descriptor, error) {
	kw := leadingIdent(s)
	c := &Conditional{Indent: indent}
	switch kw {
	case "if":
		c.Keyword = If
	case "elif":
		c.Keyword = Elif
	default:
		c.Keyword = Else
	}
	rest := header(s, kw)
	if c.Keyword == Else {
		if rest != "" {
			return nil, scripterr.Grammarf("else takes no condition: %q", s)
		}
		return c, nil
	}
	if rest == "" {
		return nil, scripterr.Grammarf("%s needs a condition: %q", kw, s)
	}
	if rest[0] == '(' {
		if end, err := MatchParen(rest, 0); err == nil && end == len(rest)-1 {
			args, err := parseArgs(rest[1:end])
			if err != nil {
				return nil, err
			}
			if len(args) != 1 {
				return nil, scripterr.Grammarf("%s takes exactly one condition, got %d", kw, len(args))
			}
			c.Cond = args[0]
			return c, nil
		}
	}
	cond, err := ParseExpr(rest)
	if err != nil {
		return nil, err
	}
	c.Cond = cond
	return c, nil
}

func (p *Parser) parseInstanceDecl(s string) (Descriptor, error) {
	name, rhs, _ := strings.Cut(s, ":")
	name, rhs = strings.TrimSpace(name), strings.TrimSpace(rhs)
	if !isIdent(name) {
		return nil, scripterr.Grammarf("invalid variable name %q", name)
	}

	// `print: x` is the colon form of a built-in call.
	if p.IsBuiltin(name) {
		args, err := parseArgs(rhs)
		if err != nil {
			return nil, err
		}
		return &StaticCall{Call: &Call{Name: name, Args: args}}, nil
	}
	if rhs == "" {
		return nil, scripterr.Grammarf("declaration of %q has no value", name)
	}
	if v, ok := value.ParseLiteral(rhs); ok {
		if ctor, isCtor := constructors[name]; isCtor && ctor.entity == value.EntityCheckList {
			if _, isStr := v.Str(); isStr {
				return &InstanceDecl{Name: name, Ctor: &Constructor{Entity: ctor.entity, Args: []Expr{&Literal{Value: v}}}}, nil
			}
		}
		return &InstanceDecl{Name: name, Expr: &Literal{Value: v}}, nil
	}

	// `task: "HW", 3, 2` declares a task bound to the name task.
	if ctor, ok := constructors[name]; ok {
		parts, err := SplitArgs(rhs)
		if err != nil {
			return nil, err
		}
		if len(parts) > 1 {
			args, err := parseArgs(rhs)
			if err != nil {
				return nil, err
			}
			if len(args) != ctor.arity {
				return nil, scripterr.Grammarf("%s expects %d arguments, got %d", name, ctor.arity, len(args))
			}
			return &InstanceDecl{Name: name, Ctor: &Constructor{Entity: ctor.entity, Args: args}}, nil
		}
	}

	if open := strings.IndexByte(rhs, '('); open > 0 {
		kw := strings.TrimSpace(rhs[:open])
		end, _ := MatchParen(rhs, open)
		if ctor, ok := constructors[kw]; ok && end == len(rhs)-1 {
			call, err := parseCall(rhs, open)
			if err != nil {
				return nil, err
			}
			if len(call.Args) != ctor.arity {
				return nil, scripterr.Grammarf("%s expects %d arguments, got %d", kw, ctor.arity, len(call.Args))
			}
			return &InstanceDecl{Name: name, Ctor: &Constructor{Entity: ctor.entity, Args: call.Args}}, nil
		}
	}

	e, err := ParseExpr(rhs)
	if err != nil {
		return nil, err
	}
	return &InstanceDecl{Name: name, Expr: e}, nil
}
