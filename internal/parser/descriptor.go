package parser

import "github.com/AndrewRoe34/quick-sched-sub000/internal/value"

// Descriptor is the parsed form of one line.
type Descriptor interface {
	Kind() Kind
}

type Comment struct{}

// Directive is the include header.
type Directive struct {
	Flags Flags
}

// AttributeCall is a statement of the form `target.op(args)...`.
type AttributeCall struct {
	Expr *Attr
}

// StaticCall is a call to a built-in or a user-defined function.
type StaticCall struct {
	Call *Call
}

// Constructor builds a new schedule entity.
type Constructor struct {
	Entity value.EntityKind
	Args   []Expr
}

// InstanceDecl binds Name to either a new entity (Ctor) or the value of Expr.
type InstanceDecl struct {
	Name string
	Ctor *Constructor
	Expr Expr
}

// FunctionDef opens a user-defined function. Its body is the block of
// deeper-indented lines that follows.
type FunctionDef struct {
	Name   string
	Params []string
	Indent int
}

// Keyword of a conditional header.
type Keyword int

const (
	If Keyword = iota
	Elif
	Else
)

func (k Keyword) String() string {
	switch k {
	case If:
		return "if"
	case Elif:
		return "elif"
	default:
		return "else"
	}
}

// Conditional opens an if/elif/else block. Cond is nil for else.
type Conditional struct {
	Keyword Keyword
	Cond    Expr
	Indent  int
}

// Constant is a bare literal statement. It has no effect.
type Constant struct {
	Value *value.Value
}

// VariableReference is a bare identifier statement. The name must resolve.
type VariableReference struct {
	Name string
}

// Return ends the enclosing function, optionally producing Expr.
type Return struct {
	Expr Expr
}

func (Comment) Kind() Kind { return KindComment }
func (*Directive) Kind() Kind { return KindPreProcessor }
func (*AttributeCall) Kind() Kind { return KindAttribute }
func (*StaticCall) Kind() Kind { return KindStaticCall }
func (*InstanceDecl) Kind() Kind { return KindInstanceDecl }
func (*FunctionDef) Kind() Kind { return KindFunctionDef }
func (*Conditional) Kind() Kind { return KindConditional }
func (*Constant) Kind() Kind { return KindConstant }
func (*VariableReference) Kind() Kind { return KindVariableReference }
func (*Return) Kind() Kind { return KindReturn }
