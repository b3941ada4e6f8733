package interp

import "github.com/AndrewRoe34/quick-sched-sub000/internal/value"

// Scope binds names to values. A scope without a parent is the global scope;
// function scopes chain to it directly and conditional scopes chain to the
// scope they were opened in.
type Scope struct {
	parent *Scope
	vars   map[string]*value.Value
	order  []string
}

// NewScope returns an empty scope chained to parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]*value.Value)}
}

// Lookup resolves name from this scope outwards.
func (s *Scope) Lookup(name string) (*value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds v to name in this scope, replacing any binding of the same
// name held here.
func (s *Scope) Define(name string, v *value.Value) {
	v.Name = name
	if _, exists := s.vars[name]; !exists {
		s.order = append(s.order, name)
	}
	s.vars[name] = v
}

// Names lists the names bound directly in this scope, oldest first.
func (s *Scope) Names() []string {
	return append([]string(nil), s.order...)
}
