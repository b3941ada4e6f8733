// Package value implements the runtime value of a smpl script: a closed set
// of variants (Integer, Boolean, String, Linked entity) with per-variant
// attribute operations.
package value

import (
	"fmt"
	"strconv"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
)

// Kind is the active variant of a Value.
type Kind int

const (
	KindInteger Kind = iota
	KindBoolean
	KindString
	KindLinked
)

// EntityKind says what a Linked value points at.
type EntityKind int

const (
	EntityCard EntityKind = iota
	EntityTask
	EntityCheckList
)

func (k EntityKind) String() string {
	switch k {
	case EntityCard:
		return "Card"
	case EntityTask:
		return "Task"
	case EntityCheckList:
		return "CheckList"
	default:
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
}

// Value is a dynamically typed script value. Exactly one variant is active.
// Linked values hold a pointer to a schedule entity; copies share it.
type Value struct {
	Name string

	kind    Kind
	integer int64
	boolean bool
	str     string
	entity  EntityKind
	ref     any
}

func Int(n int64) *Value { return &Value{kind: KindInteger, integer: n} }
func Bool(b bool) *Value { return &Value{kind: KindBoolean, boolean: b} }
func String(s string) *Value { return &Value{kind: KindString, str: s} }

func Card(c *schedule.Card) *Value {
	return &Value{kind: KindLinked, entity: EntityCard, ref: c}
}

func Task(t *schedule.Task) *Value {
	return &Value{kind: KindLinked, entity: EntityTask, ref: t}
}

func CheckList(cl *schedule.CheckList) *Value {
	return &Value{kind: KindLinked, entity: EntityCheckList, ref: cl}
}

func (v *Value) Kind() Kind { return v.kind }

// Entity reports the entity kind of a Linked value.
func (v *Value) Entity() (EntityKind, bool) {
	return v.entity, v.kind == KindLinked
}

func (v *Value) Int() (int64, bool) { return v.integer, v.kind == KindInteger }
func (v *Value) Bool() (bool, bool) { return v.boolean, v.kind == KindBoolean }
func (v *Value) Str() (string, bool) { return v.str, v.kind == KindString }

func (v *Value) Card() (*schedule.Card, bool) {
	c, ok := v.ref.(*schedule.Card)
	return c, ok && v.kind == KindLinked
}

func (v *Value) Task() (*schedule.Task, bool) {
	t, ok := v.ref.(*schedule.Task)
	return t, ok && v.kind == KindLinked
}

func (v *Value) CheckList() (*schedule.CheckList, bool) {
	cl, ok := v.ref.(*schedule.CheckList)
	return cl, ok && v.kind == KindLinked
}

// TypeName is the name used in error messages.
func (v *Value) TypeName() string {
	switch v.kind {
	case KindInteger:
		return "Integer"
	case KindBoolean:
		return "Boolean"
	case KindString:
		return "String"
	case KindLinked:
		return v.entity.String()
	default:
		return "Unknown"
	}
}

// Copy returns a new value holding the same payload under a new name.
// Linked values keep pointing at the same entity.
func (v *Value) Copy(name string) *Value {
	c := *v
	c.Name = name
	return &c
}

// Assign switches v to the variant and payload of src, keeping v's name.
func (v *Value) Assign(src *Value) {
	name := v.Name
	*v = *src
	v.Name = name
}

func (v *Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	case KindString:
		return v.str
	case KindLinked:
		if s, ok := v.ref.(fmt.Stringer); ok {
			return s.String()
		}
		return v.entity.String()
	default:
		return "<invalid>"
	}
}
