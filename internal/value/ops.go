package value

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
)

// op is an attribute operation. A nil result means the operation produces
// no value.
type op struct {
	arity int // -1 for "checked by fn"
	fn    func(recv *Value, args []*Value, board *schedule.Board) (*Value, error)
}

var (
	integerOps   map[string]op
	stringOps    map[string]op
	cardOps      map[string]op
	taskOps      map[string]op
	checkListOps map[string]op
)

func (v *Value) ops() (map[string]op, string) {
	switch v.kind {
	case KindInteger:
		return integerOps, "Integer"
	case KindString:
		return stringOps, "String"
	case KindBoolean:
		return nil, "Boolean"
	}
	switch v.entity {
	case EntityCard:
		return cardOps, "Card"
	case EntityTask:
		return taskOps, "Task"
	default:
		return checkListOps, "CheckList"
	}
}

// Call applies the named attribute operation to v. board receives entity
// moves such as Card.add; it may be nil.
//
// An operation that exists on some other kind is a PairingError, one that
// exists nowhere is a FunctionError.
func (v *Value) Call(name string, args []*Value, board *schedule.Board) (*Value, error) {
	table, typeName := v.ops()
	o, ok := table[name]
	if !ok {
		for _, other := range []map[string]op{integerOps, stringOps, cardOps, taskOps, checkListOps} {
			if _, exists := other[name]; exists {
				return nil, scripterr.Pairingf("operation %q cannot be applied to a %s", name, typeName)
			}
		}
		return nil, scripterr.Functionf("unknown operation %q on %s", name, typeName)
	}
	if o.arity >= 0 && len(args) != o.arity {
		return nil, scripterr.Functionf("%s.%s expects %d argument(s), got %d", typeName, name, o.arity, len(args))
	}
	return o.fn(v, args, board)
}

// HasOp reports whether any value kind defines the operation.
func HasOp(name string) bool {
	for _, t := range []map[string]op{integerOps, stringOps, cardOps, taskOps, checkListOps} {
		if _, ok := t[name]; ok {
			return true
		}
	}
	return false
}

func argInt(name string, args []*Value, i int) (int64, error) {
	n, ok := args[i].Int()
	if !ok {
		return 0, scripterr.Functionf("%s: argument %d must be an Integer, got %s", name, i+1, args[i].TypeName())
	}
	return n, nil
}

func argStr(name string, args []*Value, i int) (string, error) {
	s, ok := args[i].Str()
	if !ok {
		return "", scripterr.Functionf("%s: argument %d must be a String, got %s", name, i+1, args[i].TypeName())
	}
	return s, nil
}

func intBinary(name string, f func(a, b int64) (*Value, error)) op {
	return op{arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
		b, err := argInt(name, args, 0)
		if err != nil {
			return nil, err
		}
		return f(recv.integer, b)
	}}
}

func compare(name string, f func(a, b int64) bool) op {
	return intBinary(name, func(a, b int64) (*Value, error) { return Bool(f(a, b)), nil })
}

func step(name string, delta int64) op {
	return op{arity: 0, fn: func(recv *Value, _ []*Value, _ *schedule.Board) (*Value, error) {
		n, ok := CheckedAdd(recv.integer, delta)
		if !ok {
			return nil, scripterr.Functionf("%s: integer overflow", name)
		}
		recv.integer = n
		return recv, nil
	}}
}

func init() {
	integerOps = map[string]op{
		"++":      step("++", 1),
		"add_one": step("add_one", 1),
		"--":      step("--", -1),
		"sub_one": step("sub_one", -1),
		"add": intBinary("add", func(a, b int64) (*Value, error) {
			n, ok := CheckedAdd(a, b)
			if !ok {
				return nil, scripterr.Functionf("add: %d + %d overflows", a, b)
			}
			return Int(n), nil
		}),
		"//": intBinary("//", func(a, b int64) (*Value, error) {
			if b == 0 {
				return nil, scripterr.Functionf("division by zero")
			}
			if a == math.MinInt64 && b == -1 {
				return nil, scripterr.Functionf("%d // %d overflows", a, b)
			}
			return Int(a / b), nil
		}),
		"**": intBinary("**", func(a, b int64) (*Value, error) {
			if b < 0 {
				return nil, scripterr.Functionf("negative exponent %d", b)
			}
			n, ok := CheckedPow(a, b)
			if !ok {
				return nil, scripterr.Functionf("%d ** %d overflows", a, b)
			}
			return Int(n), nil
		}),
		"%": intBinary("%", func(a, b int64) (*Value, error) {
			if b == 0 {
				return nil, scripterr.Functionf("modulo by zero")
			}
			return Int(a % b), nil
		}),
		"%%": intBinary("%%", func(a, b int64) (*Value, error) {
			if b == 0 {
				return nil, scripterr.Functionf("percentage of zero")
			}
			n, ok := CheckedMul(a, 100)
			if !ok {
				return nil, scripterr.Functionf("%d %%%% %d overflows", a, b)
			}
			return Int(n / b), nil
		}),
		"==": compare("==", func(a, b int64) bool { return a == b }),
		"!=": compare("!=", func(a, b int64) bool { return a != b }),
		"<":  compare("<", func(a, b int64) bool { return a < b }),
		">":  compare(">", func(a, b int64) bool { return a > b }),
		"<=": compare("<=", func(a, b int64) bool { return a <= b }),
		">=": compare(">=", func(a, b int64) bool { return a >= b }),
	}

	stringOps = map[string]op{
		"concat": {arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
			return String(recv.str + args[0].String()), nil
		}},
		"add": {arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
			recv.str += args[0].String()
			return recv, nil
		}},
		"length": {arity: 0, fn: func(recv *Value, _ []*Value, _ *schedule.Board) (*Value, error) {
			return Int(int64(utf8.RuneCountInString(recv.str))), nil
		}},
		"parse_int": {arity: 0, fn: func(recv *Value, _ []*Value, _ *schedule.Board) (*Value, error) {
			n, err := strconv.ParseInt(recv.str, 10, 64)
			if err != nil {
				return nil, scripterr.Functionf("cannot parse %q as an Integer", recv.str)
			}
			return Int(n), nil
		}},
		"parse_bool": {arity: 0, fn: func(recv *Value, _ []*Value, _ *schedule.Board) (*Value, error) {
			switch recv.str {
			case "true":
				return Bool(true), nil
			case "false":
				return Bool(false), nil
			}
			return nil, scripterr.Functionf("cannot parse %q as a Boolean", recv.str)
		}},
		"sub_string": {arity: 2, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
			start, err := argInt("sub_string", args, 0)
			if err != nil {
				return nil, err
			}
			end, err := argInt("sub_string", args, 1)
			if err != nil {
				return nil, err
			}
			runes := []rune(recv.str)
			if start < 0 || end < start || end > int64(len(runes)) {
				return nil, scripterr.Functionf("sub_string(%d, %d) out of range for length %d", start, end, len(runes))
			}
			return String(string(runes[start:end])), nil
		}},
		"==": {arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
			s, err := argStr("==", args, 0)
			if err != nil {
				return nil, err
			}
			return Bool(recv.str == s), nil
		}},
		"!=": {arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
			s, err := argStr("!=", args, 0)
			if err != nil {
				return nil, err
			}
			return Bool(recv.str != s), nil
		}},
	}

	cardOps = map[string]op{
		"get_title": {arity: 0, fn: func(recv *Value, _ []*Value, _ *schedule.Board) (*Value, error) {
			c, _ := recv.Card()
			return String(c.Title), nil
		}},
		"set_title": {arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
			s, err := argStr("set_title", args, 0)
			if err != nil {
				return nil, err
			}
			c, _ := recv.Card()
			c.Title = s
			return nil, nil
		}},
		"add": {arity: 1, fn: func(recv *Value, args []*Value, board *schedule.Board) (*Value, error) {
			t, ok := args[0].Task()
			if !ok {
				return nil, scripterr.Pairingf("a Card can only hold Tasks, got %s", args[0].TypeName())
			}
			c, _ := recv.Card()
			if board != nil {
				board.AssignTask(t, c)
			} else {
				c.Add(t)
			}
			return nil, nil
		}},
	}

	taskOps = map[string]op{
		"get_title": {arity: 0, fn: func(recv *Value, _ []*Value, _ *schedule.Board) (*Value, error) {
			t, _ := recv.Task()
			return String(t.Title), nil
		}},
		"get_color": {arity: 0, fn: func(recv *Value, _ []*Value, _ *schedule.Board) (*Value, error) {
			t, _ := recv.Task()
			return String(t.Color.String()), nil
		}},
		"set_title": {arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
			s, err := argStr("set_title", args, 0)
			if err != nil {
				return nil, err
			}
			t, _ := recv.Task()
			t.Title = s
			return nil, nil
		}},
		"set_color": {arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
			s, err := argStr("set_color", args, 0)
			if err != nil {
				return nil, err
			}
			c, err := schedule.ParseColor(s)
			if err != nil {
				return nil, scripterr.Functionf("set_color: %v", err)
			}
			t, _ := recv.Task()
			t.Color = c
			return nil, nil
		}},
	}

	checkListOps = map[string]op{
		"get_id": {arity: 0, fn: func(recv *Value, _ []*Value, _ *schedule.Board) (*Value, error) {
			cl, _ := recv.CheckList()
			return Int(int64(cl.ID)), nil
		}},
		"get_title": {arity: 0, fn: func(recv *Value, _ []*Value, _ *schedule.Board) (*Value, error) {
			cl, _ := recv.CheckList()
			return String(cl.Title), nil
		}},
		"set_title": {arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
			s, err := argStr("set_title", args, 0)
			if err != nil {
				return nil, err
			}
			cl, _ := recv.CheckList()
			cl.Title = s
			return nil, nil
		}},
		"get_percent": {arity: 0, fn: func(recv *Value, _ []*Value, _ *schedule.Board) (*Value, error) {
			cl, _ := recv.CheckList()
			return Int(int64(cl.Percent())), nil
		}},
		"add_item": {arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
			s, err := argStr("add_item", args, 0)
			if err != nil {
				return nil, err
			}
			cl, _ := recv.CheckList()
			cl.AddItem(s)
			return nil, nil
		}},
		"remove_item_by_id":   byID("remove_item_by_id", (*schedule.CheckList).RemoveByID),
		"mark_item_by_id":     byID("mark_item_by_id", (*schedule.CheckList).MarkByID),
		"remove_item_by_name": byName("remove_item_by_name", (*schedule.CheckList).RemoveByName),
		"mark_item_by_name":   byName("mark_item_by_name", (*schedule.CheckList).MarkByName),
	}
}

func byID(name string, f func(*schedule.CheckList, int) bool) op {
	return op{arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
		id, err := argInt(name, args, 0)
		if err != nil {
			return nil, err
		}
		cl, _ := recv.CheckList()
		if !f(cl, int(id)) {
			return nil, scripterr.Functionf("%s: checklist %q has no item %d", name, cl.Title, id)
		}
		return nil, nil
	}}
}

func byName(name string, f func(*schedule.CheckList, string) bool) op {
	return op{arity: 1, fn: func(recv *Value, args []*Value, _ *schedule.Board) (*Value, error) {
		s, err := argStr(name, args, 0)
		if err != nil {
			return nil, err
		}
		cl, _ := recv.CheckList()
		if !f(cl, s) {
			return nil, scripterr.Functionf("%s: checklist %q has no item %q", name, cl.Title, s)
		}
		return nil, nil
	}}
}
