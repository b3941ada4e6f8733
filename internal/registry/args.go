package registry

import (
	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
)

func (c *Call) typeErr(i int, want string) error {
	return scripterr.Functionf("%s: argument %d must be a %s, got %s", c.Name, i+1, want, c.Args[i].TypeName())
}

// Int returns argument i as an integer.
func (c *Call) Int(i int) (int64, error) {
	n, ok := c.Args[i].Int()
	if !ok {
		return 0, c.typeErr(i, "Integer")
	}
	return n, nil
}

// Str returns argument i as a string.
func (c *Call) Str(i int) (string, error) {
	s, ok := c.Args[i].Str()
	if !ok {
		return "", c.typeErr(i, "String")
	}
	return s, nil
}

// Task returns argument i as a task entity.
func (c *Call) Task(i int) (*schedule.Task, error) {
	t, ok := c.Args[i].Task()
	if !ok {
		return nil, c.typeErr(i, "Task")
	}
	return t, nil
}

// Card returns argument i as a card entity.
func (c *Call) Card(i int) (*schedule.Card, error) {
	card, ok := c.Args[i].Card()
	if !ok {
		return nil, c.typeErr(i, "Card")
	}
	return card, nil
}

// OptionalInt returns argument i as an integer, or def when it was not given.
func (c *Call) OptionalInt(i int, def int64) (int64, error) {
	if i >= len(c.Args) {
		return def, nil
	}
	return c.Int(i)
}

// OptionalStr returns argument i as a string, or def when it was not given.
func (c *Call) OptionalStr(i int, def string) (string, error) {
	if i >= len(c.Args) {
		return def, nil
	}
	return c.Str(i)
}

