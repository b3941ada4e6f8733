package schedule

import (
	"fmt"
	"strings"
)

// Color tags cards and tasks for display.
type Color int

const (
	ColorNone Color = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorIndigo
	ColorViolet
)

var colorNames = [...]string{"NONE", "RED", "ORANGE", "YELLOW", "GREEN", "BLUE", "INDIGO", "VIOLET"}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// ParseColor accepts a colour name in any case.
func ParseColor(s string) (Color, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return ColorNone, fmt.Errorf("unknown color %q", s)
}

// Task is a unit of work with an hour estimate and a due date expressed in
// days from the start of the schedule.
type Task struct {
	ID     int
	Title  string
	Color  Color
	Hours  int
	DueIn  int
	CardID int // 0 when the task is not on a card
}

func (t *Task) String() string {
	return fmt.Sprintf("Task{id=%d, title=%q, hours=%d, due=%d, color=%s}", t.ID, t.Title, t.Hours, t.DueIn, t.Color)
}

// Card groups tasks under a title and colour.
type Card struct {
	ID    int
	Title string
	Color Color
	Tasks []*Task
}

// Add places t on the card. Adding a task twice is a no-op.
func (c *Card) Add(t *Task) {
	for _, existing := range c.Tasks {
		if existing == t {
			return
		}
	}
	t.CardID = c.ID
	if t.Color == ColorNone {
		t.Color = c.Color
	}
	c.Tasks = append(c.Tasks, t)
}

func (c *Card) String() string {
	return fmt.Sprintf("Card{id=%d, title=%q, color=%s, tasks=%d}", c.ID, c.Title, c.Color, len(c.Tasks))
}

// Item is a single checklist entry.
type Item struct {
	ID   int
	Name string
	Done bool
}

// CheckList is an ordered list of items that can be ticked off.
type CheckList struct {
	ID       int
	Title    string
	Items    []*Item
	nextItem int
}

// AddItem appends a new unchecked item and returns it.
func (cl *CheckList) AddItem(name string) *Item {
	cl.nextItem++
	it := &Item{ID: cl.nextItem, Name: name}
	cl.Items = append(cl.Items, it)
	return it
}

func (cl *CheckList) indexWhere(match func(*Item) bool) int {
	for i, it := range cl.Items {
		if match(it) {
			return i
		}
	}
	return -1
}

// RemoveByID deletes the item with the given id.
func (cl *CheckList) RemoveByID(id int) bool {
	return cl.remove(cl.indexWhere(func(it *Item) bool { return it.ID == id }))
}

// RemoveByName deletes the first item with the given name.
func (cl *CheckList) RemoveByName(name string) bool {
	return cl.remove(cl.indexWhere(func(it *Item) bool { return it.Name == name }))
}

func (cl *CheckList) remove(i int) bool {
	if i < 0 {
		return false
	}
	cl.Items = append(cl.Items[:i], cl.Items[i+1:]...)
	return true
}

// MarkByID flips the done state of the item with the given id.
func (cl *CheckList) MarkByID(id int) bool {
	return cl.mark(cl.indexWhere(func(it *Item) bool { return it.ID == id }))
}

// MarkByName flips the done state of the first item with the given name.
func (cl *CheckList) MarkByName(name string) bool {
	return cl.mark(cl.indexWhere(func(it *Item) bool { return it.Name == name }))
}

func (cl *CheckList) mark(i int) bool {
	if i < 0 {
		return false
	}
	cl.Items[i].Done = !cl.Items[i].Done
	return true
}

// Percent is the share of done items, rounded down. An empty list is 0%.
func (cl *CheckList) Percent() int {
	if len(cl.Items) == 0 {
		return 0
	}
	done := 0
	for _, it := range cl.Items {
		if it.Done {
			done++
		}
	}
	return done * 100 / len(cl.Items)
}

func (cl *CheckList) String() string {
	return fmt.Sprintf("CheckList{id=%d, title=%q, items=%d, done=%d%%}", cl.ID, cl.Title, len(cl.Items), cl.Percent())
}
