package schedule

import (
	"fmt"
	"sort"
)

// Board owns every entity created during a run. IDs are sequential per
// entity type and start at 1.
type Board struct {
	Cards      []*Card
	Tasks      []*Task
	CheckLists []*CheckList

	Strategy Strategy
	Last     *Schedule // result of the most recent Build

	nextCard, nextTask, nextCheckList int
}

// NewBoard returns an empty board using the compact strategy.
func NewBoard() *Board {
	return &Board{}
}

func (b *Board) NewCard(title string, color Color) *Card {
	b.nextCard++
	c := &Card{ID: b.nextCard, Title: title, Color: color}
	b.Cards = append(b.Cards, c)
	return c
}

// NewTask validates the estimate and due date before registering the task.
func (b *Board) NewTask(title string, hours, dueIn int) (*Task, error) {
	if hours <= 0 {
		return nil, fmt.Errorf("task %q: hours must be positive, got %d", title, hours)
	}
	if dueIn < 0 {
		return nil, fmt.Errorf("task %q: due date cannot be in the past, got %d", title, dueIn)
	}
	b.nextTask++
	t := &Task{ID: b.nextTask, Title: title, Hours: hours, DueIn: dueIn}
	b.Tasks = append(b.Tasks, t)
	return t, nil
}

func (b *Board) NewCheckList(title string) *CheckList {
	b.nextCheckList++
	cl := &CheckList{ID: b.nextCheckList, Title: title}
	b.CheckLists = append(b.CheckLists, cl)
	return cl
}

// Card looks a card up by id.
func (b *Board) Card(id int) (*Card, bool) {
	for _, c := range b.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// CheckList looks a checklist up by id.
func (b *Board) CheckList(id int) (*CheckList, bool) {
	for _, cl := range b.CheckLists {
		if cl.ID == id {
			return cl, true
		}
	}
	return nil, false
}

// AssignTask moves t onto card c, taking it off whatever card held it before.
func (b *Board) AssignTask(t *Task, c *Card) {
	if t.CardID != 0 && t.CardID != c.ID {
		if prev, ok := b.Card(t.CardID); ok {
			for i, pt := range prev.Tasks {
				if pt == t {
					prev.Tasks = append(prev.Tasks[:i], prev.Tasks[i+1:]...)
					break
				}
			}
		}
	}
	c.Add(t)
}

// Snapshot is the persistable form of a board.
type Snapshot struct {
	Strategy   Strategy            `yaml:"strategy"`
	Cards      []CardSnapshot      `yaml:"cards"`
	Tasks      []TaskSnapshot      `yaml:"tasks"`
	CheckLists []CheckListSnapshot `yaml:"checklists"`
}

type CardSnapshot struct {
	ID    int    `yaml:"id"`
	Title string `yaml:"title"`
	Color string `yaml:"color"`
}

type TaskSnapshot struct {
	ID     int    `yaml:"id"`
	Title  string `yaml:"title"`
	Color  string `yaml:"color"`
	Hours  int    `yaml:"hours"`
	DueIn  int    `yaml:"due_in"`
	CardID int    `yaml:"card_id,omitempty"`
}

type CheckListSnapshot struct {
	ID    int            `yaml:"id"`
	Title string         `yaml:"title"`
	Items []ItemSnapshot `yaml:"items"`
}

type ItemSnapshot struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	Done bool   `yaml:"done"`
}

// Snapshot copies the board into its persistable form.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{Strategy: b.Strategy}
	for _, c := range b.Cards {
		s.Cards = append(s.Cards, CardSnapshot{ID: c.ID, Title: c.Title, Color: c.Color.String()})
	}
	for _, t := range b.Tasks {
		s.Tasks = append(s.Tasks, TaskSnapshot{
			ID: t.ID, Title: t.Title, Color: t.Color.String(),
			Hours: t.Hours, DueIn: t.DueIn, CardID: t.CardID,
		})
	}
	for _, cl := range b.CheckLists {
		cs := CheckListSnapshot{ID: cl.ID, Title: cl.Title}
		for _, it := range cl.Items {
			cs.Items = append(cs.Items, ItemSnapshot{ID: it.ID, Name: it.Name, Done: it.Done})
		}
		s.CheckLists = append(s.CheckLists, cs)
	}
	return s
}

// Restore replaces the board contents with s. Entities already handed out to
// a script keep pointing at the old objects.
func (b *Board) Restore(s Snapshot) error {
	if err := s.Strategy.Validate(); err != nil {
		return err
	}
	fresh := Board{Strategy: s.Strategy}
	cards := make(map[int]*Card, len(s.Cards))
	for _, cs := range s.Cards {
		color, err := ParseColor(cs.Color)
		if err != nil {
			return fmt.Errorf("card %d: %w", cs.ID, err)
		}
		if _, dup := cards[cs.ID]; dup {
			return fmt.Errorf("duplicate card id %d", cs.ID)
		}
		c := &Card{ID: cs.ID, Title: cs.Title, Color: color}
		cards[cs.ID] = c
		fresh.Cards = append(fresh.Cards, c)
		fresh.nextCard = max(fresh.nextCard, cs.ID)
	}
	for _, ts := range s.Tasks {
		color, err := ParseColor(ts.Color)
		if err != nil {
			return fmt.Errorf("task %d: %w", ts.ID, err)
		}
		t := &Task{ID: ts.ID, Title: ts.Title, Color: color, Hours: ts.Hours, DueIn: ts.DueIn}
		fresh.Tasks = append(fresh.Tasks, t)
		fresh.nextTask = max(fresh.nextTask, ts.ID)
		if ts.CardID != 0 {
			c, ok := cards[ts.CardID]
			if !ok {
				return fmt.Errorf("task %d references unknown card %d", ts.ID, ts.CardID)
			}
			c.Tasks = append(c.Tasks, t)
			t.CardID = c.ID
		}
	}
	for _, cs := range s.CheckLists {
		cl := &CheckList{ID: cs.ID, Title: cs.Title}
		for _, is := range cs.Items {
			cl.Items = append(cl.Items, &Item{ID: is.ID, Name: is.Name, Done: is.Done})
			cl.nextItem = max(cl.nextItem, is.ID)
		}
		fresh.CheckLists = append(fresh.CheckLists, cl)
		fresh.nextCheckList = max(fresh.nextCheckList, cs.ID)
	}
	sort.SliceStable(fresh.Tasks, func(i, j int) bool { return fresh.Tasks[i].ID < fresh.Tasks[j].ID })
	*b = fresh
	return nil
}
