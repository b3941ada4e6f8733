package schedule

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
)

var paint = map[Color]*color.Color{
	ColorRed:    color.New(color.FgRed),
	ColorOrange: color.New(color.FgHiRed),
	ColorYellow: color.New(color.FgYellow),
	ColorGreen:  color.New(color.FgGreen),
	ColorBlue:   color.New(color.FgBlue),
	ColorIndigo: color.New(color.FgHiBlue),
	ColorViolet: color.New(color.FgMagenta),
}

func colored(c Color, s string) string {
	if p, ok := paint[c]; ok {
		return p.Sprint(s)
	}
	return s
}

// All selects every entry in the Write* functions.
const All = -1

// WriteSchedule prints the days of s, or only the day with the given index.
func WriteSchedule(w io.Writer, s *Schedule, day int) error {
	if s == nil {
		return fmt.Errorf("no schedule has been built")
	}
	if day != All && (day < 0 || day >= len(s.Days)) {
		return fmt.Errorf("day %d is outside the schedule (0..%d)", day, len(s.Days)-1)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range s.Days {
		if day != All && d.Index != day {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d h\n", color.New(color.Bold).Sprint(fmt.Sprintf("Day %d", d.Index)), d.Date.Format("Mon Jan 02"), d.Used(), d.Capacity)
		for _, slot := range d.Slots {
			fmt.Fprintf(tw, "  %s\t%d h\tdue in %d\n", colored(slot.Task.Color, slot.Task.Title), slot.Hours, slot.Task.DueIn)
		}
	}
	if day == All {
		for _, t := range s.Late {
			fmt.Fprintf(tw, "%s\t%s\n", color.RedString("LATE"), t.Title)
		}
		for _, sf := range s.Unscheduled {
			fmt.Fprintf(tw, "%s\t%s\t%d h\n", color.RedString("UNSCHEDULED"), sf.Task.Title, sf.Hours)
		}
	}
	return tw.Flush()
}

// WriteCards prints every card with its tasks, or only the card with the given id.
func WriteCards(w io.Writer, b *Board, id int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	found := false
	for _, c := range b.Cards {
		if id != All && c.ID != id {
			continue
		}
		found = true
		fmt.Fprintf(tw, "[%d]\t%s\t%s\n", c.ID, colored(c.Color, c.Title), c.Color)
		for _, t := range c.Tasks {
			fmt.Fprintf(tw, "  -\t%s\t%d h\tdue in %d\n", t.Title, t.Hours, t.DueIn)
		}
	}
	if id != All && !found {
		return fmt.Errorf("no card with id %d", id)
	}
	return tw.Flush()
}

// WriteTasks prints every task, or only the task with the given id.
func WriteTasks(w io.Writer, b *Board, id int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	found := false
	for _, t := range b.Tasks {
		if id != All && t.ID != id {
			continue
		}
		found = true
		fmt.Fprintf(tw, "[%d]\t%s\t%d h\tdue in %d\t%s\n", t.ID, colored(t.Color, t.Title), t.Hours, t.DueIn, t.Color)
	}
	if id != All && !found {
		return fmt.Errorf("no task with id %d", id)
	}
	return tw.Flush()
}

// WriteCheckLists prints every checklist, or only the one with the given id.
func WriteCheckLists(w io.Writer, b *Board, id int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	found := false
	for _, cl := range b.CheckLists {
		if id != All && cl.ID != id {
			continue
		}
		found = true
		fmt.Fprintf(tw, "[%d]\t%s\t%d%%\n", cl.ID, cl.Title, cl.Percent())
		for _, it := range cl.Items {
			mark := " "
			if it.Done {
				mark = "x"
			}
			fmt.Fprintf(tw, "  [%s]\t%d\t%s\n", mark, it.ID, it.Name)
		}
	}
	if id != All && !found {
		return fmt.Errorf("no checklist with id %d", id)
	}
	return tw.Flush()
}
