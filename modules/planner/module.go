// Package planner provides the built-ins that work on the schedule board:
// building, entering tasks, pairing tasks with cards and displaying results.
package planner

import (
	"fmt"
	"io"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/config"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/parser"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/registry"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/report"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the planner built-ins.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Builtin{Name: "build", Fn: Build})
	r.Register(&registry.Builtin{Name: "input_tasks", MinArgs: 1, MaxArgs: 1, Fn: InputTasks})
	r.Register(&registry.Builtin{Name: "get_card", MinArgs: 1, MaxArgs: 1, Fn: GetCard})
	r.Register(&registry.Builtin{Name: "set_schedule", MinArgs: 1, MaxArgs: 1, Fn: SetSchedule})
	r.Register(&registry.Builtin{Name: "add_task_card", MinArgs: 2, MaxArgs: 2, Fn: AddTaskCard})
	r.Register(&registry.Builtin{Name: "display_schedule", MaxArgs: 1, Fn: display(writeSchedule)})
	r.Register(&registry.Builtin{Name: "display_cards", MaxArgs: 1, Fn: display(schedule.WriteCards)})
	r.Register(&registry.Builtin{Name: "display_tasks", MaxArgs: 1, Fn: display(schedule.WriteTasks)})
	r.Register(&registry.Builtin{Name: "display_checklists", MaxArgs: 1, Fn: display(schedule.WriteCheckLists)})
}

func settings(c *registry.Call) *config.Settings {
	if c.Env.Settings != nil {
		return c.Env.Settings
	}
	return config.Default()
}

// Build lays the board out with the current settings. With __HTML__ enabled
// the result is also written as an HTML page.
func Build(c *registry.Call) (*value.Value, error) {
	logger := ctxlog.FromContext(c.Ctx)
	s := settings(c)
	built, err := c.Env.Board.Build(s.ScheduleOptions())
	if err != nil {
		return nil, scripterr.Functionf("build: %v", err)
	}
	logger.Info("Schedule built.", "days", len(built.Days), "late", len(built.Late), "unscheduled", len(built.Unscheduled))
	fmt.Fprintf(c.Env.Out, "Schedule built over %d days (%s): %d late, %d unscheduled\n",
		len(built.Days), built.Strategy, len(built.Late), len(built.Unscheduled))

	if c.Env.Runtime != nil && c.Env.Runtime.Enabled(parser.FlagHTML) {
		path, err := report.WriteHTMLFile(s.HTMLDir, built)
		if err != nil {
			return nil, scripterr.Functionf("build: %v", err)
		}
		logger.Info("HTML report written.", "path", path)
	}
	return nil, nil
}

// GetCard returns the card with the given id.
func GetCard(c *registry.Call) (*value.Value, error) {
	id, err := c.Int(0)
	if err != nil {
		return nil, err
	}
	card, ok := c.Env.Board.Card(int(id))
	if !ok {
		return nil, scripterr.Functionf("get_card: no card with id %d", id)
	}
	return value.Card(card), nil
}

// SetSchedule picks the build strategy: 0 compact, 1 balanced, 2 latest.
func SetSchedule(c *registry.Call) (*value.Value, error) {
	n, err := c.Int(0)
	if err != nil {
		return nil, err
	}
	strategy := schedule.Strategy(n)
	if err := strategy.Validate(); err != nil {
		return nil, scripterr.Functionf("set_schedule: %v", err)
	}
	c.Env.Board.Strategy = strategy
	ctxlog.FromContext(c.Ctx).Debug("Schedule strategy set.", "strategy", strategy.String())
	return nil, nil
}

// AddTaskCard puts a task on a card. The arguments must be a Task and a Card
// in that order.
func AddTaskCard(c *registry.Call) (*value.Value, error) {
	task, ok := c.Args[0].Task()
	if !ok {
		return nil, scripterr.Pairingf("add_task_card: first argument must be a Task, got %s", c.Args[0].TypeName())
	}
	card, ok := c.Args[1].Card()
	if !ok {
		return nil, scripterr.Pairingf("add_task_card: second argument must be a Card, got %s", c.Args[1].TypeName())
	}
	c.Env.Board.AssignTask(task, card)
	return nil, nil
}

func writeSchedule(w io.Writer, b *schedule.Board, day int) error {
	return schedule.WriteSchedule(w, b.Last, day)
}

// display adapts a board writer into a built-in taking an optional id.
func display(write func(w io.Writer, b *schedule.Board, id int) error) registry.Fn {
	return func(c *registry.Call) (*value.Value, error) {
		id, err := c.OptionalInt(0, schedule.All)
		if err != nil {
			return nil, err
		}
		if err := write(c.Env.Out, c.Env.Board, int(id)); err != nil {
			return nil, scripterr.Functionf("%s: %v", c.Name, err)
		}
		return nil, nil
	}
}
