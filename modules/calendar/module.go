// Package calendar provides the built-ins that sync with an external
// calendar through the socket.io relay.
package calendar

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/registry"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// Relay event names.
const (
	EventCreate   = "calendar:create"
	EventExport   = "calendar:export"
	EventExported = "calendar:exported"
	EventImport   = "calendar:import"
	EventImported = "calendar:imported"
)

// Event is one calendar entry as exchanged with the relay.
type Event struct {
	Title string `json:"title"`
	Date  string `json:"date"` // YYYY-MM-DD
	Hours int    `json:"hours"`
	Color string `json:"color,omitempty"`
}

// ExportReply is the relay's answer to an export.
type ExportReply struct {
	Created int `json:"created"`
}

// ImportedTask is one task offered by the relay on import.
type ImportedTask struct {
	Title string `json:"title"`
	Hours int    `json:"hours"`
	DueIn int    `json:"due_in"`
	Color string `json:"color,omitempty"`
}

// Module implements the registry.Module interface for this package.
type Module struct {
	// Now is the clock used for create_event dates; nil means time.Now.
	Now func() time.Time
}

// Register registers the calendar built-ins.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Builtin{Name: "create_event", MinArgs: 3, MaxArgs: 3, Fn: m.CreateEvent})
	r.Register(&registry.Builtin{Name: "export_google", Fn: ExportGoogle})
	r.Register(&registry.Builtin{Name: "import_google", Fn: ImportGoogle})
}

func relay(c *registry.Call) (registry.Relay, error) {
	if c.Env.Relay == nil {
		return nil, scripterr.Functionf("%s: no calendar relay is configured", c.Name)
	}
	return c.Env.Relay, nil
}

// CreateEvent sends one event: a title, a day offset from today and a length
// in hours.
func (m *Module) CreateEvent(c *registry.Call) (*value.Value, error) {
	title, err := c.Str(0)
	if err != nil {
		return nil, err
	}
	day, err := c.Int(1)
	if err != nil {
		return nil, err
	}
	hours, err := c.Int(2)
	if err != nil {
		return nil, err
	}
	if day < 0 || hours <= 0 {
		return nil, scripterr.Functionf("create_event: day must be >= 0 and hours > 0, got %d and %d", day, hours)
	}
	rl, err := relay(c)
	if err != nil {
		return nil, err
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	ev := Event{Title: title, Date: now().AddDate(0, 0, int(day)).Format(time.DateOnly), Hours: int(hours)}
	if err := rl.Emit(c.Ctx, EventCreate, ev); err != nil {
		return nil, scripterr.Functionf("create_event: %v", err)
	}
	ctxlog.FromContext(c.Ctx).Info("Calendar event sent.", "title", title, "date", ev.Date)
	return nil, nil
}

// Events flattens a built schedule into one event per task per day.
func Events(s *schedule.Schedule) []Event {
	var events []Event
	for _, d := range s.Days {
		for _, slot := range d.Slots {
			events = append(events, Event{
				Title: slot.Task.Title,
				Date:  d.Date.Format(time.DateOnly),
				Hours: slot.Hours,
				Color: slot.Task.Color.String(),
			})
		}
	}
	return events
}

// ExportGoogle sends the last built schedule to the calendar.
func ExportGoogle(c *registry.Call) (*value.Value, error) {
	if c.Env.Board.Last == nil {
		return nil, scripterr.Functionf("export_google: no schedule has been built")
	}
	rl, err := relay(c)
	if err != nil {
		return nil, err
	}
	raw, err := rl.Request(c.Ctx, EventExport, EventExported, Events(c.Env.Board.Last))
	if err != nil {
		return nil, scripterr.Functionf("export_google: %v", err)
	}
	var reply ExportReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, scripterr.Functionf("export_google: unexpected reply: %v", err)
	}
	fmt.Fprintf(c.Env.Out, "Exported %d calendar events\n", reply.Created)
	return nil, nil
}

// ImportGoogle adds the tasks the calendar offers to the board.
func ImportGoogle(c *registry.Call) (*value.Value, error) {
	rl, err := relay(c)
	if err != nil {
		return nil, err
	}
	raw, err := rl.Request(c.Ctx, EventImport, EventImported, struct{}{})
	if err != nil {
		return nil, scripterr.Functionf("import_google: %v", err)
	}
	var tasks []ImportedTask
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, scripterr.Functionf("import_google: unexpected reply: %v", err)
	}
	for _, it := range tasks {
		t, err := c.Env.Board.NewTask(it.Title, it.Hours, it.DueIn)
		if err != nil {
			return nil, scripterr.Functionf("import_google: %v", err)
		}
		if it.Color != "" {
			if col, err := schedule.ParseColor(it.Color); err == nil {
				t.Color = col
			}
		}
	}
	fmt.Fprintf(c.Env.Out, "Imported %d tasks from the calendar\n", len(tasks))
	return nil, nil
}
