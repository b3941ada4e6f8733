// Package transfer provides the built-ins that move a board in and out of
// files: saved schedules and spreadsheet exports.
package transfer

import (
	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/registry"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/report"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/store"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the transfer built-ins.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Builtin{Name: "import_schedule", MinArgs: 1, MaxArgs: 1, Fn: ImportSchedule})
	r.Register(&registry.Builtin{Name: "export_schedule", MinArgs: 1, MaxArgs: 1, Fn: ExportSchedule})
	r.Register(&registry.Builtin{Name: "export_excel", MinArgs: 1, MaxArgs: 1, Fn: ExportExcel})
}

// ImportSchedule replaces the board with the one saved at the given path.
// Variables bound before the import keep the entities they already held.
func ImportSchedule(c *registry.Call) (*value.Value, error) {
	path, err := c.Str(0)
	if err != nil {
		return nil, err
	}
	snap, err := store.Load(c.Ctx, path)
	if err != nil {
		return nil, scripterr.Functionf("import_schedule: %v", err)
	}
	if err := c.Env.Board.Restore(snap); err != nil {
		return nil, scripterr.Functionf("import_schedule: %s: %v", path, err)
	}
	ctxlog.FromContext(c.Ctx).Info("Schedule imported.", "path", path, "tasks", len(snap.Tasks))
	return nil, nil
}

// ExportSchedule saves the board to the given path. A .db or .sqlite path
// writes a SQLite database, any other a YAML file.
func ExportSchedule(c *registry.Call) (*value.Value, error) {
	path, err := c.Str(0)
	if err != nil {
		return nil, err
	}
	if err := store.Save(c.Ctx, path, c.Env.Board.Snapshot()); err != nil {
		return nil, scripterr.Functionf("export_schedule: %v", err)
	}
	ctxlog.FromContext(c.Ctx).Info("Schedule exported.", "path", path)
	return nil, nil
}

// ExportExcel writes the last built schedule as a CSV sheet.
func ExportExcel(c *registry.Call) (*value.Value, error) {
	path, err := c.Str(0)
	if err != nil {
		return nil, err
	}
	if err := report.WriteCSVFile(path, c.Env.Board.Last); err != nil {
		return nil, scripterr.Functionf("export_excel: %v", err)
	}
	ctxlog.FromContext(c.Ctx).Info("Sheet exported.", "path", path)
	return nil, nil
}
