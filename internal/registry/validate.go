package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
)

// Required lists every built-in name the language defines.
var Required = []string{
	"print", "println",
	"input_int", "input_word", "input_line", "input_bool",
	"build", "import_schedule", "export_schedule", "input_tasks", "pause", "avg",
	"get_card", "display_schedule", "display_cards", "display_tasks", "display_checklists",
	"write_file", "set_schedule", "create_event", "export_google", "import_google",
	"export_excel", "add_task_card", "inject_code", "exit", "quit",
}

// ValidateRegistry performs a strict parity check between the language's
// built-in names and the registered Go functions.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	want := make(map[string]struct{}, len(Required))
	for _, name := range Required {
		want[name] = struct{}{}
		if !r.Has(name) {
			errs = append(errs, fmt.Sprintf("built-in '%s' is not registered", name))
		}
	}
	for _, name := range r.Names() {
		if _, ok := want[name]; !ok {
			logger.Debug("Registered built-in is an extension.", "name", name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
