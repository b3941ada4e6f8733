// Package console provides the built-ins that talk to the operator: output,
// prompted input, file writing and flow control.
package console

import (
	"fmt"
	"os"
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/registry"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the console built-ins.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Builtin{Name: "print", MaxArgs: registry.Variadic, Fn: write(false)})
	r.Register(&registry.Builtin{Name: "println", MaxArgs: registry.Variadic, Fn: write(true)})
	r.Register(&registry.Builtin{Name: "input_int", MaxArgs: 1, Fn: InputInt})
	r.Register(&registry.Builtin{Name: "input_word", MaxArgs: 1, Fn: InputWord})
	r.Register(&registry.Builtin{Name: "input_line", MaxArgs: 1, Fn: InputLine})
	r.Register(&registry.Builtin{Name: "input_bool", MaxArgs: 1, Fn: InputBool})
	r.Register(&registry.Builtin{Name: "pause", Fn: Pause})
	r.Register(&registry.Builtin{Name: "avg", MinArgs: 1, MaxArgs: registry.Variadic, Fn: Avg})
	r.Register(&registry.Builtin{Name: "write_file", MinArgs: 2, MaxArgs: 2, Fn: WriteFile})
	r.Register(&registry.Builtin{Name: "inject_code", Fn: InjectCode})
	r.Register(&registry.Builtin{Name: "exit", Fn: Exit})
	r.Register(&registry.Builtin{Name: "quit", Fn: Exit})
}

// write prints every argument back to back. String escapes were expanded
// when the literal was parsed.
func write(newline bool) registry.Fn {
	return func(c *registry.Call) (*value.Value, error) {
		var b strings.Builder
		for _, a := range c.Args {
			b.WriteString(a.String())
		}
		if newline {
			b.WriteByte('\n')
		}
		if _, err := fmt.Fprint(c.Env.Out, b.String()); err != nil {
			return nil, scripterr.Functionf("%s: %v", c.Name, err)
		}
		return nil, nil
	}
}

// Avg returns the integer mean of its arguments, rounded toward zero.
func Avg(c *registry.Call) (*value.Value, error) {
	var sum int64
	for i := range c.Args {
		n, err := c.Int(i)
		if err != nil {
			return nil, err
		}
		var ok bool
		if sum, ok = value.CheckedAdd(sum, n); !ok {
			return nil, scripterr.Functionf("avg: sum of the arguments overflows")
		}
	}
	return value.Int(sum / int64(len(c.Args))), nil
}

// WriteFile writes the text form of the second argument to the named file,
// replacing any previous content.
func WriteFile(c *registry.Call) (*value.Value, error) {
	path, err := c.Str(0)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return nil, scripterr.Functionf("write_file: path is empty")
	}
	if err := os.WriteFile(path, []byte(c.Args[1].String()), 0o644); err != nil {
		return nil, scripterr.Functionf("write_file: %v", err)
	}
	ctxlog.FromContext(c.Ctx).Debug("File written.", "path", path)
	return nil, nil
}

// Exit stops the script once the current statement completes.
func Exit(c *registry.Call) (*value.Value, error) {
	ctxlog.FromContext(c.Ctx).Debug("Script asked to stop.", "builtin", c.Name)
	c.Env.Runtime.Exit()
	return nil, nil
}
