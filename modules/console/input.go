package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/prompt"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/registry"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// injectTerminator ends inject_code input, as does an empty line.
const injectTerminator = "end"

// readLine prompts once. Running out of input is a FunctionError since the
// script cannot continue without the answer.
func readLine(c *registry.Call, text string) (string, error) {
	if c.Env.Prompter == nil {
		return "", scripterr.Functionf("%s: no operator input is available", c.Name)
	}
	line, err := c.Env.Prompter.ReadLine(text)
	switch {
	case errors.Is(err, io.EOF):
		return "", scripterr.Functionf("%s: end of input", c.Name)
	case errors.Is(err, prompt.ErrAborted):
		c.Env.Runtime.Exit()
		return "", scripterr.Functionf("%s: %v", c.Name, err)
	case err != nil:
		return "", scripterr.Functionf("%s: %v", c.Name, err)
	}
	return line, nil
}

// ask re-prompts until parse accepts the answer.
func ask(c *registry.Call, parse func(string) (*value.Value, error)) (*value.Value, error) {
	text, err := c.OptionalStr(0, "")
	if err != nil {
		return nil, err
	}
	for {
		line, err := readLine(c, text)
		if err != nil {
			return nil, err
		}
		v, perr := parse(strings.TrimSpace(line))
		if perr == nil {
			return v, nil
		}
		fmt.Fprintf(c.Env.Out, "%v, try again\n", perr)
	}
}

// InputInt reads a whole number.
func InputInt(c *registry.Call) (*value.Value, error) {
	return ask(c, func(s string) (*value.Value, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", s)
		}
		return value.Int(n), nil
	})
}

// InputWord reads the first word of a non-blank line.
func InputWord(c *registry.Call) (*value.Value, error) {
	return ask(c, func(s string) (*value.Value, error) {
		fields := strings.Fields(s)
		if len(fields) == 0 {
			return nil, errors.New("a word is required")
		}
		return value.String(fields[0]), nil
	})
}

// InputLine reads a line as typed, which may be empty.
func InputLine(c *registry.Call) (*value.Value, error) {
	text, err := c.OptionalStr(0, "")
	if err != nil {
		return nil, err
	}
	line, err := readLine(c, text)
	if err != nil {
		return nil, err
	}
	return value.String(line), nil
}

// InputBool reads true or false in any case.
func InputBool(c *registry.Call) (*value.Value, error) {
	return ask(c, func(s string) (*value.Value, error) {
		switch strings.ToLower(s) {
		case "true":
			return value.Bool(true), nil
		case "false":
			return value.Bool(false), nil
		}
		return nil, fmt.Errorf("%q is not true or false", s)
	})
}

// Pause waits for the operator to press enter. The end of input counts as
// enter.
func Pause(c *registry.Call) (*value.Value, error) {
	if c.Env.Prompter == nil {
		return nil, nil
	}
	_, err := c.Env.Prompter.ReadLine("Press enter to continue...")
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, scripterr.Functionf("pause: %v", err)
	}
	return nil, nil
}

// InjectCode reads script lines from the operator until an empty line or
// "end" and runs them before the rest of the file.
func InjectCode(c *registry.Call) (*value.Value, error) {
	if c.Env.Prompter == nil {
		return nil, scripterr.Functionf("inject_code: no operator input is available")
	}
	var lines []string
	for {
		line, err := c.Env.Prompter.ReadLine("... ")
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, scripterr.Functionf("inject_code: %v", err)
		}
		if strings.TrimSpace(line) == "" || strings.TrimSpace(line) == injectTerminator {
			break
		}
		lines = append(lines, line)
	}
	c.Env.Runtime.Inject(lines)
	return nil, nil
}
