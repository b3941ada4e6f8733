package planner

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/registry"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// InputTasks asks the operator for n tasks, one title, estimate and due date
// at a time, and adds them to the board.
func InputTasks(c *registry.Call) (*value.Value, error) {
	n, err := c.Int(0)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, scripterr.Functionf("input_tasks: count cannot be negative, got %d", n)
	}
	if c.Env.Prompter == nil {
		return nil, scripterr.Functionf("input_tasks: no operator input is available")
	}
	for i := 1; i <= int(n); i++ {
		title, err := askText(c, fmt.Sprintf("Task %d title: ", i))
		if err != nil {
			return nil, err
		}
		hours, err := askInt(c, "Hours: ", 1)
		if err != nil {
			return nil, err
		}
		due, err := askInt(c, "Due in days: ", 0)
		if err != nil {
			return nil, err
		}
		if _, err := c.Env.Board.NewTask(title, hours, due); err != nil {
			return nil, scripterr.Functionf("input_tasks: %v", err)
		}
	}
	return nil, nil
}

func readLine(c *registry.Call, text string) (string, error) {
	line, err := c.Env.Prompter.ReadLine(text)
	if errors.Is(err, io.EOF) {
		return "", scripterr.Functionf("%s: end of input", c.Name)
	}
	if err != nil {
		return "", scripterr.Functionf("%s: %v", c.Name, err)
	}
	return strings.TrimSpace(line), nil
}

func askText(c *registry.Call, text string) (string, error) {
	for {
		line, err := readLine(c, text)
		if err != nil || line != "" {
			return line, err
		}
		fmt.Fprintln(c.Env.Out, "a title is required, try again")
	}
}

func askInt(c *registry.Call, text string, least int) (int, error) {
	for {
		line, err := readLine(c, text)
		if err != nil {
			return 0, err
		}
		n, perr := strconv.Atoi(line)
		if perr == nil && n >= least {
			return n, nil
		}
		fmt.Fprintf(c.Env.Out, "enter a whole number of at least %d, try again\n", least)
	}
}
