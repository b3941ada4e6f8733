// Package prompt reads operator input for the interactive built-ins.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrAborted is returned when the operator cancels a prompt with Ctrl-C.
var ErrAborted = errors.New("input aborted")

// Prompter shows a prompt and returns one line of input without its line
// ending. At the end of input it returns io.EOF.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// New returns a line editor when in is an interactive terminal and a plain
// buffered reader otherwise. Prompts go to out in the second case.
func New(in *os.File, out io.Writer) Prompter {
	if in == os.Stdin && term.IsTerminal(int(in.Fd())) {
		return NewLiner()
	}
	return NewReader(in, out)
}

// Reader prompts on a writer and reads from any io.Reader.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out}
}

func (r *Reader) ReadLine(prompt string) (string, error) {
	if prompt != "" && r.out != nil {
		fmt.Fprint(r.out, prompt)
	}
	line, err := r.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *Reader) Close() error { return nil }

// Liner wraps a terminal line editor with history.
type Liner struct {
	state *liner.State
}

func NewLiner() *Liner {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	return &Liner{state: st}
}

func (l *Liner) ReadLine(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ErrAborted
	case err != nil:
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

func (l *Liner) Close() error { return l.state.Close() }
