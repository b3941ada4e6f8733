package interp

import (
	"bufio"
	"io"

	"github.com/edwingeng/deque"
)

// line is one raw script line. num is 1-based; injected lines have num 0.
type line struct {
	text string
	num  int
}

// source hands out lines in order and lets the executor push back the line
// that ended a block, or splice new lines in front of the rest.
type source struct {
	q deque.Deque
}

func newSource(lines []line) *source {
	s := &source{q: deque.NewDeque()}
	for _, l := range lines {
		s.q.PushBack(l)
	}
	return s
}

// readSource reads every line of r into a source.
func readSource(r io.Reader) (*source, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var lines []line
	for n := 1; sc.Scan(); n++ {
		lines = append(lines, line{text: sc.Text(), num: n})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return newSource(lines), nil
}

func (s *source) next() (line, bool) {
	if s.q.Empty() {
		return line{}, false
	}
	l := s.q.Front().(line)
	s.q.PopFront()
	return l, true
}

func (s *source) unread(l line) {
	s.q.PushFront(l)
}

// inject places texts, in order, ahead of every pending line.
func (s *source) inject(texts []string) {
	for i := len(texts) - 1; i >= 0; i-- {
		s.q.PushFront(line{text: texts[i]})
	}
}
