package interp

import (
	"fmt"
	"io"
	"time"
)

// Stats counts what a run did.
type Stats struct {
	Statements       int
	FunctionsDefined int
	FunctionCalls    int
	BuiltinCalls     int
	BranchesTaken    int
	CacheHits        int
	Started          time.Time
	Elapsed          time.Duration
}

// Write prints the counters as a short report.
func (s Stats) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"statements: %d\nfunctions defined: %d\nfunction calls: %d\nbuilt-in calls: %d\nbranches taken: %d\nelapsed: %s\n",
		s.Statements, s.FunctionsDefined, s.FunctionCalls, s.BuiltinCalls, s.BranchesTaken, s.Elapsed.Round(time.Microsecond))
	return err
}
