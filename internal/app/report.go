package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
)

var kindColor = color.New(color.FgRed, color.Bold)

// WriteError reports a failed run to the operator: the error kind in red,
// the message, and the offending line when it is known.
func WriteError(w io.Writer, err error) {
	var se *scripterr.Error
	if !errors.As(err, &se) {
		fmt.Fprintf(w, "%s %v\n", kindColor.Sprint("error:"), err)
		return
	}
	if se.Line > 0 {
		fmt.Fprintf(w, "%s at line %d: %s\n", kindColor.Sprint(se.Kind), se.Line, se.Msg)
	} else {
		fmt.Fprintf(w, "%s: %s\n", kindColor.Sprint(se.Kind), se.Msg)
	}
	if se.Source != "" {
		fmt.Fprintf(w, "    %s\n", se.Source)
	}
}
