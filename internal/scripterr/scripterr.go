// Package scripterr defines the five failure kinds a smpl script can raise.
// Every interpreter failure is an *Error and unwinds to the top-level loop as
// an ordinary Go error.
package scripterr

import (
	"errors"
	"fmt"
)

// Kind classifies a script failure.
type Kind int

const (
	// Grammar covers malformed statements, bad nesting and orphan elif/else.
	Grammar Kind = iota
	// PreProcessor covers a missing, repeated or malformed include directive.
	PreProcessor
	// Function covers unknown functions, wrong arity and wrong argument types.
	Function
	// Dereference covers identifiers that resolve to nothing.
	Dereference
	// Pairing covers operations applied to the wrong kind of entity.
	Pairing
)

func (k Kind) String() string {
	switch k {
	case Grammar:
		return "GrammarError"
	case PreProcessor:
		return "PreProcessorError"
	case Function:
		return "FunctionError"
	case Dereference:
		return "DereferenceError"
	case Pairing:
		return "PairingError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a script failure with an optional source location.
type Error struct {
	Kind   Kind
	Msg    string
	Line   int    // 1-based; 0 when unknown or injected
	Source string // raw text of the offending line

	located bool
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %s", e.Kind, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Grammarf(format string, args ...any) *Error { return newf(Grammar, format, args...) }
func PreProcessorf(format string, args ...any) *Error { return newf(PreProcessor, format, args...) }
func Functionf(format string, args ...any) *Error { return newf(Function, format, args...) }
func Dereferencef(format string, args ...any) *Error { return newf(Dereference, format, args...) }
func Pairingf(format string, args ...any) *Error { return newf(Pairing, format, args...) }

// At attaches a location to err. A location that is already set is kept, so
// the innermost failing line of a function body is what gets reported.
// Errors that are not script errors are wrapped as FunctionError, since they
// come out of a built-in's collaborator.
func At(err error, line int, source string) error {
	if err == nil {
		return nil
	}
	var se *Error
	if !errors.As(err, &se) {
		return &Error{Kind: Function, Msg: err.Error(), Line: line, Source: source, located: true}
	}
	if !se.located {
		se.Line = line
		se.Source = source
		se.located = true
	}
	return se
}

// KindOf reports the kind of err and whether it is a script error at all.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

// Is reports whether err is a script error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
