// Package interp executes smpl scripts.
//
// The Interpreter reads a script line by line, parses each line into a
// descriptor and dispatches it. Function definitions and conditionals own the
// block of deeper-indented lines that follows them; those bodies are kept as
// raw lines and parsed again every time they run, with a descriptor cache
// keyed by line text making the replay cheap.
//
// Every failure is a *scripterr.Error carrying the line that caused it and
// unwinds straight to Run, which stops the script.
package interp
