// Package registry provides the central "glue" for the built-in function
// system.
//
// The Registry maps the names a script calls (print, build, export_schedule,
// ...) to the Go functions that implement them, together with their argument
// count contract. Modules under modules/ each register a group of related
// built-ins.
//
// During application startup, the registry is populated and then validated
// against the list of names the language defines, so a built-in that a script
// may legally call can never be missing at run time.
package registry
