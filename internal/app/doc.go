// Package app contains the core application logic. It wires the settings,
// the built-in modules and the collaborators around one interpreter run,
// decoupled from any specific entrypoint like a CLI.
package app
