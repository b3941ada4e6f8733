// Package config holds the scheduler settings a script runs with and loads
// them from HCL files.
//
// A settings file may reference the process environment through `env` and
// the directory of the running script through `script_dir`, and may call a
// handful of string and number functions (upper, lower, join, min, max).
// When several files are loaded, later files override the attributes they
// set and leave the rest alone.
package config
