package parser

import (
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
)

// Flag is one option of the include directive.
type Flag uint8

const (
	FlagDefaultConfig Flag = 1 << iota
	FlagCurrentConfig
	FlagLog
	FlagStats
	FlagHTML
)

var flagNames = map[string]Flag{
	"__DEF_CONFIG__":  FlagDefaultConfig,
	"__CURR_CONFIG__": FlagCurrentConfig,
	"__LOG__":         FlagLog,
	"__STATS__":       FlagStats,
	"__HTML__":        FlagHTML,
}

// Flags is the set of options enabled by the include directive.
type Flags uint8

func (f Flags) Has(flag Flag) bool { return f&Flags(flag) != 0 }

func (f Flags) String() string {
	var names []string
	for _, n := range []string{"__DEF_CONFIG__", "__CURR_CONFIG__", "__LOG__", "__STATS__", "__HTML__"} {
		if f.Has(flagNames[n]) {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}

// ParseDirective parses `include: FLAG[, FLAG]*`. A duplicate, unknown or
// missing flag rejects the whole directive.
func ParseDirective(line string) (Flags, error) {
	s := strings.TrimSpace(line)
	if strings.Count(s, ":") != 1 {
		return 0, scripterr.PreProcessorf("directive must contain exactly one ':': %q", s)
	}
	head, body, _ := strings.Cut(s, ":")
	if strings.TrimSpace(head) != "include" {
		return 0, scripterr.PreProcessorf("directive must start with 'include:': %q", s)
	}
	if strings.TrimSpace(body) == "" {
		return 0, scripterr.PreProcessorf("directive lists no flags")
	}
	var flags Flags
	for _, raw := range strings.Split(body, ",") {
		name := strings.TrimSpace(raw)
		flag, ok := flagNames[name]
		if !ok {
			return 0, scripterr.PreProcessorf("unknown directive flag %q", name)
		}
		if flags.Has(flag) {
			return 0, scripterr.PreProcessorf("duplicate directive flag %q", name)
		}
		flags |= Flags(flag)
	}
	if flags.Has(FlagDefaultConfig) && flags.Has(FlagCurrentConfig) {
		return 0, scripterr.PreProcessorf("__DEF_CONFIG__ and __CURR_CONFIG__ are mutually exclusive")
	}
	return flags, nil
}
