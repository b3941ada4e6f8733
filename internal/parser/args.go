package parser

import (
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/scripterr"
)

// SplitArgs splits the text between a call's parentheses into its top-level
// arguments. Commas inside double-quoted strings or nested parentheses do not
// split. An empty or blank input yields no arguments.
func SplitArgs(inner string) ([]string, error) {
	if strings.TrimSpace(inner) == "" {
		return []string{}, nil
	}
	var (
		args     []string
		depth    int
		inString bool
		escaped  bool
		start    int
	)
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, scripterr.Grammarf("unbalanced ')' in argument list %q", inner)
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if inString {
		return nil, scripterr.Grammarf("unterminated string in argument list %q", inner)
	}
	if depth != 0 {
		return nil, scripterr.Grammarf("unbalanced '(' in argument list %q", inner)
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	for i, a := range args {
		if a == "" {
			return nil, scripterr.Grammarf("empty argument %d in %q", i+1, inner)
		}
	}
	return args, nil
}

// MatchParen returns the index of the ')' balancing the '(' at s[open].
func MatchParen(s string, open int) (int, error) {
	if open < 0 || open >= len(s) || s[open] != '(' {
		return -1, scripterr.Grammarf("expected '(' at offset %d of %q", open, s)
	}
	depth := 0
	inString, escaped := false, false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	if inString {
		return -1, scripterr.Grammarf("unterminated string in %q", s)
	}
	return -1, scripterr.Grammarf("unbalanced '(' in %q", s)
}

// indexTopLevel returns the first index of ch outside quotes and at paren
// depth 0, or -1.
func indexTopLevel(s string, ch byte) int {
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ch && depth == 0:
			return i
		}
	}
	return -1
}

// Indent is the width of the leading whitespace of line, counting a tab as
// four spaces.
func Indent(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// leadingIdent returns the identifier at the start of s.
func leadingIdent(s string) string {
	for i, r := range s {
		ok := r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || i > 0 && r >= '0' && r <= '9'
		if !ok {
			return s[:i]
		}
	}
	return s
}
