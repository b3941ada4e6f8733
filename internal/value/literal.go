package value

import (
	"strconv"
	"strings"
)

// IsQuoted reports whether s is a single double-quoted string literal.
func IsQuoted(s string) bool {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return false
	}
	escaped := false
	for i := 1; i < len(s)-1; i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == '"':
			return false
		}
	}
	return !escaped
}

// IsInteger reports whether s is a decimal integer literal with optional sign.
func IsInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// Unescape expands \n, \t, \" and \\ in the body of a string literal.
// Unknown escapes are kept verbatim.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// ParseLiteral turns an integer, boolean or quoted string literal into a
// Value. ok is false for anything else.
func ParseLiteral(s string) (v *Value, ok bool) {
	s = strings.TrimSpace(s)
	switch {
	case s == "true":
		return Bool(true), true
	case s == "false":
		return Bool(false), true
	case IsQuoted(s):
		return String(Unescape(s[1 : len(s)-1])), true
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(n), true
	}
	return nil, false
}
