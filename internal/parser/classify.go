package parser

import (
	"fmt"
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/value"
)

// Kind is the statement shape of a raw line.
type Kind int

const (
	KindComment Kind = iota
	KindReturn
	KindPreProcessor
	KindFunctionDef
	KindConstant
	KindConditional
	KindInstanceDecl
	KindAttribute
	KindStaticCall
	KindVariableReference
)

var kindNames = [...]string{
	"Comment", "Return", "PreProcessor", "FunctionDefinitionStart", "Constant",
	"Conditional", "InstanceDecl", "Attribute", "StaticCall", "VariableReference",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func isConditionalKeyword(s string) bool {
	return s == "if" || s == "elif" || s == "else"
}

// keywordAt reports whether s begins with the word kw followed by a
// separator (space, '(', ':' or end of text).
func keywordAt(s, kw string) bool {
	if !strings.HasPrefix(s, kw) {
		return false
	}
	if len(s) == len(kw) {
		return true
	}
	switch s[len(kw)] {
	case ' ', '\t', '(', ':':
		return true
	}
	return false
}

// Classify decides which kind of statement line is. It never fails; a line
// that fits no shape comes back as a VariableReference and is rejected when
// parsed.
func Classify(line string) Kind {
	s := strings.TrimSpace(line)
	if s == "" || s[0] == '#' {
		return KindComment
	}
	first := s
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		first = s[:i]
	}
	head := leadingIdent(s)
	rest := strings.TrimLeft(s[len(head):], " \t")

	switch {
	case first == "return":
		return KindReturn
	case head == "include" && strings.HasPrefix(rest, ":"):
		return KindPreProcessor
	case first == "func":
		return KindFunctionDef
	case first == "true" || first == "false":
		return KindConstant
	case isConditionalKeyword(head) && keywordAt(s, head):
		return KindConditional
	case head != "" && strings.HasPrefix(rest, ":"):
		return KindInstanceDecl
	case strings.HasSuffix(first, ".") && first[0] != '"':
		return KindAttribute
	}

	if open := strings.IndexByte(s, '('); open > 0 && isIdent(strings.TrimSpace(s[:open])) {
		if end, err := MatchParen(s, open); err == nil && end == len(s)-1 {
			return KindStaticCall
		}
	}
	if indexTopLevel(s, '.') >= 0 {
		return KindAttribute
	}
	if value.IsQuoted(s) || value.IsInteger(s) {
		return KindConstant
	}
	return KindVariableReference
}
