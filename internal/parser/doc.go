// Package parser turns lines of a smpl script into statement descriptors.
//
// Parsing happens in two steps. Classify looks at the shape of a raw line
// and decides which kind of statement it is, without failing. Parser.Parse
// then extracts the pieces of that statement (names, argument expressions,
// indentation width) and reports malformed text as a GrammarError, or as a
// PreProcessorError for the include directive.
//
// Argument lists are split by SplitArgs, which respects double-quoted strings
// and nested parentheses.
package parser
