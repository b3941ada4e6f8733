// Package report renders a built schedule into files for people outside the
// terminal: an HTML page (through Markdown and goldmark) and a CSV sheet.
package report
