package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
)

// HTMLFile is the name of the page written by WriteHTMLFile.
const HTMLFile = "schedule.html"

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown writes s as a Markdown document with one table per day.
func Markdown(w io.Writer, s *schedule.Schedule) error {
	if s == nil {
		return fmt.Errorf("no schedule has been built")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Schedule (%s)\n\n", s.Strategy)
	for _, d := range s.Days {
		fmt.Fprintf(&b, "## Day %d: %s (%d/%d h)\n\n", d.Index, d.Date.Format("Mon Jan 02"), d.Used(), d.Capacity)
		if len(d.Slots) == 0 {
			b.WriteString("_Free._\n\n")
			continue
		}
		b.WriteString("| Task | Hours | Due in | Color |\n|---|---:|---:|---|\n")
		for _, slot := range d.Slots {
			fmt.Fprintf(&b, "| %s | %d | %d | %s |\n", cell(slot.Task.Title), slot.Hours, slot.Task.DueIn, slot.Task.Color)
		}
		b.WriteString("\n")
	}
	if len(s.Late) > 0 {
		b.WriteString("## Late\n\n")
		for _, t := range s.Late {
			fmt.Fprintf(&b, "- %s\n", cell(t.Title))
		}
		b.WriteString("\n")
	}
	if len(s.Unscheduled) > 0 {
		b.WriteString("## Unscheduled\n\n")
		for _, sf := range s.Unscheduled {
			fmt.Fprintf(&b, "- %s: %d h\n", cell(sf.Task.Title), sf.Hours)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// cell escapes the characters that would break a Markdown table row.
func cell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ", "<", "&lt;", ">", "&gt;").Replace(s)
}

// HTML renders s to a standalone HTML page.
func HTML(w io.Writer, s *schedule.Schedule) error {
	var src bytes.Buffer
	if err := Markdown(&src, s); err != nil {
		return err
	}
	var body bytes.Buffer
	if err := markdown.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("failed to render schedule markdown: %w", err)
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Schedule</title></head>\n<body>\n%s</body>\n</html>\n", body.String())
	return err
}

// WriteHTMLFile renders s into dir/schedule.html, creating dir when needed,
// and returns the path written.
func WriteHTMLFile(dir string, s *schedule.Schedule) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	path := filepath.Join(dir, HTMLFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	if err := HTML(f, s); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
