// Package scriptlog records every statement a script executes when the
// __LOG__ flag is set. Records are JSON lines, buffered until Flush.
package scriptlog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/parser"
)

// Log is a buffered statement log.
type Log struct {
	buf    *bufio.Writer
	closer io.Closer
	logger *slog.Logger
	path   string
}

// New writes records to w. Close closes w when it is an io.Closer.
func New(w io.Writer) *Log {
	buf := bufio.NewWriter(w)
	l := &Log{
		buf:    buf,
		logger: slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	if c, ok := w.(io.Closer); ok {
		l.closer = c
	}
	return l
}

// Open creates dir when needed and appends to dir/<script>.log, where script
// is the base name of scriptPath without its extension.
func Open(dir, scriptPath string) (*Log, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	base := filepath.Base(scriptPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "script"
	}
	path := filepath.Join(dir, name+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open script log: %w", err)
	}
	l := New(f)
	l.path = path
	return l, nil
}

// Path is the file behind the log, empty when it was built with New.
func (l *Log) Path() string { return l.path }

// Trace records one executed statement.
func (l *Log) Trace(lineNum int, kind parser.Kind, text string) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "statement",
		slog.Int("line", lineNum),
		slog.String("kind", kind.String()),
		slog.String("text", text),
	)
}

// Event records something that is not a statement, such as the final error.
func (l *Log) Event(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *Log) Flush() error { return l.buf.Flush() }

// Close flushes pending records and closes the underlying writer.
func (l *Log) Close() error {
	err := l.buf.Flush()
	if l.closer != nil {
		if cerr := l.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
