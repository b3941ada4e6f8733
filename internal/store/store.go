package store

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
)

// IsDatabase reports whether path names a SQLite file.
func IsDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Save writes snap to path in the format its extension selects.
func Save(ctx context.Context, path string, snap schedule.Snapshot) error {
	ctxlog.FromContext(ctx).Debug("Saving board.", "path", path, "tasks", len(snap.Tasks), "cards", len(snap.Cards))
	if IsDatabase(path) {
		return SaveSQLite(path, snap)
	}
	return SaveYAML(path, snap)
}

// Load reads a snapshot from path in the format its extension selects.
func Load(ctx context.Context, path string) (schedule.Snapshot, error) {
	ctxlog.FromContext(ctx).Debug("Loading board.", "path", path)
	if IsDatabase(path) {
		return LoadSQLite(path)
	}
	return LoadYAML(path)
}
