package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
)

// yamlVersion is written into every document and checked on load.
const yamlVersion = 1

type yamlDocument struct {
	Version int               `yaml:"version"`
	Board   schedule.Snapshot `yaml:"board"`
}

func SaveYAML(path string, snap schedule.Snapshot) error {
	data, err := yaml.Marshal(yamlDocument{Version: yamlVersion, Board: snap})
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schedule file: %w", err)
	}
	return nil
}

func LoadYAML(path string) (schedule.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schedule.Snapshot{}, fmt.Errorf("failed to read schedule file: %w", err)
	}
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return schedule.Snapshot{}, fmt.Errorf("failed to decode schedule file %s: %w", path, err)
	}
	if doc.Version != yamlVersion {
		return schedule.Snapshot{}, fmt.Errorf("schedule file %s has version %d, want %d", path, doc.Version, yamlVersion)
	}
	return doc.Board, nil
}
