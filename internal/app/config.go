package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScriptPath string // the .smpl script to run
	ConfigPath string // settings file or directory read for __CURR_CONFIG__

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScriptPath == "" {
		return nil, errors.New("ScriptPath is a required configuration field and cannot be empty")
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = DefaultConfigPath
	}
	return &cfg, nil
}

// DefaultConfigPath is read by __CURR_CONFIG__ when no other path is given.
const DefaultConfigPath = "settings.hcl"
