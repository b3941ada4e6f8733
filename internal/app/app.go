package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/config"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/prompt"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	loader   *config.Loader
	prompter prompt.Prompter
	config   *Config
}

// NewApp is the constructor for the main application. Script output goes to
// outW, logs to logW, and operator input comes from prompter. Without modules
// the core modules are registered.
func NewApp(outW, logW io.Writer, prompter prompt.Prompter, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All built-in modules registered.", "count", len(modules), "builtins", len(reg.Names()))

	// A missing built-in is a programmer error, so we panic.
	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		loader:   config.NewLoader(),
		prompter: prompter,
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
