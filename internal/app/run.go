package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/config"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/interp"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/parser"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/registry"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/relay"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/schedule"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/scriptlog"
)

// session holds what the include directive set up for one run.
type session struct {
	app    *App
	env    *registry.Env
	log    *scriptlog.Log
	client *relay.Client
}

// Run executes the configured script. Cancelling ctx stops the script after
// the current statement and Run returns interp.ErrInterrupted.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "script", a.config.ScriptPath)

	f, err := os.Open(a.config.ScriptPath)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	s := &session{
		app: a,
		env: &registry.Env{Out: a.outW, Prompter: a.prompter, Board: schedule.NewBoard()},
	}
	defer s.close()

	in := interp.New(a.registry, s.env, interp.WithDirectiveHook(s.onDirective))
	runErr := in.Run(ctx, f)

	if s.log != nil {
		if runErr != nil {
			s.log.Event("Script failed.", "error", runErr.Error())
		} else {
			s.log.Event("Script finished.", "statements", in.Stats().Statements)
		}
	}
	if runErr != nil {
		return runErr
	}

	if in.Enabled(parser.FlagStats) {
		if err := in.Stats().Write(a.outW); err != nil {
			return fmt.Errorf("failed to write statistics: %w", err)
		}
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// onDirective loads the settings the directive asks for and opens the
// collaborators that depend on them.
func (s *session) onDirective(ctx context.Context, flags parser.Flags) (interp.Tracer, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := s.app.config

	scriptDir, err := filepath.Abs(filepath.Dir(cfg.ScriptPath))
	if err != nil {
		return nil, err
	}
	settings := config.Default()
	if flags.Has(parser.FlagCurrentConfig) {
		settings, err = s.app.loader.Load(ctx, scriptDir, cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		logger.Info("Settings loaded.", "path", cfg.ConfigPath)
	}
	// Output directories are relative to the script, not the working directory.
	settings.LogDir = besideScript(scriptDir, settings.LogDir)
	settings.HTMLDir = besideScript(scriptDir, settings.HTMLDir)
	s.env.Settings = settings
	s.env.Board.Strategy = settings.Strategy

	if settings.Relay != nil {
		client, err := relay.New(*settings.Relay)
		if err != nil {
			return nil, err
		}
		s.client = client
		s.env.Relay = client
	}

	if !flags.Has(parser.FlagLog) {
		return nil, nil
	}
	log, err := scriptlog.Open(settings.LogDir, cfg.ScriptPath)
	if err != nil {
		return nil, err
	}
	s.log = log
	logger.Info("Script log opened.", "path", log.Path())
	return log, nil
}

func besideScript(scriptDir, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(scriptDir, dir)
}

func (s *session) close() {
	logger := s.app.logger
	if s.log != nil {
		if err := s.log.Close(); err != nil {
			logger.Error("Failed to close script log.", "error", err)
		}
	}
	if s.client != nil {
		s.client.Close()
	}
}

// IsInterrupted reports whether err means the operator stopped the script.
func IsInterrupted(err error) bool {
	return errors.Is(err, interp.ErrInterrupted)
}
