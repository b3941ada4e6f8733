package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/app"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/cli"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/prompt"
)

// main is the entrypoint for the smpl interpreter.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Script failures are reported on errW and come back as an
// ExitError carrying the exit code.
func run(ctx context.Context, in io.Reader, outW, errW io.Writer, args []string) (err error) {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	var prompter prompt.Prompter
	if f, ok := in.(*os.File); ok {
		prompter = prompt.New(f, outW)
	} else {
		prompter = prompt.NewReader(in, outW)
	}
	defer prompter.Close()

	// The app panics on programmer errors in the built-in table, so we
	// recover here to provide a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = &cli.ExitError{Code: cli.CodeScriptFailed, Message: fmt.Sprintf("A critical startup error occurred: %v", r)}
		}
	}()

	smpl := app.NewApp(outW, errW, prompter, cfg)
	if err := smpl.Run(ctx); err != nil {
		if app.IsInterrupted(err) {
			return &cli.ExitError{Code: cli.CodeInterrupted, Message: "interrupted"}
		}
		app.WriteError(errW, err)
		return &cli.ExitError{Code: cli.CodeScriptFailed}
	}
	return nil
}
