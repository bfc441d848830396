package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/itmux/internal/logging"
)

var version = "dev"

func main() {
	mode := logging.ModeFromArgs(os.Args)
	closeLogger, err := logging.Init(context.Background(), loadLoggingConfig(), logging.InitOptions{
		App:     "itmuxctl",
		Version: version,
		Mode:    mode,
	})
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	app, err := buildApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "itmuxctl: %v\n", err)
		os.Exit(1)
	}
	if err := app.Run(context.Background(), os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "itmuxctl: %v\n", err)
		os.Exit(1)
	}
}

// loadLoggingConfig overlays a logging.yml from the config directory, if
// one exists, onto the zero-value Config; logging.Init fills the rest from
// DefaultConfig and environment overrides.
func loadLoggingConfig() logging.Config {
	path, err := logging.DefaultConfigPath()
	if err != nil || path == "" {
		return logging.Config{}
	}
	cfg, err := (logging.Config{}).LoadFile(path)
	if err != nil {
		return logging.Config{}
	}
	return cfg
}

func buildApp() (*cli.Command, error) {
	deps, err := newDependencies()
	if err != nil {
		return nil, err
	}
	return &cli.Command{
		Name:        "itmuxctl",
		Usage:       "drive a remote tmux session over SSH control mode",
		Description: "itmuxctl connects to a saved host, starts tmux -CC, and renders or scripts against its panes.",
		Commands: []*cli.Command{
			hostCommand(deps),
			keyCommand(deps),
			connectCommand(deps),
			disconnectCommand(deps),
			statusCommand(deps),
			panesCommand(deps),
			sendCommand(deps),
			watchCommand(deps),
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			return deps.Close()
		},
	}, nil
}
