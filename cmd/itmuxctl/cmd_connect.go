package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func connectCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:      "connect",
		Usage:     "open a tmux control-mode connection to a saved host",
		ArgsUsage: "HOST_ID",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "session", Usage: "overrides the profile's saved session name"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			hostID := cmd.Args().First()
			if hostID == "" {
				return fmt.Errorf("HOST_ID is required")
			}
			return deps.conns.Connect(ctx, hostID, cmd.String("session"))
		},
	}
}

func disconnectCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:      "disconnect",
		Usage:     "close a host's tmux control-mode connection",
		ArgsUsage: "HOST_ID",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			hostID := cmd.Args().First()
			if hostID == "" {
				return fmt.Errorf("HOST_ID is required")
			}
			return deps.conns.Disconnect(hostID)
		},
	}
}

func statusCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "print a host's connection phase and pane/window counts",
		ArgsUsage: "HOST_ID",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			hostID := cmd.Args().First()
			if hostID == "" {
				return fmt.Errorf("HOST_ID is required")
			}
			view := deps.conns.ConnectionView(hostID)
			fmt.Fprintf(cmd.Writer, "phase=%s session=%s windows=%d panes=%d\n",
				view.Phase, view.SessionName, view.WindowCount, view.PaneCount)
			if view.LastError != "" {
				fmt.Fprintf(cmd.Writer, "last_error=%s\n", view.LastError)
			}
			return nil
		},
	}
}
