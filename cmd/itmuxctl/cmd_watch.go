package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// watchCommand prints a host's connection phase and window/pane counts,
// then again every time the manager signals a change, until the command is
// interrupted.
func watchCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "print a connected host's pane count on every registry change",
		ArgsUsage: "HOST_ID",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			hostID := cmd.Args().First()
			if hostID == "" {
				return fmt.Errorf("HOST_ID is required")
			}
			changes := deps.views.Changes()
			for {
				view := deps.conns.ConnectionView(hostID)
				fmt.Fprintf(cmd.Writer, "phase=%s windows=%d panes=%d\n", view.Phase, view.WindowCount, view.PaneCount)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-changes:
				}
			}
		},
	}
}
