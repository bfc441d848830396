package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/itmux/internal/connmgr"
)

func sendCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "send literal keystrokes to a pane on a connected host",
		ArgsUsage: "HOST_ID PANE_ID TEXT",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() < 3 {
				return fmt.Errorf("HOST_ID, PANE_ID, and TEXT are required")
			}
			hostID, paneID, text := args.Get(0), args.Get(1), args.Get(2)
			return deps.conns.SendCommand(hostID, connmgr.SendKeysLiteral(paneID, text))
		},
	}
}
