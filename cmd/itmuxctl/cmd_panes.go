package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
)

func panesCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:      "panes",
		Usage:     "list the panes currently registered for a connected host",
		ArgsUsage: "HOST_ID",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			hostID := cmd.Args().First()
			if hostID == "" {
				return fmt.Errorf("HOST_ID is required")
			}
			panes, err := deps.views.Panes(hostID)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "PANE\tWINDOW\tSIZE\tACTIVE\tTITLE")
			for _, p := range panes {
				fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%v\t%s\n", p.ID, p.WindowID, p.Cols, p.Rows, p.IsActive, p.Title)
			}
			return tw.Flush()
		},
	}
}
