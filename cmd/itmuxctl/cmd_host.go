package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/itmux/internal/hoststore"
)

func hostCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:  "host",
		Usage: "manage saved host profiles",
		Commands: []*cli.Command{
			hostAddCommand(deps),
			hostListCommand(deps),
			hostRemoveCommand(deps),
		},
	}
}

func hostAddCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "save a new host profile",
		ArgsUsage: "NAME",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "hostname", Required: true},
			&cli.IntFlag{Name: "port", Value: 22},
			&cli.StringFlag{Name: "username"},
			&cli.StringFlag{Name: "session", Usage: "tmux session name to attach or create"},
			&cli.StringFlag{Name: "auth", Value: "password", Usage: "password or key"},
			&cli.StringFlag{Name: "credential-id", Usage: "id of a key saved via `itmuxctl key add`"},
			&cli.StringFlag{Name: "color-tag"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("NAME is required")
			}
			profile, err := deps.hosts.Add(hoststore.Profile{
				Name:         name,
				Hostname:     cmd.String("hostname"),
				Port:         int(cmd.Int("port")),
				Username:     cmd.String("username"),
				SessionName:  cmd.String("session"),
				AuthKind:     hoststore.AuthKind(cmd.String("auth")),
				CredentialID: cmd.String("credential-id"),
				ColorTag:     cmd.String("color-tag"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.Writer, "%s\n", profile.ID)
			return nil
		},
	}
}

func hostListCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list saved host profiles and their live connection phase",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			views, err := deps.views.Hosts()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tHOST\tPHASE\tSESSION")
			for _, v := range views {
				fmt.Fprintf(tw, "%s\t%s\t%s:%d\t%s\t%s\n",
					v.Profile.ID, v.Profile.Name, v.Profile.Hostname, v.Profile.Port,
					v.Connection.Phase, v.Connection.SessionName)
			}
			return tw.Flush()
		},
	}
}

func hostRemoveCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "disconnect and delete a saved host profile",
		ArgsUsage: "HOST_ID",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			hostID := cmd.Args().First()
			if hostID == "" {
				return fmt.Errorf("HOST_ID is required")
			}
			return deps.conns.RemoveHost(hostID)
		},
	}
}
