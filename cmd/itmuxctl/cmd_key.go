package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/ssh"

	"github.com/regenrek/itmux/internal/keystore"
)

func keyCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:  "key",
		Usage: "manage stored credentials (passwords and private keys)",
		Commands: []*cli.Command{
			keyAddCommand(deps),
			keyListCommand(deps),
			keyRemoveCommand(deps),
		},
	}
}

func keyAddCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "store a credential blob read from a file, for use as a host's credential-id",
		ArgsUsage: "NAME PATH",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() < 2 {
				return fmt.Errorf("NAME and PATH are required")
			}
			name, path := args.Get(0), args.Get(1)
			blob, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			id, err := deps.keys.Put(keystore.Record{Name: name, Fingerprint: fingerprintOf(blob), Blob: blob})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.Writer, "%s\n", id)
			return nil
		},
	}
}

func keyListCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list stored credentials (metadata only, never the blob)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			records, err := deps.keys.List()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tFINGERPRINT")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Name, r.Fingerprint)
			}
			return tw.Flush()
		},
	}
}

// fingerprintOf computes the SHA256 key fingerprint for a PEM private key,
// or for a bare password blob returns an empty string (there's nothing to
// fingerprint).
func fingerprintOf(blob []byte) string {
	signer, err := ssh.ParsePrivateKey(blob)
	if err != nil {
		return ""
	}
	return ssh.FingerprintSHA256(signer.PublicKey())
}

func keyRemoveCommand(deps *dependencies) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "delete a stored credential",
		ArgsUsage: "CREDENTIAL_ID",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("CREDENTIAL_ID is required")
			}
			return deps.keys.Delete(id)
		},
	}
}
