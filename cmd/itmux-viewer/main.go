package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/regenrek/itmux/internal/clipboard"
	"github.com/regenrek/itmux/internal/connmgr"
	"github.com/regenrek/itmux/internal/hoststore"
	"github.com/regenrek/itmux/internal/keystore"
	"github.com/regenrek/itmux/internal/logging"
	"github.com/regenrek/itmux/internal/snapshot"
	"github.com/regenrek/itmux/internal/sshtransport"
	"github.com/regenrek/itmux/internal/tui/viewer"

	"golang.org/x/crypto/ssh"
)

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

func main() {
	closeLogger, err := logging.Init(context.Background(), loadLoggingConfig(), logging.InitOptions{App: "itmux-viewer"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "itmux-viewer: logging init: %v\n", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	hosts, err := hoststore.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "itmux-viewer: %v\n", err)
		os.Exit(1)
	}
	defer hosts.Close()

	keys, err := keystore.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "itmux-viewer: %v\n", err)
		os.Exit(1)
	}
	defer keys.Close()

	dialer := sshtransport.NewDialer(ssh.InsecureIgnoreHostKey())
	conns := connmgr.New(hosts, keys, dialer, clipboard.System{})
	src := snapshot.New(hosts, conns)

	p := tea.NewProgram(viewer.New(src), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "itmux-viewer: %v\n", err)
		os.Exit(1)
	}
}
