// Package registry holds the in-memory typed model of one connection's
// remote tmux state: sessions, windows, and panes, each owning the next
// level down. Only the registry mutates this tree; every other component
// holds string ids or read-only snapshots.
package registry

import (
	"sync"

	"github.com/regenrek/itmux/internal/vt"
)

// Session is tmux's top-level grouping of windows.
type Session struct {
	ID            string
	Name          string
	WindowIDs     []string
	ActiveWindowID string
}

// Window is tmux's pane-tree container within a session.
type Window struct {
	ID       string
	Name     string
	SessionID string
	Layout   string
	PaneIDs  []string
	ActivePaneID string
	Width, Height int
}

// Pane is a single pseudo-terminal, identified by tmux as "%N", with its
// owned terminal emulator.
type Pane struct {
	ID               string
	WindowID         string
	Rows, Cols       int
	Active           bool
	WorkingDirectory string
	Title            string

	Emulator *vt.Emulator
}

// Registry is the connection-owned store of sessions, windows, and panes.
// It is safe for concurrent reads via the snapshot accessors, but mutations
// must come from the connection's single ingest task.
type Registry struct {
	mu sync.RWMutex

	sessions map[string]*Session
	windows  map[string]*Window
	panes    map[string]*Pane
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		windows:  make(map[string]*Window),
		panes:    make(map[string]*Pane),
	}
}
