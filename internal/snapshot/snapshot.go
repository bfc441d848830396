// Package snapshot is the read-only view the presentation layer consumes:
// copy-on-read host and pane snapshots plus the level-triggered
// change-notification channel exposed by connmgr.Manager.
package snapshot

import (
	"github.com/regenrek/itmux/internal/connmgr"
	"github.com/regenrek/itmux/internal/hoststore"
	"github.com/regenrek/itmux/internal/vt"
)

// HostView describes one saved host profile plus its live connection
// phase, for a host list.
type HostView struct {
	Profile    hoststore.Profile
	Connection connmgr.ConnectionView
}

// PaneSnapshot is an immutable, fully copied view of one pane: its
// identity, geometry, and a grid of cells a renderer can draw directly.
type PaneSnapshot struct {
	ID               string
	WindowID         string
	Rows, Cols       int
	IsActive         bool
	WorkingDirectory string
	Title            string
	GridRows         [][]vt.Cell
	Cursor           vt.Cursor
}

// Source is the subset of the connection manager and host store the
// snapshot layer reads from. Defined as an interface so presentation code
// can be tested against a fake.
type Source interface {
	Hosts() ([]HostView, error)
	ConnectionView(hostID string) connmgr.ConnectionView
	Panes(hostID string) ([]PaneSnapshot, error)
	Changes() <-chan struct{}
}

// manager is the concrete Source backed by a live connmgr.Manager and
// hoststore.Store.
type manager struct {
	hosts *hoststore.Store
	conns *connmgr.Manager
}

// New wraps hosts and conns into a snapshot Source.
func New(hosts *hoststore.Store, conns *connmgr.Manager) Source {
	return &manager{hosts: hosts, conns: conns}
}

func (m *manager) Hosts() ([]HostView, error) {
	profiles, err := m.hosts.List()
	if err != nil {
		return nil, err
	}
	out := make([]HostView, len(profiles))
	for i, p := range profiles {
		out[i] = HostView{Profile: p, Connection: m.conns.ConnectionView(p.ID)}
	}
	return out, nil
}

func (m *manager) ConnectionView(hostID string) connmgr.ConnectionView {
	return m.conns.ConnectionView(hostID)
}

func (m *manager) Changes() <-chan struct{} { return m.conns.Changes() }

// Panes returns a copy-on-read snapshot of every pane currently registered
// for hostID, ordered by window then layout position. Each snapshot's
// GridRows is a fresh copy: mutating it never affects the live emulator.
func (m *manager) Panes(hostID string) ([]PaneSnapshot, error) {
	reg, ok := m.conns.Registry(hostID)
	if !ok {
		return nil, nil
	}
	var out []PaneSnapshot
	for _, sess := range reg.Sessions() {
		for _, windowID := range sess.WindowIDs {
			win, ok := reg.Window(windowID)
			if !ok {
				continue
			}
			for _, paneID := range win.PaneIDs {
				data, ok := reg.PaneData(paneID)
				if !ok {
					continue
				}
				out = append(out, PaneSnapshot{
					ID:               data.ID,
					WindowID:         data.WindowID,
					Rows:             data.Rows,
					Cols:             data.Cols,
					IsActive:         data.Active,
					WorkingDirectory: data.WorkingDirectory,
					Title:            data.Title,
					GridRows:         data.GridRows,
					Cursor:           data.Cursor,
				})
			}
		}
	}
	return out, nil
}
