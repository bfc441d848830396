package connmgr

import (
	"time"

	"github.com/regenrek/itmux/internal/registry"
	"github.com/regenrek/itmux/internal/transport"
)

// Phase is a connection record's lifecycle state.
type Phase uint8

const (
	Idle Phase = iota
	Connecting
	Authenticating
	StartingTmux
	Connected
	Failed
	Closed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Connecting:
		return "Connecting"
	case Authenticating:
		return "Authenticating"
	case StartingTmux:
		return "StartingTmux"
	case Connected:
		return "Connected"
	case Failed:
		return "Failed"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// connection is the per-host connection record: lifecycle phase, the
// channel to the remote tmux, and the registry it exclusively owns.
type connection struct {
	hostID string

	phase       Phase
	firstConnectedAt time.Time
	lastError   *Error
	sessionID   string
	sessionName string

	channel transport.Channel
	reg     *registry.Registry

	cancel func()
	done   chan struct{}
}

func newConnection(hostID string) *connection {
	return &connection{hostID: hostID, phase: Idle, reg: registry.New()}
}

func (c *connection) setPhase(p Phase) { c.phase = p }

func (c *connection) setError(err *Error) {
	c.lastError = err
	if err != nil {
		c.phase = Failed
	}
}

// ConnectionView is an immutable snapshot of a connection record.
type ConnectionView struct {
	HostID           string
	Phase            Phase
	FirstConnectedAt time.Time
	LastError        string
	SessionName      string
	PaneCount        int
	WindowCount      int
}

func (c *connection) view() ConnectionView {
	var lastError string
	if c.lastError != nil {
		lastError = c.lastError.Error()
	}
	panes, windows := 0, 0
	for _, sess := range c.reg.Sessions() {
		for _, windowID := range sess.WindowIDs {
			windows++
			panes += len(c.reg.PaneIDs(windowID))
		}
	}
	return ConnectionView{
		HostID:           c.hostID,
		Phase:            c.phase,
		FirstConnectedAt: c.firstConnectedAt,
		LastError:        lastError,
		SessionName:      c.sessionName,
		PaneCount:        panes,
		WindowCount:      windows,
	}
}
