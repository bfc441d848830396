package connmgr

import (
	"context"
	"strings"
	"time"

	"github.com/regenrek/itmux/internal/control"
	"github.com/regenrek/itmux/internal/tmuxlayout"
)

// ingest is the single task per connection that reads the transport,
// frames and parses control-mode lines in arrival order, and dispatches
// each message to the registry or the relevant pane's emulator. It runs
// until ctx is cancelled, the channel errors, or %exit is received.
func (m *Manager) ingest(ctx context.Context, conn *connection, connected chan struct{}) {
	defer close(conn.done)

	framer := control.NewFramer()
	chunks := make(chan []byte)
	readErrs := make(chan error, 1)

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := conn.channel.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case chunks <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				select {
				case readErrs <- err:
				case <-ctx.Done():
				}
				return
			}
		}
	}()

	signaledConnected := false

	for {
		select {
		case <-ctx.Done():
			return

		case err := <-readErrs:
			if err != nil {
				conn.setError(newError(ErrTransportError, err.Error()))
			} else {
				conn.setPhase(Closed)
			}
			m.signalChange()
			return

		case chunk := <-chunks:
			lines, ferr := framer.Feed(chunk)
			for _, line := range lines {
				if !strings.HasPrefix(line, "%") {
					continue // tmux's own console dialogue, not a control-mode record
				}
				msg := control.Parse(line)
				m.dispatch(conn, msg)

				if msg.Kind == control.KindSessionChanged && !signaledConnected {
					conn.firstConnectedAt = time.Now()
					conn.setPhase(Connected)
					signaledConnected = true
					close(connected)
				}
				if msg.Kind == control.KindExit {
					conn.setError(newError(ErrRemoteExit, msg.Reason))
					conn.setPhase(Closed)
					m.signalChange()
					return
				}
			}
			if ferr != nil {
				conn.setError(newError(ErrOverlongFrame, ferr.Error()))
				conn.setPhase(Closed)
				m.signalChange()
				return
			}
			m.signalChange()
		}
	}
}

// dispatch applies one decoded message to conn's registry or pane
// emulator. Unknown messages are counted implicitly via logging and never
// treated as fatal.
func (m *Manager) dispatch(conn *connection, msg control.Message) {
	reg := conn.reg
	switch msg.Kind {
	case control.KindOutput:
		reg.ProcessOutput(msg.PaneID, msg.Payload)

	case control.KindLayoutChange:
		boxes, err := tmuxlayout.Parse(msg.LayoutDescriptor)
		if err != nil {
			return
		}
		reg.ApplyLayout(msg.WindowID, boxes)

	case control.KindWindowAdd:
		reg.AddWindow(conn.sessionID, msg.WindowID, msg.WindowName)

	case control.KindWindowClose:
		reg.CloseWindow(msg.WindowID)

	case control.KindWindowRenamed:
		reg.RenameWindow(msg.WindowID, msg.WindowName)

	case control.KindSessionChanged:
		conn.sessionID = msg.SessionID
		conn.sessionName = msg.SessionName
		reg.SetSession(msg.SessionID, msg.SessionName)

	case control.KindSessionClosed:
		reg.CloseSession(msg.SessionID)

	case control.KindPaneFocusIn:
		if windowID, ok := reg.WindowOfPane(msg.PaneID); ok {
			reg.SetActivePane(windowID, msg.PaneID)
		}

	case control.KindPaneSetClipboard:
		if msg.PayloadPresent && m.clip != nil {
			_ = m.clip.Write(msg.Payload)
		}

	case control.KindUnknown:
		logUnknownMessage(conn.hostID, msg.Raw)
	}
}
