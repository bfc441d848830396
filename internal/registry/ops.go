package registry

import (
	"log/slog"

	"github.com/regenrek/itmux/internal/limits"
	"github.com/regenrek/itmux/internal/tmuxlayout"
	"github.com/regenrek/itmux/internal/vt"
)

// ApplyLayout reconciles windowID's panes against boxes: panes present in
// boxes are created (with a fresh emulator) or resized, and panes that
// disappeared from the layout are dropped, freeing their emulator. Unknown
// window ids are logged and ignored rather than raising an error, since a
// layout change racing a window-close is expected over the wire.
func (r *Registry) ApplyLayout(windowID string, boxes []tmuxlayout.PaneBox) {
	r.mu.Lock()
	defer r.mu.Unlock()

	win, ok := r.windows[windowID]
	if !ok {
		slog.Warn("registry: layout for unknown window", "window", windowID)
		return
	}

	seen := make(map[string]bool, len(boxes))
	paneIDs := make([]string, 0, len(boxes))
	for _, box := range boxes {
		seen[box.PaneID] = true
		paneIDs = append(paneIDs, box.PaneID)

		cols, rows := limits.Clamp(box.Width, box.Height)
		if pane, exists := r.panes[box.PaneID]; exists {
			pane.WindowID = windowID
			if pane.Cols != cols || pane.Rows != rows {
				pane.Cols, pane.Rows = cols, rows
				pane.Emulator.Resize(cols, rows)
			}
			continue
		}
		r.panes[box.PaneID] = &Pane{
			ID:       box.PaneID,
			WindowID: windowID,
			Cols:     cols,
			Rows:     rows,
			Emulator: vt.NewEmulator(cols, rows),
		}
	}

	for _, existingID := range win.PaneIDs {
		if seen[existingID] {
			continue
		}
		delete(r.panes, existingID)
	}
	if win.ActivePaneID != "" && !seen[win.ActivePaneID] {
		win.ActivePaneID = ""
	}
	win.PaneIDs = paneIDs
}

// AddWindow creates or renames a window under sessionID. A window id seen
// for the first time is appended to its session's window list.
func (r *Registry) AddWindow(sessionID, windowID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if win, ok := r.windows[windowID]; ok {
		win.Name = name
		return
	}
	r.windows[windowID] = &Window{ID: windowID, SessionID: sessionID, Name: name}
	if sess, ok := r.sessions[sessionID]; ok {
		sess.WindowIDs = append(sess.WindowIDs, windowID)
	}
}

// RenameWindow updates a window's human name; unknown ids are ignored.
func (r *Registry) RenameWindow(windowID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if win, ok := r.windows[windowID]; ok {
		win.Name = name
	}
}

// CloseWindow removes windowID and every pane it owns, and unlinks it from
// its session. Unknown ids are ignored.
func (r *Registry) CloseWindow(windowID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeWindowLocked(windowID)
}

func (r *Registry) closeWindowLocked(windowID string) {
	win, ok := r.windows[windowID]
	if !ok {
		return
	}
	for _, paneID := range win.PaneIDs {
		delete(r.panes, paneID)
	}
	delete(r.windows, windowID)
	if sess, ok := r.sessions[win.SessionID]; ok {
		sess.WindowIDs = removeString(sess.WindowIDs, windowID)
		if sess.ActiveWindowID == windowID {
			sess.ActiveWindowID = ""
		}
	}
}

// SetActivePane clears every other pane's active flag in windowID and sets
// paneID active, preserving invariant 2 (at most one active pane per
// window). Setting an unknown pane id clears the window's active pane.
func (r *Registry) SetActivePane(windowID, paneID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	win, ok := r.windows[windowID]
	if !ok {
		return
	}
	active := ""
	for _, id := range win.PaneIDs {
		if pane, ok := r.panes[id]; ok {
			pane.Active = id == paneID
			if pane.Active {
				active = paneID
			}
		}
	}
	win.ActivePaneID = active
}

// SetSession creates or renames a session.
func (r *Registry) SetSession(id, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[id]; ok {
		sess.Name = name
		return
	}
	r.sessions[id] = &Session{ID: id, Name: name}
}

// CloseSession removes sessionID and cascades to every window and pane it
// owns.
func (r *Registry) CloseSession(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return
	}
	for _, windowID := range append([]string(nil), sess.WindowIDs...) {
		r.closeWindowLocked(windowID)
	}
	delete(r.sessions, id)
}

func removeString(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
