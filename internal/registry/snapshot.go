package registry

import "github.com/regenrek/itmux/internal/vt"

// SessionView is an immutable snapshot of a Session.
type SessionView struct {
	ID             string
	Name           string
	WindowIDs      []string
	ActiveWindowID string
}

// WindowView is an immutable snapshot of a Window.
type WindowView struct {
	ID            string
	Name          string
	SessionID     string
	Layout        string
	PaneIDs       []string
	ActivePaneID  string
	Width, Height int
}

// Session returns a copy of the session identified by id, or false if
// unknown.
func (r *Registry) Session(id string) (SessionView, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	if !ok {
		return SessionView{}, false
	}
	return SessionView{
		ID: sess.ID, Name: sess.Name,
		WindowIDs:      append([]string(nil), sess.WindowIDs...),
		ActiveWindowID: sess.ActiveWindowID,
	}, true
}

// Sessions returns a copy of every known session.
func (r *Registry) Sessions() []SessionView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SessionView, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, SessionView{
			ID: sess.ID, Name: sess.Name,
			WindowIDs:      append([]string(nil), sess.WindowIDs...),
			ActiveWindowID: sess.ActiveWindowID,
		})
	}
	return out
}

// Window returns a copy of the window identified by id, or false if
// unknown.
func (r *Registry) Window(id string) (WindowView, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	win, ok := r.windows[id]
	if !ok {
		return WindowView{}, false
	}
	return WindowView{
		ID: win.ID, Name: win.Name, SessionID: win.SessionID, Layout: win.Layout,
		PaneIDs:      append([]string(nil), win.PaneIDs...),
		ActivePaneID: win.ActivePaneID,
		Width:        win.Width, Height: win.Height,
	}, true
}

// PaneIDs returns the pane ids belonging to windowID, in layout order.
func (r *Registry) PaneIDs(windowID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	win, ok := r.windows[windowID]
	if !ok {
		return nil
	}
	return append([]string(nil), win.PaneIDs...)
}

// WindowOfPane returns the window id owning paneID, or false if the pane is
// unknown. Control-mode focus events carry only a pane id, so the manager
// needs this to resolve which window's active-pane flag to update.
func (r *Registry) WindowOfPane(paneID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pane, ok := r.panes[paneID]
	if !ok {
		return "", false
	}
	return pane.WindowID, true
}

// Pane looks up a pane by id and reports whether it exists. The returned
// Pane retains a reference to the live Emulator; callers in the connection's
// ingest task may mutate it, but outside callers should treat it as
// read-only and prefer PaneData or the C6 snapshot interface, which copy
// grid state under the registry's lock instead of racing the ingest task.
func (r *Registry) Pane(id string) (*Pane, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pane, ok := r.panes[id]
	return pane, ok
}

// PaneData is a fully copied view of a pane's metadata and current grid,
// safe to read after the call returns regardless of subsequent ingest
// activity.
type PaneData struct {
	ID, WindowID            string
	Rows, Cols              int
	Active                  bool
	WorkingDirectory, Title string
	GridRows                [][]vt.Cell
	Cursor                  vt.Cursor
}

// PaneData copies id's metadata and grid under the registry's lock, so it
// never races a concurrent ProcessOutput call from the ingest task.
func (r *Registry) PaneData(id string) (PaneData, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pane, ok := r.panes[id]
	if !ok {
		return PaneData{}, false
	}
	return PaneData{
		ID: pane.ID, WindowID: pane.WindowID, Rows: pane.Rows, Cols: pane.Cols,
		Active: pane.Active, WorkingDirectory: pane.Emulator.WorkingDirectory(), Title: pane.Title,
		GridRows: pane.Emulator.Rows(), Cursor: pane.Emulator.Cursor(),
	}, true
}

// ProcessOutput feeds payload into paneID's emulator under the registry's
// write lock, so snapshot reads via PaneData never observe a torn grid.
func (r *Registry) ProcessOutput(paneID string, payload []byte) (vt.Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pane, ok := r.panes[paneID]
	if !ok {
		return vt.Result{}, false
	}
	return pane.Emulator.Process(payload), true
}
