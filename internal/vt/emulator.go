package vt

import (
	"github.com/charmbracelet/x/ansi"
)

// Cursor is the cursor position reported to callers.
type Cursor struct {
	Row, Col int
}

// Result is the outcome of one Process call: which rows changed, whether the
// cursor moved, and whether the caller should redraw the pane wholesale.
type Result struct {
	ChangedRows []int
	CursorMoved bool
	FullRedraw  bool
}

// Emulator tracks one pane's screen state. It accepts arbitrary byte chunks
// and never fails: malformed sequences are absorbed silently, leaving
// committed state unchanged.
type Emulator struct {
	handlers

	primary *screen
	alt     *screen
	usingAlt bool

	sc scanner

	damage *damageTracker

	prevCursor Cursor

	workingDirectory string
}

// NewEmulator creates an emulator with a primary screen of the given
// dimensions. cols and rows are clamped to at least 1.
func NewEmulator(cols, rows int) *Emulator {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	e := &Emulator{
		primary: newScreen(cols, rows),
		damage:  newDamageTracker(rows),
	}
	e.registerDefaultHandlers()
	return e
}

// curScreen returns the screen currently receiving output: the alternate
// screen when active, otherwise the primary.
func (e *Emulator) curScreen() *screen {
	if e.usingAlt {
		return e.alt
	}
	return e.primary
}

// Process feeds a chunk of bytes through the scanner and reports the
// accumulated damage since the last call.
func (e *Emulator) Process(data []byte) Result {
	before := e.curScreen().cur
	for _, b := range data {
		e.feed(b)
	}
	rows, full := e.damage.consume()
	after := e.curScreen().cur
	return Result{
		ChangedRows: rows,
		CursorMoved: before != after,
		FullRedraw:  full,
	}
}

// Cursor reports the current screen's cursor position.
func (e *Emulator) Cursor() Cursor {
	c := e.curScreen().cur
	return Cursor{Row: c.Row, Col: c.Col}
}

// Row returns a snapshot copy of the given row of the current screen, or
// nil if out of range.
func (e *Emulator) Row(y int) []Cell {
	row := e.curScreen().grid.row(y)
	if row == nil {
		return nil
	}
	out := make([]Cell, len(row))
	copy(out, row)
	return out
}

// Size reports the current screen's dimensions.
func (e *Emulator) Size() (cols, rows int) {
	s := e.curScreen()
	return s.width(), s.height()
}

// Rows returns a snapshot copy of every row of the current screen, top to
// bottom.
func (e *Emulator) Rows() [][]Cell {
	s := e.curScreen()
	out := make([][]Cell, s.height())
	for y := range out {
		out[y] = e.Row(y)
	}
	return out
}

// WorkingDirectory reports the pane's working-directory hint as last set by
// an OSC 7 sequence, or "" if none has been seen.
func (e *Emulator) WorkingDirectory() string {
	return e.workingDirectory
}

// Resize reallocates the primary grid, preserving overlapping content from
// the top-left, clamping the cursor, and resetting the scroll region. The
// alternate grid, if allocated, is reallocated blank.
func (e *Emulator) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	e.primary.resize(cols, rows)
	if e.alt != nil {
		e.alt = newScreen(cols, rows)
	}
	e.damage.resize(rows)
	e.damage.markAll()
}

func (e *Emulator) carriageReturn() {
	s := e.curScreen()
	s.cur.Col = 0
	s.cur.PendingWrap = false
}

// indexCurrent performs LF/VT/FF/ESC-D: advance one row, scrolling the
// active region up by one line when the cursor sits on its bottom edge.
func (e *Emulator) indexCurrent() {
	s := e.curScreen()
	s.cur.PendingWrap = false
	if s.cur.Row == s.scrollBottom {
		e.scrollUp(1)
		return
	}
	if s.cur.Row < s.height()-1 {
		s.cur.Row++
	}
}

// reverseIndex performs ESC M: move up one row, scrolling the active
// region down by one line when the cursor sits on its top edge.
func (e *Emulator) reverseIndex() {
	s := e.curScreen()
	s.cur.PendingWrap = false
	if s.cur.Row == s.scrollTop {
		e.scrollDown(1)
		return
	}
	if s.cur.Row > 0 {
		s.cur.Row--
	}
}

func (e *Emulator) backspace() {
	s := e.curScreen()
	if s.cur.Col > 0 {
		s.cur.Col--
	}
	s.cur.PendingWrap = false
}

func (e *Emulator) horizontalTab(n int) {
	s := e.curScreen()
	s.cur.Col = s.tabs.next(s.cur.Col, n)
	s.clampCursor()
}

// writeByte writes one printable byte at the cursor, advancing it and
// latching pending-wrap on the last column rather than moving past it.
//
// Multi-byte UTF-8 graphemes are assembled by the caller's byte stream one
// byte at a time; since control-mode payloads are already decoded octet
// streams and this emulator works at the byte/rune boundary for the ASCII
// subset the dispatch table covers, non-ASCII bytes are treated as Latin-1
// single-width graphemes. This matches the scope of the sequences this
// emulator recognizes; full UTF-8 grapheme clustering is not attempted.
func (e *Emulator) writeByte(b byte) {
	s := e.curScreen()

	if s.cur.PendingWrap {
		s.cur.Col = 0
		e.indexCurrent()
		s.cur.PendingWrap = false
	}

	cell := Cell{Grapheme: string(rune(b)), Width: 1, Style: s.style}
	s.grid.set(s.cur.Col, s.cur.Row, cell)
	e.damage.markRow(s.cur.Row)

	if s.cur.Col >= s.width()-1 {
		s.cur.PendingWrap = true
	} else {
		s.cur.Col++
	}
}

// scrollUp shifts the active scroll region up by n lines, dropping the top
// n lines and clearing the exposed bottom rows.
func (e *Emulator) scrollUp(n int) {
	s := e.curScreen()
	s.grid.deleteLines(s.scrollTop, n, s.scrollTop, s.scrollBottom, blankCell(s.style))
	e.damage.markRange(s.scrollTop, s.scrollBottom)
}

// scrollDown shifts the active scroll region down by n lines, dropping the
// bottom n lines and clearing the exposed top rows.
func (e *Emulator) scrollDown(n int) {
	s := e.curScreen()
	s.grid.insertLines(s.scrollTop, n, s.scrollTop, s.scrollBottom, blankCell(s.style))
	e.damage.markRange(s.scrollTop, s.scrollBottom)
}

// fullReset performs ESC c: clears both screens, resets cursor, style, and
// scroll region, drops the alternate screen, and requests a full redraw.
func (e *Emulator) fullReset() {
	cols, rows := e.primary.width(), e.primary.height()
	e.primary = newScreen(cols, rows)
	e.alt = nil
	e.usingAlt = false
	e.workingDirectory = ""
	e.damage.markAll()
}

// enterAltScreen snapshots into the alternate buffer: a freshly cleared
// grid at the current dimensions, cursor position preserved across the
// swap per the common 1049 convention.
func (e *Emulator) enterAltScreen() {
	if e.usingAlt {
		return
	}
	cols, rows := e.primary.width(), e.primary.height()
	e.alt = newScreen(cols, rows)
	e.alt.cur = e.primary.cur
	e.alt.cur.PendingWrap = false
	e.usingAlt = true
	e.damage.markAll()
}

// exitAltScreen drops the alternate grid and reveals the primary grid
// unchanged, cursor position preserved.
func (e *Emulator) exitAltScreen() {
	if !e.usingAlt {
		return
	}
	cur := e.alt.cur
	e.alt = nil
	e.usingAlt = false
	e.primary.cur = cur
	e.primary.clampCursor()
	e.damage.markAll()
}

func (e *Emulator) dispatchCSI(cmd ansi.Cmd, params ansi.Params) {
	e.handleCsi(cmd, params)
}

func (e *Emulator) dispatchOSC(data []byte) {
	if len(data) == 0 {
		return
	}
	n, rest := splitOSC(data)
	e.handleOsc(n, rest)
}

// splitOSC splits an OSC payload "NN;rest" into its leading decimal command
// number and the remaining bytes after the separating semicolon. A
// non-numeric or missing prefix yields command -1 and the original data.
func splitOSC(data []byte) (int, []byte) {
	i := 0
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i == 0 {
		return -1, data
	}
	n := 0
	for _, c := range data[:i] {
		n = n*10 + int(c-'0')
	}
	if i < len(data) && data[i] == ';' {
		return n, data[i+1:]
	}
	return n, data[i:]
}
