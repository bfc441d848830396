package vt

// cursor holds position and the pending-wrap latch. Representing "wrote the
// last column" as a boolean rather than column==columns avoids the classic
// off-by-one wrap bug: a printable byte while latched moves to column 0,
// performs an index, then writes.
type cursor struct {
	Row, Col   int
	PendingWrap bool
}

// screen is one pane's visible grid: cells, cursor, style, scroll region,
// and tab stops. The primary and alternate buffers are each a screen;
// Emulator owns one or two of them per pane.
type screen struct {
	grid *grid

	cur      cursor
	savedCur cursor

	style Style

	scrollTop, scrollBottom int // inclusive, 0-based

	tabs *tabStops
}

func newScreen(cols, rows int) *screen {
	s := &screen{
		grid:          newGrid(cols, rows, blankCell(Style{})),
		scrollTop:     0,
		scrollBottom:  rows - 1,
		tabs:          newTabStops(cols),
	}
	return s
}

func (s *screen) width() int  { return s.grid.Width() }
func (s *screen) height() int { return s.grid.Height() }

func (s *screen) clampCursor() {
	if s.cur.Row < 0 {
		s.cur.Row = 0
	}
	if s.cur.Row >= s.height() {
		s.cur.Row = s.height() - 1
	}
	if s.cur.Col < 0 {
		s.cur.Col = 0
	}
	if s.cur.Col >= s.width() {
		s.cur.Col = s.width() - 1
	}
}

func (s *screen) resize(cols, rows int) {
	s.grid.resize(cols, rows, blankCell(s.style))
	s.scrollTop = 0
	s.scrollBottom = rows - 1
	s.tabs.reset(cols)
	s.clampCursor()
}

// setScrollRegion sets the inclusive scroll region, clamped to the screen
// bounds per invariant "0 <= top <= bottom <= rows-1".
func (s *screen) setScrollRegion(top, bottom int) {
	h := s.height()
	if top < 0 {
		top = 0
	}
	if bottom >= h {
		bottom = h - 1
	}
	if top > bottom {
		top, bottom = 0, h-1
	}
	s.scrollTop, s.scrollBottom = top, bottom
}

func (s *screen) fullScrollRegion() bool {
	return s.scrollTop == 0 && s.scrollBottom == s.height()-1
}

func (s *screen) saveCursor() {
	s.savedCur = s.cur
}

func (s *screen) restoreCursor() {
	s.cur = s.savedCur
	s.clampCursor()
}
