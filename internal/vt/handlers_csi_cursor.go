package vt

import "github.com/charmbracelet/x/ansi"

// registerCsiCursorHandlers registers cursor-movement CSI finals: up/down/
// forward/back, next/previous line, absolute column/row, and absolute
// position.
func (e *Emulator) registerCsiCursorHandlers() {
	e.RegisterCsiHandler(csiPlain('A'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		e.moveCursor(-clampPositive(n), 0)
		return true
	})

	e.RegisterCsiHandler(csiPlain('B'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		e.moveCursor(clampPositive(n), 0)
		return true
	})

	e.RegisterCsiHandler(csiPlain('C'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		e.moveCursor(0, clampPositive(n))
		return true
	})

	e.RegisterCsiHandler(csiPlain('D'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		e.moveCursor(0, -clampPositive(n))
		return true
	})

	e.RegisterCsiHandler(csiPlain('E'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		s := e.curScreen()
		s.cur.Col = 0
		s.cur.PendingWrap = false
		e.moveCursor(clampPositive(n), 0)
		return true
	})

	e.RegisterCsiHandler(csiPlain('F'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		s := e.curScreen()
		s.cur.Col = 0
		s.cur.PendingWrap = false
		e.moveCursor(-clampPositive(n), 0)
		return true
	})

	e.RegisterCsiHandler(csiPlain('G'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		e.setCursorCol(n - 1)
		return true
	})

	e.RegisterCsiHandler(csiPlain('d'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		e.setCursorRow(n - 1)
		return true
	})

	e.RegisterCsiHandler(csiPlain('H'), func(params ansi.Params) bool {
		row, _, _ := params.Param(0, 1)
		col, _, _ := params.Param(1, 1)
		e.setCursorPosition(row-1, col-1)
		return true
	})

	e.RegisterCsiHandler(csiPlain('f'), func(params ansi.Params) bool {
		row, _, _ := params.Param(0, 1)
		col, _, _ := params.Param(1, 1)
		e.setCursorPosition(row-1, col-1)
		return true
	})

	e.RegisterCsiHandler(csiPlain('I'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		e.horizontalTab(clampPositive(n))
		return true
	})
}

func clampPositive(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// moveCursor shifts the cursor by dy rows and dx columns, clearing the
// pending-wrap latch, and clamps the result into the screen.
func (e *Emulator) moveCursor(dy, dx int) {
	s := e.curScreen()
	s.cur.Row += dy
	s.cur.Col += dx
	s.cur.PendingWrap = false
	s.clampCursor()
}

func (e *Emulator) setCursorCol(col int) {
	s := e.curScreen()
	s.cur.Col = col
	s.cur.PendingWrap = false
	s.clampCursor()
}

func (e *Emulator) setCursorRow(row int) {
	s := e.curScreen()
	s.cur.Row = row
	s.cur.PendingWrap = false
	s.clampCursor()
}

func (e *Emulator) setCursorPosition(row, col int) {
	s := e.curScreen()
	s.cur.Row = row
	s.cur.Col = col
	s.cur.PendingWrap = false
	s.clampCursor()
}
