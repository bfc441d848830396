package vt

import "github.com/charmbracelet/x/ansi"

// registerCsiEditHandlers registers erase-display/line and insert/delete
// line/character CSI finals.
func (e *Emulator) registerCsiEditHandlers() {
	e.RegisterCsiHandler(csiPlain('J'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 0)
		s := e.curScreen()
		switch n {
		case 0:
			s.grid.eraseCells(s.cur.Col, s.cur.Row, s.width()-s.cur.Col, blankCell(s.style))
			for y := s.cur.Row + 1; y < s.height(); y++ {
				s.grid.fillRow(y, blankCell(s.style))
			}
			e.damage.markRange(s.cur.Row, s.height()-1)
		case 1:
			s.grid.eraseCells(0, s.cur.Row, s.cur.Col+1, blankCell(s.style))
			for y := 0; y < s.cur.Row; y++ {
				s.grid.fillRow(y, blankCell(s.style))
			}
			e.damage.markRange(0, s.cur.Row)
		case 2, 3:
			// 3 (erase including scrollback) has no scrollback to erase
			// beyond the active screen; it degrades to erasing the screen.
			s.grid.clear(blankCell(s.style))
			e.damage.markAll()
		}
		return true
	})

	e.RegisterCsiHandler(csiPlain('K'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 0)
		s := e.curScreen()
		switch n {
		case 0:
			s.grid.eraseCells(s.cur.Col, s.cur.Row, s.width()-s.cur.Col, blankCell(s.style))
		case 1:
			s.grid.eraseCells(0, s.cur.Row, s.cur.Col+1, blankCell(s.style))
		case 2:
			s.grid.fillRow(s.cur.Row, blankCell(s.style))
		}
		e.damage.markRow(s.cur.Row)
		return true
	})

	e.RegisterCsiHandler(csiPlain('L'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		s := e.curScreen()
		s.grid.insertLines(s.cur.Row, clampPositive(n), s.scrollTop, s.scrollBottom, blankCell(s.style))
		e.damage.markRange(s.cur.Row, s.scrollBottom)
		return true
	})

	e.RegisterCsiHandler(csiPlain('M'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		s := e.curScreen()
		s.grid.deleteLines(s.cur.Row, clampPositive(n), s.scrollTop, s.scrollBottom, blankCell(s.style))
		e.damage.markRange(s.cur.Row, s.scrollBottom)
		return true
	})

	e.RegisterCsiHandler(csiPlain('P'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		s := e.curScreen()
		s.grid.deleteCells(s.cur.Col, s.cur.Row, clampPositive(n), blankCell(s.style))
		e.damage.markRow(s.cur.Row)
		return true
	})

	e.RegisterCsiHandler(csiPlain('@'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		s := e.curScreen()
		s.grid.insertCells(s.cur.Col, s.cur.Row, clampPositive(n), blankCell(s.style))
		e.damage.markRow(s.cur.Row)
		return true
	})

	e.RegisterCsiHandler(csiPlain('X'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		s := e.curScreen()
		s.grid.eraseCells(s.cur.Col, s.cur.Row, clampPositive(n), blankCell(s.style))
		e.damage.markRow(s.cur.Row)
		return true
	})
}
