package vt

import "github.com/charmbracelet/x/ansi"

// registerCsiScrollMarginHandlers registers explicit scroll-by-n, scroll
// region, and save/restore cursor CSI finals.
func (e *Emulator) registerCsiScrollMarginHandlers() {
	e.RegisterCsiHandler(csiPlain('S'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		e.scrollUp(clampPositive(n))
		return true
	})

	e.RegisterCsiHandler(csiPlain('T'), func(params ansi.Params) bool {
		n, _, _ := params.Param(0, 1)
		e.scrollDown(clampPositive(n))
		return true
	})

	e.RegisterCsiHandler(csiPlain('r'), func(params ansi.Params) bool {
		s := e.curScreen()
		top, _, _ := params.Param(0, 1)
		bottom, _, _ := params.Param(1, s.height())
		s.setScrollRegion(top-1, bottom-1)
		s.cur.Row, s.cur.Col = 0, 0
		s.cur.PendingWrap = false
		return true
	})

	e.RegisterCsiHandler(csiPlain('s'), func(params ansi.Params) bool {
		e.curScreen().saveCursor()
		return true
	})

	e.RegisterCsiHandler(csiPlain('u'), func(params ansi.Params) bool {
		e.curScreen().restoreCursor()
		e.damage.markAll()
		return true
	})
}
