package vt

// registerDefaultEscHandlers registers the single-byte ESC introducers this
// emulator recognizes: save/restore cursor, index, reverse index, horizontal
// tab set, and full reset. Character-set switching and other historical ESC
// sequences are out of scope; any other byte falls through unhandled and is
// ignored.
func (e *Emulator) registerDefaultEscHandlers() {
	e.RegisterEscHandler('H', func() bool {
		s := e.curScreen()
		s.tabs.setAt(s.cur.Col)
		return true
	})

	e.RegisterEscHandler('7', func() bool {
		e.curScreen().saveCursor()
		return true
	})

	e.RegisterEscHandler('8', func() bool {
		e.curScreen().restoreCursor()
		e.damage.markAll()
		return true
	})

	e.RegisterEscHandler('M', func() bool {
		e.reverseIndex()
		return true
	})

	e.RegisterEscHandler('D', func() bool {
		e.indexCurrent()
		return true
	})

	e.RegisterEscHandler('c', func() bool {
		e.fullReset()
		return true
	})
}
