package vt

import "github.com/charmbracelet/x/ansi"

// registerCsiModeHandlers registers ANSI (`h`/`l`) and DEC private
// (`?h`/`?l`) mode set/reset, and SGR (`m`).
func (e *Emulator) registerCsiModeHandlers() {
	e.RegisterCsiHandler(csiPlain('h'), func(params ansi.Params) bool {
		e.handleMode(params, true)
		return true
	})

	e.RegisterCsiHandler(csiPlain('l'), func(params ansi.Params) bool {
		e.handleMode(params, false)
		return true
	})

	e.RegisterCsiHandler(int(ansi.Command('?', 0, 'h')), func(params ansi.Params) bool {
		e.handlePrivateMode(params, true)
		return true
	})

	e.RegisterCsiHandler(int(ansi.Command('?', 0, 'l')), func(params ansi.Params) bool {
		e.handlePrivateMode(params, false)
		return true
	})

	e.RegisterCsiHandler(csiPlain('m'), func(params ansi.Params) bool {
		e.handleSGR(params)
		return true
	})
}

// handleMode handles plain ANSI mode set/reset. None of the ANSI modes
// (IRM, LNM, ...) affect the cell grid this emulator exposes, so this is
// accepted and ignored.
func (e *Emulator) handleMode(params ansi.Params, set bool) {}

// handlePrivateMode handles DEC private mode set/reset. Only 1049
// (alternate screen) has observable effect on the exposed screen state;
// other private modes (cursor visibility, bracketed paste, mouse
// reporting, ...) are accepted and ignored since nothing downstream of
// this emulator consumes them.
func (e *Emulator) handlePrivateMode(params ansi.Params, set bool) {
	for i := 0; i < len(params); i++ {
		n, _, _ := params.Param(i, -1)
		if n != 1049 {
			continue
		}
		if set {
			e.enterAltScreen()
		} else {
			e.exitAltScreen()
		}
	}
}
