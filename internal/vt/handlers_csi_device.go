package vt

import "github.com/charmbracelet/x/ansi"

// registerCsiDeviceHandlers registers device-attribute and status-report
// CSI finals as no-ops: this emulator has no outbound channel to the
// remote, so nothing is written back.
func (e *Emulator) registerCsiDeviceHandlers() {
	e.RegisterCsiHandler(csiPlain('c'), func(params ansi.Params) bool {
		return true
	})

	e.RegisterCsiHandler(int(ansi.Command('>', 0, 'c')), func(params ansi.Params) bool {
		return true
	})

	e.RegisterCsiHandler(csiPlain('n'), func(params ansi.Params) bool {
		return true
	})

	e.RegisterCsiHandler(int(ansi.Command('?', 0, 'n')), func(params ansi.Params) bool {
		return true
	})
}
