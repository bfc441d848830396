package vt

import "github.com/charmbracelet/x/ansi"

// csiPlain builds the registry key for a CSI final byte with no private-mode
// marker or intermediate, using the same packing ansi.Command uses for the
// parser's dispatch key so registration and dispatch always agree.
func csiPlain(final byte) int {
	return int(ansi.Command(0, 0, final))
}

// registerDefaultCsiHandlers registers the CSI dispatch table: cursor
// movement, erase/insert/delete, scroll regions and margins, SGR, mode
// set/reset, and the device no-ops.
func (e *Emulator) registerDefaultCsiHandlers() {
	e.registerCsiCursorHandlers()
	e.registerCsiEditHandlers()
	e.registerCsiScrollMarginHandlers()
	e.registerCsiModeHandlers()
	e.registerCsiDeviceHandlers()
}
