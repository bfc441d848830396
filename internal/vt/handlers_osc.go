package vt

// registerDefaultOscHandlers registers OSC command handlers: window title
// (0/1/2) is recognized and silently ignored; 7 updates the pane's working
// directory hint; anything else is discarded by the default handling in
// dispatchOSC (no handler registered, handleOsc returns false, caller does
// nothing further).
func (e *Emulator) registerDefaultOscHandlers() {
	e.RegisterOscHandler(0, func(data []byte) bool { return true })
	e.RegisterOscHandler(1, func(data []byte) bool { return true })
	e.RegisterOscHandler(2, func(data []byte) bool { return true })

	e.RegisterOscHandler(7, func(data []byte) bool {
		e.workingDirectory = string(data)
		return true
	})
}
