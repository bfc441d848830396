package limits

const (
	// FrameMaxBytesDefault bounds how much of an unterminated control-mode
	// line the framer will buffer before declaring the frame overlong and
	// failing the connection. Matches the policy limit in the control-mode
	// wire contract.
	FrameMaxBytesDefault = 4 * 1024 * 1024

	// EscapeMaxBytesDefault bounds how many bytes of an incomplete OSC
	// string the terminal emulator will buffer across chunk boundaries
	// before giving up on it and returning to the ground state. CSI
	// sequences are bounded by their parameter count instead.
	EscapeMaxBytesDefault = 64 * 1024

	// PayloadInspectLimit bounds how many leading bytes of a redacted
	// payload are hashed, so the hash stays stable across truncated
	// duplicates of the same long payload.
	PayloadInspectLimit = 4096
)
