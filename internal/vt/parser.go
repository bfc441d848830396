package vt

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/regenrek/itmux/internal/limits"
)

// parseState is the byte-level state of the escape-sequence scanner. It is
// kept on the Emulator so an arbitrarily chunked input stream resumes
// correctly across process() calls.
type parseState int

const (
	stGround parseState = iota
	stEscape
	stCSI
	stOSC
)

// scanner is the resumable low-level byte scanner feeding CSI/OSC/ESC
// dispatch. It never fails: unrecognized or overlong sequences are dropped
// and scanning returns to stGround, per the emulator's silent-absorption
// failure model.
type scanner struct {
	state parseState

	// CSI accumulation.
	csiMarker byte
	csiInter  byte
	csiParams []int
	csiCur    int
	csiHasCur bool
	csiOverflow bool

	// OSC accumulation.
	oscBuf []byte

	// ESC second-byte dispatch is single-byte, no continuation needed.
}

func (sc *scanner) resetCSI() {
	sc.csiMarker = 0
	sc.csiInter = 0
	sc.csiParams = sc.csiParams[:0]
	sc.csiCur = 0
	sc.csiHasCur = false
	sc.csiOverflow = false
}

func (sc *scanner) resetOSC() {
	sc.oscBuf = sc.oscBuf[:0]
}

// feed advances the scanner by one byte, invoking the emulator's dispatch
// methods as complete sequences are recognized. It returns to stGround on
// any malformed or overlong sequence rather than erroring.
func (e *Emulator) feed(b byte) {
	sc := &e.sc
	switch sc.state {
	case stGround:
		e.feedGround(b)

	case stEscape:
		e.feedEscape(b)

	case stCSI:
		e.feedCSI(b)

	case stOSC:
		e.feedOSC(b)
	}
}

func (e *Emulator) feedGround(b byte) {
	sc := &e.sc
	switch b {
	case 0x1b: // ESC
		sc.state = stEscape
	case '\r':
		e.carriageReturn()
	case '\n', '\v', '\f':
		e.indexCurrent()
	case '\b':
		e.backspace()
	case '\t':
		e.horizontalTab(1)
	case 0x07, 0x00: // BEL, NUL
		// ignored
	default:
		if b >= 0x20 {
			e.writeByte(b)
		}
	}
}

func (e *Emulator) feedEscape(b byte) {
	sc := &e.sc
	switch b {
	case '[':
		sc.resetCSI()
		sc.state = stCSI
	case ']':
		sc.resetOSC()
		sc.state = stOSC
	default:
		// Single-byte ESC sequences (save/restore cursor, index, reverse
		// index, tab set, full reset) are dispatched through the handler
		// registry.
		// Unrecognized introducers fall through unhandled and are ignored
		// per the failure model.
		e.handleEsc(int(b))
		sc.state = stGround
	}
}

func (e *Emulator) feedCSI(b byte) {
	sc := &e.sc

	switch {
	case b == '?' || b == '>' || b == '!' || b == '=':
		if len(sc.csiParams) == 0 && !sc.csiHasCur {
			sc.csiMarker = b
		}
	case b >= '0' && b <= '9':
		if !sc.csiOverflow {
			sc.csiCur = sc.csiCur*10 + int(b-'0')
			sc.csiHasCur = true
		}
	case b == ';' || b == ':':
		sc.csiParams = append(sc.csiParams, csiParamOrDefault(sc))
		sc.csiCur = 0
		sc.csiHasCur = false
		if len(sc.csiParams) > 64 {
			// Overlong parameter list: drop the sequence.
			sc.csiOverflow = true
			sc.state = stGround
		}
	case b >= 0x20 && b <= 0x2f:
		sc.csiInter = b
	case b >= 0x40 && b <= 0x7e:
		sc.csiParams = append(sc.csiParams, csiParamOrDefault(sc))
		cmd := ansi.Command(sc.csiMarker, sc.csiInter, b)
		params := make(ansi.Params, len(sc.csiParams))
		for i, v := range sc.csiParams {
			params[i] = ansi.Param(v)
		}
		e.dispatchCSI(ansi.Cmd(cmd), params)
		sc.state = stGround
	default:
		// Unexpected byte inside a CSI sequence aborts it silently.
		sc.state = stGround
	}
}

func csiParamOrDefault(sc *scanner) int {
	if !sc.csiHasCur {
		return -1
	}
	return sc.csiCur
}

func (e *Emulator) feedOSC(b byte) {
	sc := &e.sc
	switch b {
	case 0x07: // BEL terminator
		e.dispatchOSC(sc.oscBuf)
		sc.state = stGround
	case 0x1b: // possible ST (ESC \): buffer it, resolved on the next byte
		sc.oscBuf = append(sc.oscBuf, b)
	case '\\':
		if n := len(sc.oscBuf); n > 0 && sc.oscBuf[n-1] == 0x1b {
			e.dispatchOSC(sc.oscBuf[:n-1])
			sc.state = stGround
			return
		}
		sc.oscBuf = append(sc.oscBuf, b)
	default:
		sc.oscBuf = append(sc.oscBuf, b)
	}

	if len(sc.oscBuf) > limits.EscapeMaxBytesDefault {
		sc.state = stGround
		sc.resetOSC()
	}
}
