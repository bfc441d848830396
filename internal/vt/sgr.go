package vt

import "github.com/charmbracelet/x/ansi"

// handleSGR applies Select Graphic Rendition parameters to the current
// screen's pending style. Parameters are iterated left to right; any
// unrecognized number is ignored and iteration continues.
func (e *Emulator) handleSGR(params ansi.Params) {
	s := e.curScreen()
	style := s.style

	if len(params) == 0 {
		style.reset()
		s.style = style
		return
	}

	for i := 0; i < len(params); i++ {
		n, _, _ := params.Param(i, 0)
		switch {
		case n == 0:
			style.reset()
		case n == 1:
			style.Bold = true
		case n == 2:
			style.Dim = true
		case n == 3:
			style.Italic = true
		case n == 4:
			style.Underline = true
		case n == 5, n == 6:
			style.Blink = true
		case n == 7:
			style.Reverse = true
		case n == 8:
			style.Hidden = true
		case n == 9:
			style.Strikethrough = true
		case n == 21, n == 22:
			style.Bold = false
			style.Dim = false
		case n == 23:
			style.Italic = false
		case n == 24:
			style.Underline = false
		case n == 25:
			style.Blink = false
		case n == 27:
			style.Reverse = false
		case n == 28:
			style.Hidden = false
		case n == 29:
			style.Strikethrough = false
		case n >= 30 && n <= 37:
			style.Foreground = BasicColor(uint8(n - 30))
		case n == 38:
			color, consumed := readExtendedColor(params, i+1)
			style.Foreground = color
			i += consumed
		case n == 39:
			style.Foreground = DefaultColor
		case n >= 40 && n <= 47:
			style.Background = BasicColor(uint8(n - 40))
		case n == 48:
			color, consumed := readExtendedColor(params, i+1)
			style.Background = color
			i += consumed
		case n == 49:
			style.Background = DefaultColor
		case n >= 90 && n <= 97:
			style.Foreground = BrightColor(uint8(n - 90))
		case n >= 100 && n <= 107:
			style.Background = BrightColor(uint8(n - 100))
		}
	}

	s.style = style
}

// readExtendedColor parses the "5;N" (256-index) or "2;R;G;B" (truecolor)
// continuation of an SGR 38/48 parameter starting at index i. It returns
// the decoded color and how many additional params it consumed.
func readExtendedColor(params ansi.Params, i int) (Color, int) {
	if i >= len(params) {
		return DefaultColor, 0
	}
	mode, _, _ := params.Param(i, 0)
	switch mode {
	case 5:
		if i+1 >= len(params) {
			return DefaultColor, 1
		}
		idx, _, _ := params.Param(i+1, 0)
		return IndexedColor(uint8(idx)), 2
	case 2:
		if i+3 >= len(params) {
			return DefaultColor, len(params) - i
		}
		r, _, _ := params.Param(i+1, 0)
		g, _, _ := params.Param(i+2, 0)
		b, _, _ := params.Param(i+3, 0)
		return RGBColor(uint8(r), uint8(g), uint8(b)), 4
	default:
		return DefaultColor, 0
	}
}
