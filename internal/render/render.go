// Package render turns a pane's cell grid into the ANSI-styled text a
// terminal UI can print directly, the way termframe renders plain-text
// frames but carrying SGR styling through lipgloss instead of discarding it.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/regenrek/itmux/internal/vt"
)

// styleRenderer is pinned to a fixed color profile so styled output is
// deterministic regardless of whether a terminal is attached; the grid
// is rendered to a string and handed off, never written here directly.
var styleRenderer = newStyleRenderer()

func newStyleRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

// Lines renders each row of grid as one ANSI-styled string, joining
// consecutive cells of identical style into a single styled run. Cells with
// Width 0 (the trailing slot of a wide cell) are skipped; their leading
// cell already accounted for the column.
func Lines(grid [][]vt.Cell) []string {
	out := make([]string, len(grid))
	for y, row := range grid {
		out[y] = renderRow(row)
	}
	return out
}

func renderRow(row []vt.Cell) string {
	var b strings.Builder
	var run strings.Builder
	var runStyle vt.Style
	haveRun := false

	flush := func() {
		if !haveRun {
			return
		}
		b.WriteString(styleOf(runStyle).Render(run.String()))
		run.Reset()
		haveRun = false
	}

	for _, cell := range row {
		if cell.Width == 0 {
			continue
		}
		grapheme := cell.Grapheme
		if grapheme == "" {
			grapheme = " "
		}
		if runewidth.StringWidth(grapheme) == 0 {
			grapheme = " "
		}
		if haveRun && cell.Style == runStyle {
			run.WriteString(grapheme)
			continue
		}
		flush()
		runStyle = cell.Style
		run.WriteString(grapheme)
		haveRun = true
	}
	flush()
	return b.String()
}

func styleOf(s vt.Style) lipgloss.Style {
	out := styleRenderer.NewStyle()
	if !s.Foreground.IsDefault() {
		out = out.Foreground(colorOf(s.Foreground))
	}
	if !s.Background.IsDefault() {
		out = out.Background(colorOf(s.Background))
	}
	if s.Bold {
		out = out.Bold(true)
	}
	if s.Dim {
		out = out.Faint(true)
	}
	if s.Italic {
		out = out.Italic(true)
	}
	if s.Underline {
		out = out.Underline(true)
	}
	if s.Blink {
		out = out.Blink(true)
	}
	if s.Reverse {
		out = out.Reverse(true)
	}
	if s.Strikethrough {
		out = out.Strikethrough(true)
	}
	return out
}

func colorOf(c vt.Color) lipgloss.Color {
	switch c.Kind {
	case vt.ColorBasic:
		return lipgloss.Color(fmt.Sprint(int(c.Index)))
	case vt.ColorBright:
		return lipgloss.Color(fmt.Sprint(8 + int(c.Index)))
	case vt.ColorIndexed:
		return lipgloss.Color(fmt.Sprint(int(c.Index)))
	case vt.ColorRGB:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	default:
		return lipgloss.Color("")
	}
}
