package render

import (
	"strings"
	"testing"

	"github.com/regenrek/itmux/internal/vt"
)

func TestLinesRendersPlainText(t *testing.T) {
	grid := [][]vt.Cell{
		{{Grapheme: "h", Width: 1}, {Grapheme: "i", Width: 1}},
	}
	lines := Lines(grid)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "hi") {
		t.Fatalf("lines[0] = %q, want to contain %q", lines[0], "hi")
	}
}

func TestLinesAppliesForeground(t *testing.T) {
	grid := [][]vt.Cell{
		{{Grapheme: "A", Width: 1, Style: vt.Style{Foreground: vt.BasicColor(1)}}},
	}
	lines := Lines(grid)
	if !strings.Contains(lines[0], "A") {
		t.Fatalf("lines[0] = %q, want to contain A", lines[0])
	}
	if lines[0] == "A" {
		t.Fatalf("lines[0] = %q, want SGR escapes around A for a non-default foreground", lines[0])
	}
}

func TestLinesSkipsWideCellTrailingSlot(t *testing.T) {
	grid := [][]vt.Cell{
		{{Grapheme: "中", Width: 2}, {Width: 0}, {Grapheme: "x", Width: 1}},
	}
	lines := Lines(grid)
	if !strings.Contains(lines[0], "中x") {
		t.Fatalf("lines[0] = %q, want to contain %q", lines[0], "中x")
	}
}
