package tmuxlayout

import (
	"reflect"
	"testing"
)

func TestParseSinglePane(t *testing.T) {
	boxes, err := Parse("c3b2,80x24,0,0,1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []PaneBox{{PaneID: "%1", X: 0, Y: 0, Width: 80, Height: 24}}
	if !reflect.DeepEqual(boxes, want) {
		t.Fatalf("got %+v, want %+v", boxes, want)
	}
}

func TestParseHorizontalSplit(t *testing.T) {
	boxes, err := Parse("c1a2,80x24,0,0{40x24,0,0,1,39x24,41,0,2}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []PaneBox{
		{PaneID: "%1", X: 0, Y: 0, Width: 40, Height: 24},
		{PaneID: "%2", X: 41, Y: 0, Width: 39, Height: 24},
	}
	if !reflect.DeepEqual(boxes, want) {
		t.Fatalf("got %+v, want %+v", boxes, want)
	}
}

func TestParseVerticalSplit(t *testing.T) {
	boxes, err := Parse("d4e5,80x24,0,0[80x12,0,0,1,80x11,0,13,2]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []PaneBox{
		{PaneID: "%1", X: 0, Y: 0, Width: 80, Height: 12},
		{PaneID: "%2", X: 0, Y: 13, Width: 80, Height: 11},
	}
	if !reflect.DeepEqual(boxes, want) {
		t.Fatalf("got %+v, want %+v", boxes, want)
	}
}

// TestParseNestedSplit covers a horizontal split whose right child is itself
// vertically split, confirming depth-first left-to-right, top-to-bottom
// traversal order is preserved through nesting.
func TestParseNestedSplit(t *testing.T) {
	descriptor := "f0a1,80x24,0,0{40x24,0,0,1,39x24,41,0[39x12,41,0,2,39x11,41,13,3]}"
	boxes, err := Parse(descriptor)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []PaneBox{
		{PaneID: "%1", X: 0, Y: 0, Width: 40, Height: 24},
		{PaneID: "%2", X: 41, Y: 0, Width: 39, Height: 12},
		{PaneID: "%3", X: 41, Y: 13, Width: 39, Height: 11},
	}
	if !reflect.DeepEqual(boxes, want) {
		t.Fatalf("got %+v, want %+v", boxes, want)
	}
}

func TestParseRejectsMissingChecksum(t *testing.T) {
	if _, err := Parse("80x24,0,0,1"); err == nil {
		t.Fatalf("expected error for missing checksum prefix")
	}
}

func TestParseRejectsTruncatedSplit(t *testing.T) {
	if _, err := Parse("c3b2,80x24,0,0{40x24,0,0,1"); err == nil {
		t.Fatalf("expected error for unterminated split")
	}
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	if _, err := Parse("c3b2,80x24,0,0,1,extra"); err == nil {
		t.Fatalf("expected error for trailing data after leaf")
	}
}

func TestParseErrorReportsOffset(t *testing.T) {
	_, err := Parse("zzzz,80x24,0,0,1")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if pe.Offset != 0 {
		t.Fatalf("Offset = %d, want 0", pe.Offset)
	}
}
