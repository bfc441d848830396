package control

import (
	"bytes"
	"testing"
)

func TestFramerResumption(t *testing.T) {
	input := []byte("%session-changed $1 itmux\n%output %0 hello\\040world\\012\n%exit\n")

	whole := NewFramer()
	wantLines, err := whole.Feed(input)
	if err != nil {
		t.Fatalf("Feed(whole): %v", err)
	}

	for chunkSize := 1; chunkSize <= len(input); chunkSize++ {
		f := NewFramer()
		var gotLines []string
		for i := 0; i < len(input); i += chunkSize {
			end := i + chunkSize
			if end > len(input) {
				end = len(input)
			}
			lines, err := f.Feed(input[i:end])
			if err != nil {
				t.Fatalf("chunkSize=%d: Feed: %v", chunkSize, err)
			}
			gotLines = append(gotLines, lines...)
		}
		if len(gotLines) != len(wantLines) {
			t.Fatalf("chunkSize=%d: got %d lines, want %d (%v vs %v)", chunkSize, len(gotLines), len(wantLines), gotLines, wantLines)
		}
		for i := range wantLines {
			if gotLines[i] != wantLines[i] {
				t.Fatalf("chunkSize=%d line %d: got %q, want %q", chunkSize, i, gotLines[i], wantLines[i])
			}
		}
	}
}

func TestFramerRetainsTrailingIncompleteLine(t *testing.T) {
	f := NewFramer()
	lines, err := f.Feed([]byte("%exit client"))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected no complete lines yet, got %v", lines)
	}
	lines, err = f.Feed([]byte("-detached\n"))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(lines) != 1 || lines[0] != "%exit client-detached" {
		t.Fatalf("got %v, want one completed line", lines)
	}
}

func TestFramerOverlongFrame(t *testing.T) {
	f := NewFramer()
	f.maxBytes = 8
	_, err := f.Feed([]byte("0123456789"))
	if err != ErrOverlongFrame {
		t.Fatalf("got err=%v, want ErrOverlongFrame", err)
	}
}

func TestOutputPayloadRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte("hello world\n"),
		[]byte("\x1b[31mred\x1b[0m"),
		{0, 1, 2, 0x7f, 0xff, '\\', ' '},
		[]byte(""),
	}
	for _, b := range cases {
		encoded := encodeOutputPayload(b)
		decoded := decodeOutputPayload(encoded)
		if !bytes.Equal(decoded, b) {
			t.Fatalf("round trip %v -> %q -> %v", b, encoded, decoded)
		}
	}
}
