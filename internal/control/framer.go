package control

import (
	"errors"

	"github.com/regenrek/itmux/internal/limits"
)

// ErrOverlongFrame is returned when an unterminated line grows past
// limits.FrameMaxBytesDefault without a LF ever arriving. Per the wire
// contract, the caller must treat this as fatal and close the connection.
var ErrOverlongFrame = errors.New("control: overlong frame")

// Framer splits a byte stream into LF-terminated lines, resuming correctly
// across arbitrary chunk boundaries. It is not safe for concurrent use; the
// owning connection's single ingest task serializes all Feed calls.
type Framer struct {
	buf      []byte
	maxBytes int
}

// NewFramer creates a Framer with the default overlong-frame limit.
func NewFramer() *Framer {
	return &Framer{maxBytes: limits.FrameMaxBytesDefault}
}

// Feed appends chunk to the pending buffer and returns every complete line
// it now contains (LF stripped; a trailing CR is also stripped). Any
// trailing incomplete line is retained for the next call. Lines are
// returned in arrival order.
func (f *Framer) Feed(chunk []byte) ([]string, error) {
	f.buf = append(f.buf, chunk...)

	var lines []string
	start := 0
	for i := 0; i < len(f.buf); i++ {
		if f.buf[i] != '\n' {
			continue
		}
		end := i
		if end > start && f.buf[end-1] == '\r' {
			end--
		}
		lines = append(lines, string(f.buf[start:end]))
		start = i + 1
	}

	remaining := len(f.buf) - start
	if remaining > 0 {
		copy(f.buf, f.buf[start:])
	}
	f.buf = f.buf[:remaining]

	if len(f.buf) > f.maxBytes {
		f.buf = f.buf[:0]
		return lines, ErrOverlongFrame
	}

	return lines, nil
}
