// Package grapheme computes Unicode Extended Grapheme Cluster boundaries
// (UAX #29) over a rope, in both directions, without materializing the
// whole document into memory.
package grapheme

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"

	"github.com/dshills/scribe/internal/engine/rope"
)

// windowChunks bounds how many chunk reads the forward scanner performs
// before giving up on one grapheme cluster. Genuine grapheme clusters
// (even flag-sequence emoji) never span this many rope chunks.
const windowChunks = 64

// chunkReader streams a rope's text forward starting at a byte offset, one
// chunk at a time, implementing io.Reader so it can drive a bufio.Scanner.
type chunkReader struct {
	r      rope.Rope
	offset rope.ByteOffset
	reads  int
}

func (cr *chunkReader) Read(p []byte) (int, error) {
	if cr.offset >= cr.r.Len() {
		return 0, io.EOF
	}
	if cr.reads >= windowChunks {
		return 0, io.EOF
	}
	text, start, _, ok := cr.r.ChunkAtByte(cr.offset)
	if !ok {
		return 0, io.EOF
	}
	cr.reads++
	// Skip the part of the chunk before our current offset (only happens
	// on the very first read, when offset lands mid-chunk).
	skip := int(cr.offset - start)
	if skip < 0 {
		skip = 0
	}
	if skip >= len(text) {
		cr.offset = start + rope.ByteOffset(len(text))
		return 0, nil
	}
	n := copy(p, text[skip:])
	cr.offset = start + rope.ByteOffset(skip+n)
	return n, nil
}

// NextBoundary returns the char index of the grapheme boundary after c, the
// "next grapheme boundary" primitive of the editing core. If c is already
// at or past the document end, it returns len_chars.
func NextBoundary(r rope.Rope, c rope.CharOffset) rope.CharOffset {
	total := r.LenChars()
	if c >= total {
		return total
	}

	byteOff := r.CharToByte(c)
	reader := &chunkReader{r: r, offset: byteOff}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 256), 256*windowChunks)
	scanner.Split(graphemes.SplitFunc)

	if !scanner.Scan() {
		return total
	}
	token := scanner.Text()
	if token == "" {
		return total
	}
	return c + rope.CharOffset(utf8.RuneCountInString(token))
}

// PrevBoundary returns the char index of the grapheme boundary before c. If
// c is already at or before the document start, it returns 0.
//
// There is no public reverse segmenter in the grapheme library, so this
// works by re-segmenting forward from a window safely behind c and
// returning the last boundary strictly less than c. The window doubles
// until it produces a boundary that is not itself the window start (or
// until it reaches the start of the document), which guarantees the
// boundary found is not an artifact of where the window began.
func PrevBoundary(r rope.Rope, c rope.CharOffset) rope.CharOffset {
	if c <= 0 {
		return 0
	}

	back := rope.CharOffset(32)
	for {
		var windowStart rope.CharOffset
		if back >= c {
			windowStart = 0
		} else {
			windowStart = c - back
		}

		boundary, hitWindowStart := lastBoundaryBefore(r, windowStart, c)
		if windowStart == 0 || !hitWindowStart {
			return boundary
		}
		back *= 2
	}
}

// lastBoundaryBefore segments forward from windowStart and returns the char
// offset of the last grapheme boundary strictly less than target, along
// with whether that boundary coincides with windowStart (meaning the window
// may have started mid-way through a cluster and should be grown).
func lastBoundaryBefore(r rope.Rope, windowStart, target rope.CharOffset) (rope.CharOffset, bool) {
	byteOff := r.CharToByte(windowStart)
	reader := &chunkReader{r: r, offset: byteOff}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 256), 1<<20)
	scanner.Split(graphemes.SplitFunc)

	pos := windowStart
	last := windowStart
	for pos < target && scanner.Scan() {
		token := scanner.Text()
		if token == "" {
			break
		}
		n := rope.CharOffset(utf8.RuneCountInString(token))
		if pos+n >= target {
			break
		}
		pos += n
		last = pos
	}
	return last, last == windowStart
}
