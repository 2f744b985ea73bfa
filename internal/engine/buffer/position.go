package buffer

import (
	"fmt"
	"sync/atomic"

	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/rope"
)

// ByteOffset represents a byte position in the buffer, the coordinate LSP
// requests and raw TextRange/ApplyEdit calls are expressed in. Selections
// and carets instead live in the char-indexed cursor.Range/rope.CharOffset
// space; Range.ToCharRange and RangeFromCharRange in range.go cross between
// the two, so editing code only ever needs the one char vocabulary plus a
// conversion at the byte-facing boundary, not two parallel range types.
type ByteOffset = int64

// Point represents a line and column position.
// Both Line and Column are 0-indexed.
// Column is measured in bytes from the start of the line.
type Point struct {
	Line   uint32 // 0-indexed line number
	Column uint32 // 0-indexed column (byte offset within line)
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero point (0:0).
func (p Point) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// ToByteOffset resolves this line/column position to a byte offset in
// content.
func (p Point) ToByteOffset(content rope.Rope) ByteOffset {
	return ByteOffset(content.PointToOffset(rope.Point{Line: p.Line, Column: p.Column}))
}

// ToCharOffset resolves this line/column position to the char (code point)
// offset cursor.Selection and cursor.Range carets are expressed in.
func (p Point) ToCharOffset(content rope.Rope) cursor.CharOffset {
	return content.ByteToChar(rope.ByteOffset(p.ToByteOffset(content)))
}

// PointUTF16 represents a line and column position where the column
// is measured in UTF-16 code units. This is used for LSP compatibility
// since many editors and the LSP protocol use UTF-16 encoding.
type PointUTF16 struct {
	Line   uint32 // 0-indexed line number
	Column uint32 // 0-indexed column in UTF-16 code units
}

// String returns a human-readable representation of the point.
func (p PointUTF16) String() string {
	return fmt.Sprintf("(%d:%d utf16)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p PointUTF16) Compare(other PointUTF16) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p PointUTF16) Before(other PointUTF16) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p PointUTF16) After(other PointUTF16) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero point (0:0).
func (p PointUTF16) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
// This is thread-safe using atomic operations.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
