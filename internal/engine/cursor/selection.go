package cursor

import (
	"fmt"

	"github.com/dshills/scribe/internal/engine/rope"
)

// CharOffset is an alias for convenience; selections are always indexed in
// code points, never bytes.
type CharOffset = rope.CharOffset

// Range is a normalized (left, right) char range.
type Range struct {
	Start CharOffset
	End   CharOffset
}

// Len returns the range's length in chars.
func (r Range) Len() CharOffset {
	return r.End - r.Start
}

// Selection is a single caret or range: start is the anchor, end is the
// cursor (the side that moves under directional commands). start == end
// means a bare caret. start may be greater than end, representing a
// reversed range whose cursor is to the left of the anchor.
//
// Horiz is the remembered visual column used to preserve the caret's
// screen column across vertical motion; nil means "not set, recompute from
// the current position".
type Selection struct {
	Start CharOffset
	End   CharOffset
	Horiz *int
}

// NewCaret creates a zero-width selection at offset.
func NewCaret(offset CharOffset) Selection {
	return Selection{Start: offset, End: offset}
}

// NewSelection creates a selection from start to end.
func NewSelection(start, end CharOffset) Selection {
	return Selection{Start: start, End: end}
}

// Left returns min(start, end).
func (s Selection) Left() CharOffset {
	if s.Start < s.End {
		return s.Start
	}
	return s.End
}

// Right returns max(start, end).
func (s Selection) Right() CharOffset {
	if s.Start > s.End {
		return s.Start
	}
	return s.End
}

// Range returns the normalized (left, right) range.
func (s Selection) Range() Range {
	return Range{Start: s.Left(), End: s.Right()}
}

// IsCaret returns true if start == end.
func (s Selection) IsCaret() bool {
	return s.Start == s.End
}

// Cursor returns the active/moving side of the selection: end.
func (s Selection) Cursor() CharOffset {
	return s.End
}

// WithHoriz returns a copy of s with the remembered column set.
func (s Selection) WithHoriz(col int) Selection {
	s.Horiz = &col
	return s
}

// ClearHoriz returns a copy of s with no remembered column.
func (s Selection) ClearHoriz() Selection {
	s.Horiz = nil
	return s
}

// MoveTo collapses the selection to a caret at offset, clearing horiz.
func (s Selection) MoveTo(offset CharOffset) Selection {
	return Selection{Start: offset, End: offset}
}

// Extend moves only the cursor side, leaving the anchor (start) fixed.
// Used by the "_and_modify_selection" operation family.
func (s Selection) Extend(offset CharOffset) Selection {
	return Selection{Start: s.Start, End: offset}
}

// Clamp bounds both sides of the selection to [0, maxChars].
func (s Selection) Clamp(maxChars CharOffset) Selection {
	clamp := func(c CharOffset) CharOffset {
		if c < 0 {
			return 0
		}
		if c > maxChars {
			return maxChars
		}
		return c
	}
	return Selection{Start: clamp(s.Start), End: clamp(s.End), Horiz: s.Horiz}
}

func (s Selection) String() string {
	if s.IsCaret() {
		return fmt.Sprintf("Caret(%d)", s.End)
	}
	return fmt.Sprintf("Selection(%d..%d)", s.Start, s.End)
}

// Equals reports whether two selections have the same start and end.
// Horiz is not compared: it is a motion hint, not part of identity.
func (s Selection) Equals(other Selection) bool {
	return s.Start == other.Start && s.End == other.End
}
