package buffer

import (
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/grapheme"
	"github.com/dshills/scribe/internal/engine/rope"
)

// wordBoundaryRight walks forward from c one grapheme cluster at a time:
// skip initial whitespace, then consume one contiguous run of the first
// non-whitespace cluster's class, stopping at a cluster of a different
// class. Returns the char index of the stop point.
func wordBoundaryRight(r rope.Rope, c rope.CharOffset) rope.CharOffset {
	total := r.LenChars()

	for c < total {
		next := grapheme.NextBoundary(r, c)
		if classifyCluster(r, c, next) != cursor.ClassWhitespace {
			break
		}
		c = next
	}
	if c >= total {
		return total
	}

	first := grapheme.NextBoundary(r, c)
	class := classifyCluster(r, c, first)
	c = first

	for c < total {
		next := grapheme.NextBoundary(r, c)
		if classifyCluster(r, c, next) != class {
			break
		}
		c = next
	}
	return c
}

// wordBoundaryLeft is the mirror of wordBoundaryRight, walking backward.
func wordBoundaryLeft(r rope.Rope, c rope.CharOffset) rope.CharOffset {
	for c > 0 {
		prev := grapheme.PrevBoundary(r, c)
		if classifyCluster(r, prev, c) != cursor.ClassWhitespace {
			break
		}
		c = prev
	}
	if c <= 0 {
		return 0
	}

	first := grapheme.PrevBoundary(r, c)
	class := classifyCluster(r, first, c)
	c = first

	for c > 0 {
		prev := grapheme.PrevBoundary(r, c)
		if classifyCluster(r, prev, c) != class {
			break
		}
		c = prev
	}
	return c
}

// classifyCluster classifies the grapheme cluster [start, end) by its
// leading rune.
func classifyCluster(r rope.Rope, start, end rope.CharOffset) cursor.WordClass {
	text := r.SliceChars(start, end)
	for _, ru := range text {
		return cursor.ClassifyRune(ru)
	}
	return cursor.ClassWhitespace
}

// MoveWordLeft moves every caret to the word boundary left of its current
// position.
func (b *Buffer) MoveWordLeft(view ViewID) error { return b.moveWordAll(view, false, false) }

// MoveWordRight moves every caret to the word boundary right of its current
// position.
func (b *Buffer) MoveWordRight(view ViewID) error { return b.moveWordAll(view, true, false) }

// MoveWordLeftAndModifySelection extends every selection's cursor side to
// the word boundary on its left.
func (b *Buffer) MoveWordLeftAndModifySelection(view ViewID) error {
	return b.moveWordAll(view, false, true)
}

// MoveWordRightAndModifySelection extends every selection's cursor side to
// the word boundary on its right.
func (b *Buffer) MoveWordRightAndModifySelection(view ViewID) error {
	return b.moveWordAll(view, true, true)
}

func (b *Buffer) moveWordAll(view ViewID, right, modify bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	for i, sel := range set.Sels {
		var target rope.CharOffset
		if right {
			target = wordBoundaryRight(b.rope, sel.Cursor())
		} else {
			target = wordBoundaryLeft(b.rope, sel.Cursor())
		}
		if modify {
			sel = sel.Extend(target)
		} else {
			sel = sel.MoveTo(target)
		}
		set.Sels[i] = sel.ClearHoriz()
	}
	set.Sort()
	return nil
}
