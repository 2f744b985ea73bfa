package buffer

import (
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/grapheme"
	"github.com/dshills/scribe/internal/engine/rope"
	"github.com/dshills/scribe/internal/syntax"
)

// pointAt computes the (byte, line, code-point column) triple for a char
// offset, the form the syntax layer's incremental edit API requires.
func pointAt(r rope.Rope, c rope.CharOffset) syntax.Point {
	byteOff := r.CharToByte(c)
	line := r.CharToLine(c)
	lineStart := r.LineToChar(line)
	return syntax.Point{
		Byte:   byteOff,
		Line:   line,
		Column: uint32(c - lineStart),
	}
}

// remove deletes the char range [start, end) from the rope, informs the
// syntax layer, rewrites every view's selections, and clears the pristine
// flag. A no-op on an empty range. Caller must hold b.mu.
func (b *Buffer) remove(start, end rope.CharOffset) {
	if start >= end {
		return
	}

	startPt := pointAt(b.rope, start)
	oldEndPt := pointAt(b.rope, end)

	b.rope = b.rope.DeleteChars(start, end)
	b.revisionID = NewRevisionID()
	b.pristine = false

	newEndPt := startPt
	b.layer.EditTree(startPt, oldEndPt, newEndPt)

	cursor.TransformSetRemove(b.allSets(), start, end)
}

// insertAt normalizes text to the buffer's line-ending policy, inserts it at
// the given char index, informs the syntax layer, rewrites every view's
// selections, and clears the pristine flag.
func (b *Buffer) insertAt(at rope.CharOffset, text string) {
	text = b.normalizeLineEndings(text)
	if text == "" {
		return
	}

	startPt := pointAt(b.rope, at)
	n := rope.CharOffset(runeCount(text))

	b.rope = b.rope.InsertChars(at, text)
	b.revisionID = NewRevisionID()
	b.pristine = false

	newEndPt := pointAt(b.rope, at+n)
	b.layer.EditTree(startPt, startPt, newEndPt)

	cursor.TransformSetInsert(b.allSets(), at, n)
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Insert applies text at every selection of view, replacing each selection's
// range (a caret is a zero-width range). Per the editing model, every
// selection is first removed, then the replacement text is inserted at each
// resulting caret; this is recorded as one history change-group.
func (b *Buffer) Insert(view ViewID, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	before := cloneSelections(set.Sels)

	// Removing ranges left-to-right would invalidate the char offsets of
	// selections to its right; instead process right-to-left so earlier
	// (lower-offset) selections are unaffected by later removals, then let
	// TransformSetRemove inside remove() fix up everything else including
	// same-set siblings.
	order := sortedIndices(set.Sels)
	for _, i := range order {
		sel := set.Sels[i]
		r := sel.Range()
		if r.Start != r.End {
			b.remove(r.Start, r.End)
		}
	}

	for _, i := range order {
		sel := set.Sels[i]
		b.insertAt(sel.Cursor(), text)
	}

	set.ClearHoriz()
	set.Sort()

	after := cloneSelections(set.Sels)
	b.hist.Push(b.rope, before, after)
	b.layer.UpdateHighlights(b.rope)

	return nil
}

// InsertNewline inserts the buffer's configured line terminator.
func (b *Buffer) InsertNewline(view ViewID) error {
	return b.Insert(view, "\n")
}

// InsertTab inserts either a literal tab or the configured number of spaces,
// per the buffer's tab mode.
func (b *Buffer) InsertTab(view ViewID) error {
	if b.tabModeSnapshot() == TabModeTabs {
		return b.Insert(view, "\t")
	}
	spaces := make([]byte, b.tabWidthSnapshot())
	for i := range spaces {
		spaces[i] = ' '
	}
	return b.Insert(view, string(spaces))
}

func (b *Buffer) tabModeSnapshot() TabMode {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabMode
}

func (b *Buffer) tabWidthSnapshot() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// DeleteForward deletes, per selection: the grapheme to the right of a
// caret, or the whole selection range if non-caret.
func (b *Buffer) DeleteForward(view ViewID) error {
	return b.deleteDirectional(view, true)
}

// DeleteBackward deletes, per selection: the grapheme to the left of a
// caret, or the whole selection range if non-caret.
func (b *Buffer) DeleteBackward(view ViewID) error {
	return b.deleteDirectional(view, false)
}

func (b *Buffer) deleteDirectional(view ViewID, forward bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	before := cloneSelections(set.Sels)

	order := sortedIndices(set.Sels)
	for _, i := range order {
		sel := set.Sels[i]
		if sel.IsCaret() {
			c := sel.Cursor()
			if forward {
				end := grapheme.NextBoundary(b.rope, c)
				if end > c {
					b.remove(c, end)
				}
			} else {
				start := grapheme.PrevBoundary(b.rope, c)
				if start < c {
					b.remove(start, c)
				}
			}
		} else {
			r := sel.Range()
			b.remove(r.Start, r.End)
		}
	}

	set.ClampAll(b.rope.LenChars())
	set.ClearHoriz()
	set.Sort()

	after := cloneSelections(set.Sels)
	b.hist.Push(b.rope, before, after)
	b.layer.UpdateHighlights(b.rope)

	return nil
}

// sortedIndices returns the indices of sels ordered by Start, descending,
// so processing in that order never invalidates a later index's offsets
// within the same pass.
func sortedIndices(sels []cursor.Selection) []int {
	idx := make([]int, len(sels))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && sels[idx[j]].Start > sels[idx[j-1]].Start; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx
}

func cloneSelections(sels []cursor.Selection) []cursor.Selection {
	out := make([]cursor.Selection, len(sels))
	copy(out, sels)
	return out
}
