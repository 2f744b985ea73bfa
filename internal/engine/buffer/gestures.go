package buffer

import (
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/rope"
)

// charAt converts a (line, byte) pointer position, as gestures report it,
// to a char offset, clamping to the document bounds.
func (b *Buffer) charAt(line uint32, byteCol uint32) rope.CharOffset {
	lineStart := b.rope.LineStartOffset(line)
	byteOff := lineStart + rope.ByteOffset(byteCol)
	if max := b.rope.Len(); byteOff > max {
		byteOff = max
	}
	return b.rope.ByteToChar(byteOff)
}

// GesturePointSelect sets the view to a single caret at (line, byteCol) and
// arms a point-mode drag anchored there.
func (b *Buffer) GesturePointSelect(view ViewID, line uint32, byteCol uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	c := b.charAt(line, byteCol)
	anchor := cursor.NewCaret(c)
	set.Replace([]cursor.Selection{anchor})
	set.Drag = &cursor.DragState{Anchor: anchor, Mode: cursor.DragPoint, Index: 0}
	return nil
}

// GestureRangeSelect (shift-click) sets a single selection from the minimum
// of the existing starts to the clicked position.
func (b *Buffer) GestureRangeSelect(view ViewID, line uint32, byteCol uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	anchor := set.Sels[0].Start
	for _, sel := range set.Sels[1:] {
		if sel.Start < anchor {
			anchor = sel.Start
		}
	}

	c := b.charAt(line, byteCol)
	set.Replace([]cursor.Selection{cursor.NewSelection(anchor, c)})
	return nil
}

// GestureToggleSel (ctrl-click) removes a selection that starts at, or
// immediately ends at, the clicked position; otherwise it inserts a new
// caret there.
func (b *Buffer) GestureToggleSel(view ViewID, line uint32, byteCol uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	c := b.charAt(line, byteCol)

	for i, sel := range set.Sels {
		if sel.Start == c {
			set.Remove(i)
			return nil
		}
	}
	for i, sel := range set.Sels {
		if sel.Right() == c {
			set.Remove(i)
			return nil
		}
	}

	set.Insert(cursor.NewCaret(c))
	return nil
}

// GestureWordSelect (double click) selects the run of the dominant
// grapheme class surrounding the clicked position and arms a word-mode
// drag.
func (b *Buffer) GestureWordSelect(view ViewID, line uint32, byteCol uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	c := b.charAt(line, byteCol)
	start, end := b.wordRunAround(c)

	sel := cursor.NewSelection(start, end)
	set.Replace([]cursor.Selection{sel})
	set.Drag = &cursor.DragState{Anchor: sel, Mode: cursor.DragWord, Index: 0}
	return nil
}

// wordRunAround returns the [start, end) run a word gesture at c selects.
// end is wordBoundaryRight(c): any whitespace at c is skipped and the run
// after it is taken. start is the beginning of that run, or c itself when
// the run begins after c. At the document end the run before c is used.
// The classes of the clusters on either side of c are not compared, so at
// the boundary between a word and a following space the result is the
// space plus the next run, not the word.
func (b *Buffer) wordRunAround(c rope.CharOffset) (rope.CharOffset, rope.CharOffset) {
	start := wordBoundaryLeft(b.rope, wordBoundaryRight(b.rope, leftNeighbor(b.rope, c)))
	end := wordBoundaryRight(b.rope, c)
	if start > c {
		start = c
	}
	return start, end
}

// leftNeighbor returns c, or c-1 if c sits at the document end, so a click
// past the last character still has a cluster to classify.
func leftNeighbor(r rope.Rope, c rope.CharOffset) rope.CharOffset {
	if c >= r.LenChars() && c > 0 {
		return c - 1
	}
	return c
}

// GestureLineSelect (triple click) selects the clicked line including its
// terminator and arms a line-mode drag.
func (b *Buffer) GestureLineSelect(view ViewID, line uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	start := b.rope.LineToChar(line)
	var end rope.CharOffset
	if line+1 < b.rope.LineCount() {
		end = b.rope.LineToChar(line + 1)
	} else {
		end = b.rope.LenChars()
	}

	sel := cursor.NewSelection(start, end)
	set.Replace([]cursor.Selection{sel})
	set.Drag = &cursor.DragState{Anchor: sel, Mode: cursor.DragLine, Index: 0}
	return nil
}

// DragUpdate advances the armed drag to the new pointer position.
func (b *Buffer) DragUpdate(view ViewID, line uint32, byteCol uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}
	drag := set.Drag
	if drag == nil || drag.Index >= len(set.Sels) {
		return nil
	}

	c := b.charAt(line, byteCol)
	anchor := drag.Anchor

	var sel cursor.Selection
	switch drag.Mode {
	case cursor.DragPoint:
		sel = anchor.Extend(c)

	case cursor.DragWord:
		wordStart, wordEnd := b.wordRunAround(anchor.Cursor())
		switch {
		case c > wordEnd:
			sel = cursor.NewSelection(wordStart, wordBoundaryRight(b.rope, c))
		case c < wordStart:
			sel = cursor.NewSelection(wordEnd, wordBoundaryLeft(b.rope, c))
		default:
			sel = anchor
		}

	case cursor.DragLine:
		lineStart, lineEnd := anchor.Left(), anchor.Right()
		clickLine := b.rope.CharToLine(c)
		lineEndOfClick := b.charAt(clickLine+1, 0)
		switch {
		case c > lineEnd:
			sel = cursor.NewSelection(lineStart, lineEndOfClick)
		case c < lineStart:
			sel = cursor.NewSelection(lineEnd, b.rope.LineToChar(clickLine))
		default:
			sel = anchor
		}
	}

	set.Sels[drag.Index] = sel
	return nil
}

// DragEnd clears the view's drag state. Publishing the selected text to an
// OS primary-selection clipboard is a host responsibility; the core only
// returns the text the host would publish.
func (b *Buffer) DragEnd(view ViewID) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return "", ErrViewNotFound
	}
	if set.Drag == nil {
		return "", nil
	}
	sel := set.Sels[set.Drag.Index]
	set.Drag = nil

	if sel.IsCaret() {
		return "", nil
	}
	return b.rope.SliceChars(sel.Left(), sel.Right()), nil
}
