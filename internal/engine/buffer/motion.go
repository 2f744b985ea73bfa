package buffer

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/grapheme"
	"github.com/dshills/scribe/internal/engine/rope"
)

// lineEndChar returns the char offset one past the last char of line,
// excluding its terminator (the same boundary LineEndOffset uses in bytes).
func lineEndChar(r rope.Rope, line uint32) rope.CharOffset {
	lineCount := r.LineCount()
	if line+1 >= lineCount {
		return r.LenChars()
	}
	return r.LineToChar(line+1) - 1
}

// visualColumn computes the visual column of char offset target on its
// line: one cell per grapheme cluster, tabs expanded to the next multiple
// of tabWidth (never less than 1).
func visualColumn(r rope.Rope, target rope.CharOffset, tabWidth int) int {
	line := r.CharToLine(target)
	lineStart := r.LineToChar(line)
	text := r.SliceChars(lineStart, target)

	col := 0
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.StepString(text, state)
		if cluster == "\t" {
			col = nextTabStop(col, tabWidth)
			continue
		}
		col++
	}
	return col
}

func nextTabStop(col, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	return col + (tabWidth - col%tabWidth)
}

// moveVertical implements up/down per the horizontal-motion-preserving
// algorithm: compute or reuse the remembered visual column, walk the target
// line for the closest matching column, and return the new caret plus the
// horiz to remember.
func moveVertical(r rope.Rope, c rope.CharOffset, horiz *int, tabWidth int, down bool) (rope.CharOffset, int) {
	col := visualColumn(r, c, tabWidth)
	h := col
	if horiz != nil {
		h = *horiz
	}

	line := r.CharToLine(c)
	lineCount := r.LineCount()

	var target uint32
	if down {
		if line+1 >= lineCount {
			return r.LenChars(), h
		}
		target = line + 1
	} else {
		if line == 0 {
			return 0, h
		}
		target = line - 1
	}

	return charAtVisualColumn(r, target, h, tabWidth), h
}

// charAtVisualColumn walks line's graphemes accumulating visual columns
// and returns the char offset of whichever grapheme boundary lands closest
// to horiz, preferring the left (≤ horiz) candidate on a tie.
func charAtVisualColumn(r rope.Rope, line uint32, horiz, tabWidth int) rope.CharOffset {
	lineStart := r.LineToChar(line)
	lineEnd := lineEndChar(r, line)
	text := r.SliceChars(lineStart, lineEnd)

	col := 0
	charOff := lineStart
	leftChar, leftCol := lineStart, 0
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.StepString(text, state)
		n := rope.CharOffset(runeCount(cluster))

		nextCol := col + 1
		if cluster == "\t" {
			nextCol = nextTabStop(col, tabWidth)
		}

		if nextCol > horiz {
			rightChar := charOff + n
			if horiz-leftCol <= nextCol-horiz {
				return leftChar
			}
			return rightChar
		}

		leftChar = charOff + n
		leftCol = nextCol
		col = nextCol
		charOff += n
	}
	return leftChar
}

// MoveUp moves every caret up one visual line, preserving horiz.
func (b *Buffer) MoveUp(view ViewID) error { return b.moveVerticalAll(view, false, false) }

// MoveDown moves every caret down one visual line, preserving horiz.
func (b *Buffer) MoveDown(view ViewID) error { return b.moveVerticalAll(view, true, false) }

// MoveUpAndModifySelection extends every selection's cursor side up one
// visual line, leaving its anchor fixed.
func (b *Buffer) MoveUpAndModifySelection(view ViewID) error { return b.moveVerticalAll(view, false, true) }

// MoveDownAndModifySelection extends every selection's cursor side down one
// visual line, leaving its anchor fixed.
func (b *Buffer) MoveDownAndModifySelection(view ViewID) error { return b.moveVerticalAll(view, true, true) }

func (b *Buffer) moveVerticalAll(view ViewID, down, modify bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	tabWidth := b.tabWidth
	for i, sel := range set.Sels {
		newC, h := moveVertical(b.rope, sel.Cursor(), sel.Horiz, tabWidth, down)
		if modify {
			sel = sel.Extend(newC)
		} else {
			sel = sel.MoveTo(newC)
		}
		sel = sel.WithHoriz(h)
		set.Sels[i] = sel
	}
	set.Sort()
	return nil
}

// MoveLeft moves every caret left one grapheme cluster (or to its
// selection's left edge, if non-caret).
func (b *Buffer) MoveLeft(view ViewID) error { return b.moveHorizontalAll(view, false, false) }

// MoveRight moves every caret right one grapheme cluster (or to its
// selection's right edge, if non-caret).
func (b *Buffer) MoveRight(view ViewID) error { return b.moveHorizontalAll(view, true, false) }

// MoveLeftAndModifySelection extends every selection's cursor side left one
// grapheme cluster.
func (b *Buffer) MoveLeftAndModifySelection(view ViewID) error {
	return b.moveHorizontalAll(view, false, true)
}

// MoveRightAndModifySelection extends every selection's cursor side right
// one grapheme cluster.
func (b *Buffer) MoveRightAndModifySelection(view ViewID) error {
	return b.moveHorizontalAll(view, true, true)
}

func (b *Buffer) moveHorizontalAll(view ViewID, right, modify bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	for i, sel := range set.Sels {
		var newC rope.CharOffset
		if modify {
			if right {
				newC = grapheme.NextBoundary(b.rope, sel.Cursor())
			} else {
				newC = grapheme.PrevBoundary(b.rope, sel.Cursor())
			}
			sel = sel.Extend(newC).ClearHoriz()
		} else if sel.IsCaret() {
			if right {
				newC = grapheme.NextBoundary(b.rope, sel.Cursor())
			} else {
				newC = grapheme.PrevBoundary(b.rope, sel.Cursor())
			}
			sel = sel.MoveTo(newC)
		} else {
			if right {
				sel = sel.MoveTo(sel.Right())
			} else {
				sel = sel.MoveTo(sel.Left())
			}
		}
		set.Sels[i] = sel
	}
	set.Sort()
	return nil
}

// MoveToLeftEndOfLine moves every caret to the first char of its line.
func (b *Buffer) MoveToLeftEndOfLine(view ViewID) error { return b.moveToLineEnd(view, false, false) }

// MoveToRightEndOfLine moves every caret to the end of its line: the offset
// after its last char, where the newline sits (the document end on the
// last line).
func (b *Buffer) MoveToRightEndOfLine(view ViewID) error { return b.moveToLineEnd(view, true, false) }

// MoveToLeftEndOfLineAndModifySelection extends to the first char of the line.
func (b *Buffer) MoveToLeftEndOfLineAndModifySelection(view ViewID) error {
	return b.moveToLineEnd(view, false, true)
}

// MoveToRightEndOfLineAndModifySelection extends to the end of the line
// (the offset after its last char).
func (b *Buffer) MoveToRightEndOfLineAndModifySelection(view ViewID) error {
	return b.moveToLineEnd(view, true, true)
}

func (b *Buffer) moveToLineEnd(view ViewID, right, modify bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	for i, sel := range set.Sels {
		line := b.rope.CharToLine(sel.Cursor())
		var target rope.CharOffset
		if right {
			target = lineEndChar(b.rope, line)
		} else {
			target = b.rope.LineToChar(line)
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

// MoveToBeginningOfDocument moves every caret to char 0, collapsing the set
// to a single caret.
func (b *Buffer) MoveToBeginningOfDocument(view ViewID) error {
	return b.moveToDocumentEdge(view, false, false)
}

// MoveToEndOfDocument moves the caret to the document end (the offset after
// the last char), collapsing the set to a single caret.
func (b *Buffer) MoveToEndOfDocument(view ViewID) error {
	return b.moveToDocumentEdge(view, true, false)
}

// MoveToBeginningOfDocumentAndModifySelection extends the primary selection
// to char 0.
func (b *Buffer) MoveToBeginningOfDocumentAndModifySelection(view ViewID) error {
	return b.moveToDocumentEdge(view, false, true)
}

// MoveToEndOfDocumentAndModifySelection extends the primary selection to
// the document end (the offset after the last char).
func (b *Buffer) MoveToEndOfDocumentAndModifySelection(view ViewID) error {
	return b.moveToDocumentEdge(view, true, true)
}

func (b *Buffer) moveToDocumentEdge(view ViewID, end, modify bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	var target rope.CharOffset
	if end {
		target = b.rope.LenChars()
	}

	if modify {
		sel := set.Primary().Extend(target).ClearHoriz()
		set.Sels[len(set.Sels)-1] = sel
		set.Sort()
		return nil
	}

	set.Replace([]cursor.Selection{cursor.NewCaret(target)})
	return nil
}

// PageUp moves every caret up nLines visual lines, preserving horiz.
func (b *Buffer) PageUp(view ViewID, nLines int) error { return b.pageAll(view, nLines, false, false) }

// PageDown moves every caret down nLines visual lines, preserving horiz.
func (b *Buffer) PageDown(view ViewID, nLines int) error { return b.pageAll(view, nLines, true, false) }

// PageUpAndModifySelection extends upward nLines visual lines.
func (b *Buffer) PageUpAndModifySelection(view ViewID, nLines int) error {
	return b.pageAll(view, nLines, false, true)
}

// PageDownAndModifySelection extends downward nLines visual lines.
func (b *Buffer) PageDownAndModifySelection(view ViewID, nLines int) error {
	return b.pageAll(view, nLines, true, true)
}

func (b *Buffer) pageAll(view ViewID, nLines int, down, modify bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	tabWidth := b.tabWidth
	for i, sel := range set.Sels {
		c := sel.Cursor()
		h := sel.Horiz
		for n := 0; n < nLines; n++ {
			var newC rope.CharOffset
			newC, col := moveVertical(b.rope, c, h, tabWidth, down)
			if newC == c {
				h = &col
				break
			}
			c = newC
			h = &col
		}
		if modify {
			sel = sel.Extend(c)
		} else {
			sel = sel.MoveTo(c)
		}
		if h != nil {
			sel = sel.WithHoriz(*h)
		}
		set.Sels[i] = sel
	}
	set.Sort()
	return nil
}

// SelectAll replaces the view's selections with a single selection spanning
// the whole document, cursor at the end.
func (b *Buffer) SelectAll(view ViewID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.views[view]
	if !ok {
		return ErrViewNotFound
	}

	set.Replace([]cursor.Selection{cursor.NewSelection(0, b.rope.LenChars())})
	return nil
}
