package buffer

import (
	"testing"

	"github.com/dshills/scribe/internal/engine/cursor"
)

func caretAt(b *Buffer, view ViewID, offset int) {
	b.SetSelections(view, cursor.NewSet(cursor.CharOffset(offset)))
}

func primaryCursor(b *Buffer, view ViewID) int {
	return int(b.Selections(view).Primary().Cursor())
}

// Scenario 1 from the motion walkthrough: starting from an empty buffer,
// insert "abc\ndef", move left, move up, insert "_" -> "ab_c\ndef".
func TestMotionWalkthroughScenario(t *testing.T) {
	b := NewBuffer()
	view := b.NewView()

	if err := b.Insert(view, "abc\ndef"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := b.MoveLeft(view); err != nil {
		t.Fatalf("MoveLeft: %v", err)
	}
	if err := b.MoveUp(view); err != nil {
		t.Fatalf("MoveUp: %v", err)
	}
	if err := b.Insert(view, "_"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if got, want := b.Text(), "ab_c\ndef"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

// Scenario 2 from the motion walkthrough: empty buffer, insert "\tabc",
// newline, eight spaces, move up, insert "_", tab_size=8. The caret lands
// right after the tab (which alone fills the whole 8-column tab stop), so
// "_" is inserted between the tab and "abc".
func TestMotionWalkthroughScenario2TabInsertion(t *testing.T) {
	b := NewBuffer(WithTabWidth(8))
	view := b.NewView()

	if err := b.Insert(view, "\tabc"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := b.InsertNewline(view); err != nil {
		t.Fatalf("InsertNewline: %v", err)
	}
	if err := b.Insert(view, "        "); err != nil { // eight spaces
		t.Fatalf("Insert spaces: %v", err)
	}
	if err := b.MoveUp(view); err != nil {
		t.Fatalf("MoveUp: %v", err)
	}
	if err := b.Insert(view, "_"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if got, want := b.Text(), "\t_abc\n        "; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

// Scenario 4 from the motion walkthrough: insert "abc", extend the caret
// left twice (selecting "bc"), then insert "de" replacing the selection.
func TestMotionWalkthroughScenario4ExtendAndReplace(t *testing.T) {
	b := NewBuffer()
	view := b.NewView()

	if err := b.Insert(view, "abc"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := b.MoveLeftAndModifySelection(view); err != nil {
		t.Fatalf("MoveLeftAndModifySelection: %v", err)
	}
	if err := b.MoveLeftAndModifySelection(view); err != nil {
		t.Fatalf("MoveLeftAndModifySelection: %v", err)
	}

	sel := b.Selections(view).Primary()
	if sel.Left() != 1 || sel.Right() != 3 {
		t.Fatalf("selection after two extends = [%d,%d), want [1,3)", sel.Left(), sel.Right())
	}

	if err := b.Insert(view, "de"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if got, want := b.Text(), "ade"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestMoveUpDownPreservesVisualColumn(t *testing.T) {
	b := NewBufferFromString("abcdef\nab\nabcdef", WithTabWidth(8))
	view := b.NewView()

	caretAt(b, view, 4) // line 0, column 4 ("abcd|ef")

	if err := b.MoveDown(view); err != nil {
		t.Fatalf("MoveDown: %v", err)
	}
	// line 1 ("ab") has only 2 chars: caret clamps to its end.
	if got, want := primaryCursor(b, view), 9; got != want {
		t.Errorf("after MoveDown onto short line, cursor = %d, want %d", got, want)
	}

	if err := b.MoveDown(view); err != nil {
		t.Fatalf("MoveDown: %v", err)
	}
	// line 2 ("abcdef") should restore the remembered column 4.
	if got, want := primaryCursor(b, view), 14; got != want {
		t.Errorf("after MoveDown restoring column, cursor = %d, want %d", got, want)
	}
}

func TestMoveVerticalWithTabsExpandsColumn(t *testing.T) {
	// Line 0 is a single tab (visual columns 0-8), caret after it is visual
	// column 8. Line 1 is 8 plain chars; moving down should land at char 8.
	b := NewBufferFromString("\t\nabcdefgh", WithTabWidth(8))
	view := b.NewView()

	caretAt(b, view, 1) // right after the tab on line 0

	if err := b.MoveDown(view); err != nil {
		t.Fatalf("MoveDown: %v", err)
	}
	if got, want := primaryCursor(b, view), 2+8; got != want {
		t.Errorf("cursor after MoveDown over tab = %d, want %d", got, want)
	}
}

func TestMoveUpAndModifySelectionSetsHoriz(t *testing.T) {
	b := NewBufferFromString("abcdef\nabcdef")
	view := b.NewView()
	caretAt(b, view, 9) // line 1, column 2

	if err := b.MoveUpAndModifySelection(view); err != nil {
		t.Fatalf("MoveUpAndModifySelection: %v", err)
	}

	sel := b.Selections(view).Primary()
	if sel.IsCaret() {
		t.Fatal("expected a non-caret selection after extending")
	}
	if sel.Horiz == nil || *sel.Horiz != 2 {
		t.Errorf("selection horiz = %v, want 2", sel.Horiz)
	}
}

func TestMoveLeftRightCollapsesNonCaretSelection(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()
	b.SetSelections(view, cursor.NewSet(0))
	set := b.Selections(view)
	set.Replace([]cursor.Selection{cursor.NewSelection(2, 7)})

	if err := b.MoveLeft(view); err != nil {
		t.Fatalf("MoveLeft: %v", err)
	}
	if got, want := primaryCursor(b, view), 2; got != want {
		t.Errorf("MoveLeft on range collapses to left edge = %d, want %d", got, want)
	}

	set.Replace([]cursor.Selection{cursor.NewSelection(2, 7)})
	if err := b.MoveRight(view); err != nil {
		t.Fatalf("MoveRight: %v", err)
	}
	if got, want := primaryCursor(b, view), 7; got != want {
		t.Errorf("MoveRight on range collapses to right edge = %d, want %d", got, want)
	}
}

func TestMoveToLineEndHome(t *testing.T) {
	b := NewBufferFromString("hello\nworld")
	view := b.NewView()
	caretAt(b, view, 8) // "wo|rld"

	if err := b.MoveToLeftEndOfLine(view); err != nil {
		t.Fatalf("MoveToLeftEndOfLine: %v", err)
	}
	if got, want := primaryCursor(b, view), 6; got != want {
		t.Errorf("MoveToLeftEndOfLine cursor = %d, want %d", got, want)
	}

	if err := b.MoveToRightEndOfLine(view); err != nil {
		t.Fatalf("MoveToRightEndOfLine: %v", err)
	}
	if got, want := primaryCursor(b, view), 11; got != want {
		t.Errorf("MoveToRightEndOfLine cursor = %d, want %d", got, want)
	}
}

func TestMoveToDocumentEdges(t *testing.T) {
	b := NewBufferFromString("hello\nworld")
	view := b.NewView()
	caretAt(b, view, 3)

	if err := b.MoveToEndOfDocument(view); err != nil {
		t.Fatalf("MoveToEndOfDocument: %v", err)
	}
	if got, want := primaryCursor(b, view), len("hello\nworld"); got != want {
		t.Errorf("MoveToEndOfDocument cursor = %d, want %d", got, want)
	}
	if got := b.Selections(view); len(got.Sels) != 1 {
		t.Errorf("MoveToEndOfDocument should collapse to one caret, got %d", len(got.Sels))
	}

	if err := b.MoveToBeginningOfDocument(view); err != nil {
		t.Fatalf("MoveToBeginningOfDocument: %v", err)
	}
	if got, want := primaryCursor(b, view), 0; got != want {
		t.Errorf("MoveToBeginningOfDocument cursor = %d, want %d", got, want)
	}
}

func TestSelectAll(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()

	if err := b.SelectAll(view); err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	sel := b.Selections(view).Primary()
	if sel.Left() != 0 || sel.Right() != cursor.CharOffset(len("hello world")) {
		t.Errorf("SelectAll selection = %v, want whole document", sel)
	}
}

func TestPageDownMultipleLines(t *testing.T) {
	b := NewBufferFromString("a\nb\nc\nd\ne")
	view := b.NewView()
	caretAt(b, view, 0)

	if err := b.PageDown(view, 2); err != nil {
		t.Fatalf("PageDown: %v", err)
	}
	if got, want := primaryCursor(b, view), 4; got != want { // line 2 ("c"), offset 4
		t.Errorf("PageDown(2) cursor = %d, want %d", got, want)
	}
}

func TestMoveUnknownViewFails(t *testing.T) {
	b := NewBufferFromString("abc")
	if err := b.MoveLeft(999); err != ErrViewNotFound {
		t.Errorf("MoveLeft on unknown view: got %v, want ErrViewNotFound", err)
	}
}
