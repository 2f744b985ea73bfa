package buffer

import (
	"testing"

	"github.com/dshills/scribe/internal/engine/cursor"
)

func TestGesturePointSelectArmsDrag(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()

	if err := b.GesturePointSelect(view, 0, 6); err != nil {
		t.Fatalf("GesturePointSelect: %v", err)
	}

	set := b.Selections(view)
	if len(set.Sels) != 1 || !set.Sels[0].IsCaret() || set.Sels[0].Cursor() != 6 {
		t.Errorf("selections = %v, want a single caret at 6", set.Sels)
	}
	if set.Drag == nil || set.Drag.Mode != cursor.DragPoint {
		t.Errorf("drag state = %v, want armed DragPoint", set.Drag)
	}
}

func TestGestureRangeSelectFromExistingAnchor(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()
	caretAt(b, view, 2)

	if err := b.GestureRangeSelect(view, 0, 7); err != nil {
		t.Fatalf("GestureRangeSelect: %v", err)
	}
	sel := b.Selections(view).Primary()
	if sel.Left() != 2 || sel.Right() != 7 {
		t.Errorf("selection = %v, want [2,7)", sel)
	}
}

func TestGestureToggleSelInsertsThenRemoves(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()
	caretAt(b, view, 0)

	if err := b.GestureToggleSel(view, 0, 6); err != nil {
		t.Fatalf("GestureToggleSel: %v", err)
	}
	set := b.Selections(view)
	if len(set.Sels) != 2 {
		t.Fatalf("expected two carets after ctrl-click, got %d", len(set.Sels))
	}

	if err := b.GestureToggleSel(view, 0, 6); err != nil {
		t.Fatalf("GestureToggleSel: %v", err)
	}
	set = b.Selections(view)
	if len(set.Sels) != 1 {
		t.Fatalf("expected ctrl-click to remove the caret it just added, got %d sels", len(set.Sels))
	}
}

// Scenario 5 from the motion walkthrough: insert "hello world", place the
// caret at index 5, ctrl-click at index 0 to add a second caret, then
// insert "," -> each caret receives the comma: ",hello, world".
func TestGestureToggleSelThenInsertReplicatesAcrossCarets(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()
	caretAt(b, view, 5)

	if err := b.GestureToggleSel(view, 0, 0); err != nil {
		t.Fatalf("GestureToggleSel: %v", err)
	}
	if got, want := len(b.Selections(view).Sels), 2; got != want {
		t.Fatalf("expected %d carets after ctrl-click, got %d", want, got)
	}

	if err := b.Insert(view, ","); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if got, want := b.Text(), ",hello, world"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestGestureWordSelectSelectsRun(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()

	if err := b.GestureWordSelect(view, 0, 2); err != nil {
		t.Fatalf("GestureWordSelect: %v", err)
	}
	sel := b.Selections(view).Primary()
	if sel.Left() != 0 || sel.Right() != 5 {
		t.Errorf("word selection = %v, want [0,5) (\"hello\")", sel)
	}
	set := b.Selections(view)
	if set.Drag == nil || set.Drag.Mode != cursor.DragWord {
		t.Errorf("drag state = %v, want armed DragWord", set.Drag)
	}
}

func TestGestureLineSelectIncludesTerminator(t *testing.T) {
	b := NewBufferFromString("foo\nbar\nbaz")
	view := b.NewView()

	if err := b.GestureLineSelect(view, 0); err != nil {
		t.Fatalf("GestureLineSelect: %v", err)
	}
	sel := b.Selections(view).Primary()
	if sel.Left() != 0 || sel.Right() != 4 {
		t.Errorf("line selection = %v, want [0,4) (\"foo\\n\")", sel)
	}
}

func TestDragUpdatePointExtendsFromAnchor(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()

	if err := b.GesturePointSelect(view, 0, 2); err != nil {
		t.Fatalf("GesturePointSelect: %v", err)
	}
	if err := b.DragUpdate(view, 0, 8); err != nil {
		t.Fatalf("DragUpdate: %v", err)
	}
	sel := b.Selections(view).Primary()
	if sel.Left() != 2 || sel.Right() != 8 {
		t.Errorf("dragged selection = %v, want [2,8)", sel)
	}
}

func TestDragEndReturnsSelectedTextAndClearsDrag(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()

	if err := b.GestureWordSelect(view, 0, 2); err != nil {
		t.Fatalf("GestureWordSelect: %v", err)
	}
	text, err := b.DragEnd(view)
	if err != nil {
		t.Fatalf("DragEnd: %v", err)
	}
	if text != "hello" {
		t.Errorf("DragEnd text = %q, want %q", text, "hello")
	}
	if b.Selections(view).Drag != nil {
		t.Error("DragEnd should clear the drag state")
	}
}

func TestDragEndOnCaretReturnsEmpty(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()

	if err := b.GesturePointSelect(view, 0, 2); err != nil {
		t.Fatalf("GesturePointSelect: %v", err)
	}
	text, err := b.DragEnd(view)
	if err != nil {
		t.Fatalf("DragEnd: %v", err)
	}
	if text != "" {
		t.Errorf("DragEnd on caret = %q, want empty", text)
	}
}
