package buffer

import "testing"

func TestMoveWordRightSkipsWhitespaceThenRun(t *testing.T) {
	b := NewBufferFromString("  foo bar+baz")
	view := b.NewView()
	caretAt(b, view, 0)

	if err := b.MoveWordRight(view); err != nil {
		t.Fatalf("MoveWordRight: %v", err)
	}
	if got, want := primaryCursor(b, view), len("  foo"); got != want {
		t.Errorf("first MoveWordRight cursor = %d, want %d", got, want)
	}

	if err := b.MoveWordRight(view); err != nil {
		t.Fatalf("MoveWordRight: %v", err)
	}
	if got, want := primaryCursor(b, view), len("  foo bar"); got != want {
		t.Errorf("second MoveWordRight cursor = %d, want %d", got, want)
	}

	// "+" is a symbol run distinct from the following letters.
	if err := b.MoveWordRight(view); err != nil {
		t.Fatalf("MoveWordRight: %v", err)
	}
	if got, want := primaryCursor(b, view), len("  foo bar+"); got != want {
		t.Errorf("third MoveWordRight cursor = %d, want %d", got, want)
	}
}

func TestMoveWordLeftMirrorsRight(t *testing.T) {
	text := "  foo bar+baz"
	b := NewBufferFromString(text)
	view := b.NewView()
	caretAt(b, view, len(text))

	if err := b.MoveWordLeft(view); err != nil {
		t.Fatalf("MoveWordLeft: %v", err)
	}
	if got, want := primaryCursor(b, view), len("  foo bar+"); got != want {
		t.Errorf("MoveWordLeft cursor = %d, want %d", got, want)
	}

	// "+" is its own single-char symbol run.
	if err := b.MoveWordLeft(view); err != nil {
		t.Fatalf("MoveWordLeft: %v", err)
	}
	if got, want := primaryCursor(b, view), len("  foo bar"); got != want {
		t.Errorf("MoveWordLeft cursor = %d, want %d", got, want)
	}

	if err := b.MoveWordLeft(view); err != nil {
		t.Fatalf("MoveWordLeft: %v", err)
	}
	if got, want := primaryCursor(b, view), len("  foo "); got != want {
		t.Errorf("MoveWordLeft cursor = %d, want %d", got, want)
	}
}

func TestMoveWordRightAtDocumentEndStaysPut(t *testing.T) {
	b := NewBufferFromString("foo")
	view := b.NewView()
	caretAt(b, view, 3)

	if err := b.MoveWordRight(view); err != nil {
		t.Fatalf("MoveWordRight: %v", err)
	}
	if got, want := primaryCursor(b, view), 3; got != want {
		t.Errorf("MoveWordRight at end cursor = %d, want %d", got, want)
	}
}

func TestMoveWordRightAndModifySelectionExtendsOnly(t *testing.T) {
	b := NewBufferFromString("foo bar")
	view := b.NewView()
	caretAt(b, view, 0)

	if err := b.MoveWordRightAndModifySelection(view); err != nil {
		t.Fatalf("MoveWordRightAndModifySelection: %v", err)
	}
	sel := b.Selections(view).Primary()
	if sel.Left() != 0 || sel.Right() != 3 {
		t.Errorf("selection = %v, want [0,3)", sel)
	}
}
