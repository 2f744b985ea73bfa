package history

import (
	"testing"

	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/rope"
)

func TestNewHistoryStartsAtInitial(t *testing.T) {
	r := rope.FromString("abc")
	h := NewHistory(r, 0)
	if h.CanUndo() {
		t.Error("fresh history should not be able to undo")
	}
	if h.CanRedo() {
		t.Error("fresh history should not be able to redo")
	}
}

func TestPushUndoRedo(t *testing.T) {
	r0 := rope.FromString("")
	h := NewHistory(r0, 0)

	r1 := rope.FromString("a")
	before := []cursor.Selection{cursor.NewCaret(0)}
	after := []cursor.Selection{cursor.NewCaret(1)}
	h.Push(r1, before, after)

	if !h.CanUndo() {
		t.Fatal("should be able to undo after a push")
	}

	gotRope, gotSels, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if gotRope.String() != "" {
		t.Errorf("Undo rope = %q, want empty", gotRope.String())
	}
	if len(gotSels) != 1 || !gotSels[0].Equals(cursor.NewCaret(0)) {
		t.Errorf("Undo selections = %v, want caret at 0", gotSels)
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo after an undo")
	}

	gotRope, gotSels, err = h.Redo()
	if err != nil {
		t.Fatalf("Redo() error: %v", err)
	}
	if gotRope.String() != "a" {
		t.Errorf("Redo rope = %q, want %q", gotRope.String(), "a")
	}
	if len(gotSels) != 1 || !gotSels[0].Equals(cursor.NewCaret(1)) {
		t.Errorf("Redo selections = %v, want caret at 1", gotSels)
	}
}

func TestUndoPastStartFails(t *testing.T) {
	h := NewHistory(rope.FromString(""), 0)
	if _, _, err := h.Undo(); err != ErrNothingToUndo {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
}

func TestRedoPastEndFails(t *testing.T) {
	h := NewHistory(rope.FromString(""), 0)
	if _, _, err := h.Redo(); err != ErrNothingToRedo {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
}

func TestNewEditAfterUndoTruncatesRedo(t *testing.T) {
	h := NewHistory(rope.FromString(""), 0)
	h.Push(rope.FromString("a"), nil, nil)
	h.Push(rope.FromString("ab"), nil, nil)

	if _, _, err := h.Undo(); err != nil {
		t.Fatalf("Undo() error: %v", err)
	}
	if !h.CanRedo() {
		t.Fatal("expected redo available before divergent edit")
	}

	h.Push(rope.FromString("ax"), nil, nil)
	if h.CanRedo() {
		t.Error("pushing a new change after undo should discard the redo branch")
	}
}

func TestMaxEntriesTrims(t *testing.T) {
	h := NewHistory(rope.FromString(""), 2)
	h.Push(rope.FromString("a"), nil, nil)
	h.Push(rope.FromString("ab"), nil, nil)
	h.Push(rope.FromString("abc"), nil, nil)

	count := 0
	for h.CanUndo() {
		if _, _, err := h.Undo(); err != nil {
			t.Fatalf("Undo() error: %v", err)
		}
		count++
	}
	if count > 1 {
		t.Errorf("with maxEntries=2 expected at most 1 undo step retained, got %d", count)
	}
}
