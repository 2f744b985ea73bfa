package buffer

import (
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/rope"
)

// Undo moves history back one change-group, replacing the rope and the
// editing view's selections with the recorded "before" state, invalidating
// the syntax tree entirely (a fresh parse is cheaper than reconstructing
// incremental edits across many undone micro-changes).
func (b *Buffer) Undo(view ViewID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, sels, err := b.hist.Undo()
	if err != nil {
		return err
	}
	b.applyHistoryState(view, r, sels)
	return nil
}

// Redo moves history forward one change-group.
func (b *Buffer) Redo(view ViewID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, sels, err := b.hist.Redo()
	if err != nil {
		return err
	}
	b.applyHistoryState(view, r, sels)
	return nil
}

// applyHistoryState installs a rope/selections pair recovered from the
// history stack onto the editing view, invalidating the syntax tree so the
// next highlight pass reparses from scratch. Caller must hold b.mu.
func (b *Buffer) applyHistoryState(view ViewID, r rope.Rope, sels []cursor.Selection) {
	b.rope = r
	b.revisionID = NewRevisionID()

	if set, ok := b.views[view]; ok {
		set.Replace(sels)
		set.ClampAll(b.rope.LenChars())
	}

	b.layer.UnsetTree()
	b.layer.UpdateHighlights(b.rope)
}

// CanUndo reports whether Undo would succeed.
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.hist.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.hist.CanRedo()
}

// BeginUndoGroup starts coalescing subsequent edits into one undo step.
func (b *Buffer) BeginUndoGroup() {
	b.hist.BeginGroup()
}

// EndUndoGroup stops coalescing.
func (b *Buffer) EndUndoGroup() {
	b.hist.EndGroup()
}
