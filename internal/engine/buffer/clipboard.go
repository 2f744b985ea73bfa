package buffer

import (
	"strings"

	"github.com/dshills/scribe/internal/engine/cursor"
)

// Copy returns the concatenation of every non-caret selection's text,
// separated by '\n', or ok=false if every selection is a caret.
func (b *Buffer) Copy(view ViewID) (text string, ok bool, err error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	set, exists := b.views[view]
	if !exists {
		return "", false, ErrViewNotFound
	}
	return b.joinSelectionText(set), b.hasNonCaretSelection(set), nil
}

// Cut behaves like Copy, then removes every non-caret selection's text,
// recording one history change-group.
func (b *Buffer) Cut(view ViewID) (text string, ok bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, exists := b.views[view]
	if !exists {
		return "", false, ErrViewNotFound
	}

	text = b.joinSelectionText(set)
	ok = b.hasNonCaretSelection(set)
	if !ok {
		return "", false, nil
	}

	before := cloneSelections(set.Sels)

	order := sortedIndices(set.Sels)
	for _, i := range order {
		sel := set.Sels[i]
		r := sel.Range()
		if r.Start != r.End {
			b.remove(r.Start, r.End)
		}
	}

	set.ClearHoriz()
	set.Sort()

	after := cloneSelections(set.Sels)
	b.hist.Push(b.rope, before, after)
	b.layer.UpdateHighlights(b.rope)

	return text, true, nil
}

// joinSelectionText concatenates every non-caret selection's text,
// separated by '\n'. Caller must hold at least b.mu.RLock().
func (b *Buffer) joinSelectionText(set *cursor.Set) string {
	var parts []string
	for _, sel := range set.Sels {
		if sel.IsCaret() {
			continue
		}
		parts = append(parts, b.rope.SliceChars(sel.Left(), sel.Right()))
	}
	return strings.Join(parts, "\n")
}

// hasNonCaretSelection reports whether set contains at least one non-caret
// selection. Caller must hold at least b.mu.RLock().
func (b *Buffer) hasNonCaretSelection(set *cursor.Set) bool {
	for _, sel := range set.Sels {
		if !sel.IsCaret() {
			return true
		}
	}
	return false
}
