package history

import (
	"errors"
	"sync"

	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/rope"
)

// Common errors for history navigation.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// changeGroup is one atomic unit of undoable history.
type changeGroup struct {
	rope             rope.Rope
	selectionsBefore []cursor.Selection
	selectionsAfter  []cursor.Selection
}

// History holds an ordered list of change-groups and an index into it.
// index == 0 is always the initial, pre-edit state.
type History struct {
	mu sync.Mutex

	groups []changeGroup
	index  int

	maxEntries int

	// Grouping state: while grouping, new-change calls accumulate edits
	// under one pending group's before-snapshot instead of each pushing
	// its own group.
	grouping      bool
	pendingBefore []cursor.Selection
	pendingSet    bool
}

// NewHistory creates a history seeded with the buffer's initial rope state.
// maxEntries bounds how many change-groups are retained; 0 or negative
// means unbounded.
func NewHistory(initial rope.Rope, maxEntries int) *History {
	return &History{
		groups:     []changeGroup{{rope: initial}},
		index:      0,
		maxEntries: maxEntries,
	}
}

// BeginGroup starts coalescing subsequent Push calls into a single change
// group, so a multi-selection edit records one undo step instead of one per
// selection. Nested calls are ignored.
func (h *History) BeginGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.grouping {
		return
	}
	h.grouping = true
	h.pendingSet = false
}

// EndGroup stops coalescing. Any edits pushed during the group remain
// pushed; EndGroup only affects Push's future batching decisions.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.grouping = false
	h.pendingSet = false
}

// Push records a new change-group: the rope state after the edit, and the
// selection vectors observed immediately before the first edit and
// immediately after the last edit of the group. Any redo-able groups beyond
// the current index are discarded first.
func (h *History) Push(newRope rope.Rope, before, after []cursor.Selection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping && h.pendingSet {
		// Extend the group already open at the tip: keep its recorded
		// "before" snapshot, replace the rope and "after" snapshot.
		h.groups[h.index].rope = newRope
		h.groups[h.index].selectionsAfter = cloneSelections(after)
		return
	}

	h.groups = h.groups[:h.index+1]
	h.groups = append(h.groups, changeGroup{
		rope:             newRope,
		selectionsBefore: cloneSelections(before),
		selectionsAfter:  cloneSelections(after),
	})
	h.index = len(h.groups) - 1
	if h.grouping {
		h.pendingSet = true
	}

	if h.maxEntries > 0 && len(h.groups) > h.maxEntries {
		excess := len(h.groups) - h.maxEntries
		h.groups = h.groups[excess:]
		h.index -= excess
	}
}

// Undo moves the index back one group. It returns the rope state at the new
// index and the selections that were recorded as "before" for the group
// that was current before this call.
func (h *History) Undo() (rope.Rope, []cursor.Selection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index <= 0 {
		return rope.Rope{}, nil, ErrNothingToUndo
	}

	selectionsBefore := h.groups[h.index].selectionsBefore
	h.index--
	return h.groups[h.index].rope, cloneSelections(selectionsBefore), nil
}

// Redo moves the index forward one group, returning the rope state and the
// selections recorded as "after" for that group.
func (h *History) Redo() (rope.Rope, []cursor.Selection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index >= len(h.groups)-1 {
		return rope.Rope{}, nil, ErrNothingToRedo
	}

	h.index++
	return h.groups[h.index].rope, cloneSelections(h.groups[h.index].selectionsAfter), nil
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.groups)-1
}

// UndoCount returns how many undo steps are available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// RedoCount returns how many redo steps are available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups) - 1 - h.index
}

// Clear resets history to a single initial group at the given rope state.
func (h *History) Clear(initial rope.Rope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.groups = []changeGroup{{rope: initial}}
	h.index = 0
	h.grouping = false
	h.pendingSet = false
}

// SetMaxEntries changes the retention bound, trimming from the oldest end
// if the current history already exceeds it.
func (h *History) SetMaxEntries(max int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.maxEntries = max
	if max > 0 && len(h.groups) > max {
		excess := len(h.groups) - max
		h.groups = h.groups[excess:]
		h.index -= excess
		if h.index < 0 {
			h.index = 0
		}
	}
}

// MaxEntries returns the current retention bound.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

func cloneSelections(sels []cursor.Selection) []cursor.Selection {
	if sels == nil {
		return nil
	}
	out := make([]cursor.Selection, len(sels))
	copy(out, sels)
	return out
}
