package cursor

import "sort"

// DragMode is the gesture that armed the current drag.
type DragMode int

const (
	DragPoint DragMode = iota
	DragWord
	DragLine
)

// DragState is the in-progress mouse drag for a view: the selection's
// initial anchor, the mode that armed it, and the index into the set's
// Sels slice of the selection being extended.
type DragState struct {
	Anchor Selection
	Mode   DragMode
	Index  int
}

// Set is the per-view collection of selections: a nonempty, sorted-by-start
// list, plus optional drag state. Overlapping selections are permitted to
// coexist after an edit; per the source behavior this type preserves, they
// are kept sorted but are never merged.
type Set struct {
	Sels []Selection
	Drag *DragState
}

// NewSet returns a set with a single caret at offset.
func NewSet(offset CharOffset) *Set {
	return &Set{Sels: []Selection{NewCaret(offset)}}
}

// Sort orders Sels by Start, ascending. It does not merge or deduplicate.
func (s *Set) Sort() {
	sort.Slice(s.Sels, func(i, j int) bool {
		return s.Sels[i].Start < s.Sels[j].Start
	})
}

// Primary returns the last selection in sorted order, conventionally the
// most-recently-added caret for single-caret operations like cut/copy of
// "the" selection.
func (s *Set) Primary() Selection {
	return s.Sels[len(s.Sels)-1]
}

// ClampAll clamps every selection to [0, maxChars], used after history
// navigation per the spec's recovery pass.
func (s *Set) ClampAll(maxChars CharOffset) {
	for i := range s.Sels {
		s.Sels[i] = s.Sels[i].Clamp(maxChars)
	}
}

// ClearHoriz clears the remembered column on every selection.
func (s *Set) ClearHoriz() {
	for i := range s.Sels {
		s.Sels[i] = s.Sels[i].ClearHoriz()
	}
}

// Replace swaps the set's selections wholesale (e.g. select-all, gesture
// point-select), clearing any drag state.
func (s *Set) Replace(sels []Selection) {
	s.Sels = sels
	s.Drag = nil
}

// IndexAt returns the index of a selection whose range contains or starts
// at offset, or -1 if none does. Used by the toggle-sel gesture.
func (s *Set) IndexAt(offset CharOffset) int {
	for i, sel := range s.Sels {
		if sel.Start == offset {
			return i
		}
		if offset >= sel.Left() && offset < sel.Right() {
			return i
		}
	}
	return -1
}

// Remove deletes the selection at index, keeping the set nonempty: removing
// the last remaining selection is a no-op.
func (s *Set) Remove(index int) {
	if len(s.Sels) <= 1 {
		return
	}
	s.Sels = append(s.Sels[:index], s.Sels[index+1:]...)
}

// Insert adds sel to the set in sorted position.
func (s *Set) Insert(sel Selection) {
	s.Sels = append(s.Sels, sel)
	s.Sort()
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	sels := make([]Selection, len(s.Sels))
	copy(sels, s.Sels)
	out := &Set{Sels: sels}
	if s.Drag != nil {
		drag := *s.Drag
		out.Drag = &drag
	}
	return out
}
