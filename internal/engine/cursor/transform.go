package cursor

// TransformInsert rewrites a single char offset for an insertion of n chars
// at pos: offsets at or after pos shift right by n.
func TransformInsert(side, pos CharOffset, n CharOffset) CharOffset {
	if side >= pos {
		return side + n
	}
	return side
}

// TransformRemove rewrites a single char offset for removal of the range
// [start, end): offsets inside the removed range collapse to start; offsets
// at or after end shift left by the removed length.
func TransformRemove(side, start, end CharOffset) CharOffset {
	switch {
	case side >= start && side < end:
		return start
	case side >= end:
		return side - (end - start)
	default:
		return side
	}
}

// TransformSelectionInsert rewrites both sides of sel for an insertion of n
// chars at pos, per §4.3.
func TransformSelectionInsert(sel Selection, pos, n CharOffset) Selection {
	return Selection{
		Start: TransformInsert(sel.Start, pos, n),
		End:   TransformInsert(sel.End, pos, n),
	}
}

// TransformSelectionRemove rewrites both sides of sel for removal of
// [start, end), per §4.3.
func TransformSelectionRemove(sel Selection, start, end CharOffset) Selection {
	return Selection{
		Start: TransformRemove(sel.Start, start, end),
		End:   TransformRemove(sel.End, start, end),
	}
}

// TransformSetInsert rewrites every selection of every set in sets for an
// insertion of n chars at pos. The spec requires this applied uniformly
// across all views sharing a buffer, not just the editing view, so this
// takes the full slice of a buffer's per-view sets.
func TransformSetInsert(sets []*Set, pos, n CharOffset) {
	for _, set := range sets {
		for i, sel := range set.Sels {
			set.Sels[i] = TransformSelectionInsert(sel, pos, n)
		}
	}
}

// TransformSetRemove rewrites every selection of every set in sets for
// removal of [start, end), across all views.
func TransformSetRemove(sets []*Set, start, end CharOffset) {
	for _, set := range sets {
		for i, sel := range set.Sels {
			set.Sels[i] = TransformSelectionRemove(sel, start, end)
		}
	}
}
