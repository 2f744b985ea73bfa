// Package history implements undo/redo as an append-only list of
// change-groups, each a rope snapshot plus the selection vectors observed
// immediately before and after the edits that produced it. Undo/redo move
// an index through that list; any edit applied after an undo truncates the
// list from the current index forward, discarding the abandoned branch.
package history
