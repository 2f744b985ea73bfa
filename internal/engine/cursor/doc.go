// Package cursor implements the selection algebra: the Selection type (a
// char-indexed anchor/cursor pair with an optional remembered visual
// column), SelectionSet (the sorted, per-view collection of selections with
// its drag-gesture state), and the rewrite rules that keep selections
// consistent across inserts and removes.
package cursor
