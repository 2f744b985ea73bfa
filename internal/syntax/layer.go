package syntax

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/dshills/scribe/internal/engine/rope"
)

// Point is a byte/line/column position as the parser's incremental edit API
// expects it. Column is a code-point count within the line, matching the
// column this layer's model was originally specified against.
type Point struct {
	Byte   rope.ByteOffset
	Line   uint32
	Column uint32
}

// Layer wraps one buffer's incremental parser state: its language
// descriptor, current tree (if any), and the node-identity -> capture map
// rebuilt on every reparse. A nil *Layer (or one built by NewLayer with a
// nil descriptor) supports plain text: every method is a no-op / empty result.
type Layer struct {
	desc   *LangDescriptor
	parser *tree_sitter.Parser
	tree   *tree_sitter.Tree

	nodeToCapture map[uintptr]Capture

	logger *zap.SugaredLogger
}

// NewLayer creates a syntax layer for desc. desc may be nil, producing a
// layer that never parses or highlights (the "nil" variant for plain text).
func NewLayer(desc *LangDescriptor, logger *zap.SugaredLogger) *Layer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	l := &Layer{desc: desc, logger: logger, nodeToCapture: make(map[uintptr]Capture)}
	if desc != nil {
		l.parser = tree_sitter.NewParser()
		l.parser.SetLanguage(desc.lang)
	}
	return l
}

// UpdateHighlights reparses r from scratch (or incrementally, if EditTree
// was called since the last parse) and rebuilds the node -> capture map by
// running the highlight query over the new tree.
func (l *Layer) UpdateHighlights(r rope.Rope) {
	if l == nil || l.desc == nil || l.parser == nil {
		return
	}

	src := []byte(r.String())
	newTree := l.parser.Parse(src, l.tree)
	if l.tree != nil {
		l.tree.Close()
	}
	l.tree = newTree

	clear(l.nodeToCapture)
	if l.tree == nil || l.desc.query == nil {
		return
	}

	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()

	captureNames := l.desc.query.CaptureNames()
	captures := qc.Captures(l.desc.query, l.tree.RootNode(), src)

	for match, captureIdx := captures.Next(); match != nil; match, captureIdx = captures.Next() {
		if int(captureIdx) >= len(match.Captures) {
			continue
		}
		c := match.Captures[captureIdx]
		if int(c.Index) >= len(captureNames) {
			continue
		}
		cat, ok := CaptureFromName(captureNames[c.Index])
		if !ok {
			continue
		}
		id := c.Node.Id()
		// First capture wins: a later, more generic pattern in the query
		// file must not overwrite an earlier, more specific one.
		if _, exists := l.nodeToCapture[id]; !exists {
			l.nodeToCapture[id] = cat
		}
	}
}

// EditTree informs the parser of the byte/point range an edit affected, so
// the next UpdateHighlights call can reparse incrementally instead of from
// scratch.
func (l *Layer) EditTree(start, oldEnd, newEnd Point) {
	if l == nil || l.tree == nil {
		return
	}
	l.tree.Edit(&tree_sitter.InputEdit{
		StartByte:   uint(start.Byte),
		OldEndByte:  uint(oldEnd.Byte),
		NewEndByte:  uint(newEnd.Byte),
		StartPoint:  tree_sitter.Point{Row: uint(start.Line), Column: uint(start.Column)},
		OldEndPoint: tree_sitter.Point{Row: uint(oldEnd.Line), Column: uint(oldEnd.Column)},
		NewEndPoint: tree_sitter.Point{Row: uint(newEnd.Line), Column: uint(newEnd.Column)},
	})
}

// Tree returns the current parse tree, or nil if none is available (a
// reparse is pending, or this is the nil layer).
func (l *Layer) Tree() *tree_sitter.Tree {
	if l == nil {
		return nil
	}
	return l.tree
}

// CaptureFromNode returns the capture category assigned to a node, if any.
func (l *Layer) CaptureFromNode(id uintptr) (Capture, bool) {
	if l == nil {
		return CaptureNone, false
	}
	c, ok := l.nodeToCapture[id]
	return c, ok
}

// UnsetTree forces a from-scratch reparse on the next UpdateHighlights call.
// Used after undo/redo, where the rope can change discontinuously.
func (l *Layer) UnsetTree() {
	if l == nil {
		return
	}
	if l.tree != nil {
		l.tree.Close()
	}
	l.tree = nil
	clear(l.nodeToCapture)
}

// Close releases the parser and tree resources.
func (l *Layer) Close() {
	if l == nil {
		return
	}
	if l.tree != nil {
		l.tree.Close()
	}
	if l.parser != nil {
		l.parser.Close()
	}
}
