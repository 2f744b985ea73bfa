package buffer

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/rope"
	"github.com/dshills/scribe/internal/theme"
)

// AttrSpan is a (start, end, attribute) triple in line-relative byte
// offsets, the unit a renderer paints in one pass.
type AttrSpan struct {
	Start int
	End   int
	Attr  theme.Attr
}

// LineAttributes returns the line's text (excluding its terminator) and the
// attribute spans a renderer should apply over it, derived from the
// buffer's syntax tree and the view's selections, in discovery order
// (later spans are meant to paint over earlier ones).
func (b *Buffer) LineAttributes(view ViewID, line uint32, t *theme.Theme) (string, []AttrSpan) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lineStartByte := b.rope.LineStartOffset(line)
	lineEndByte := b.rope.LineEndOffset(line)
	text := strings.TrimSuffix(b.rope.Slice(lineStartByte, lineEndByte), "\r")

	var spans []AttrSpan

	if tree := b.layer.Tree(); tree != nil {
		spans = append(spans, b.syntaxSpans(tree, lineStartByte, lineEndByte, t)...)
	}
	if set, ok := b.views[view]; ok {
		spans = append(spans, b.selectionSpans(set, lineStartByte, lineEndByte, t)...)
	}

	return text, spans
}

// syntaxSpans walks the tree in document order (first child, else next
// sibling, else ascend to parent's next sibling), emitting AttrSpans for
// every node overlapping [lineStartByte, lineEndByte) whose capture has a
// themed fg or bg. A node with both gets two spans over the same range, one
// carrying only the foreground (plus style flags), one only the background,
// so a renderer that composites fg and bg independently (e.g. painting a
// selection's background under separately-colored syntax text) never has to
// pick apart a combined Attr to do it.
func (b *Buffer) syntaxSpans(tree *tree_sitter.Tree, lineStartByte, lineEndByte rope.ByteOffset, t *theme.Theme) []AttrSpan {
	var spans []AttrSpan
	lineLen := int(lineEndByte - lineStartByte)

	walker := tree.Walk()
	defer walker.Close()

	for {
		node := walker.Node()
		nodeStart := rope.ByteOffset(node.StartByte())
		nodeEnd := rope.ByteOffset(node.EndByte())

		if nodeStart < lineEndByte && nodeEnd > lineStartByte {
			if cat, ok := b.layer.CaptureFromNode(node.Id()); ok {
				attr := t.StyleForCapture(cat)
				if attr.FG != nil || attr.BG != nil {
					start := clipToLine(nodeStart, lineStartByte, lineLen)
					end := clipToLine(nodeEnd, lineStartByte, lineLen)
					if start < end {
						spans = append(spans, fgBgSpans(start, end, attr)...)
					}
				}
			}
		}

		if walker.GotoFirstChild() {
			continue
		}
		for !walker.GotoNextSibling() {
			if !walker.GotoParent() {
				return spans
			}
		}
	}
}

// fgBgSpans splits attr into up to two AttrSpans over [start, end): one
// carrying just the foreground color and style flags, one carrying just the
// background color. A side with nothing set is omitted rather than emitted
// as a no-op span.
func fgBgSpans(start, end int, attr theme.Attr) []AttrSpan {
	var spans []AttrSpan
	if attr.FG != nil || attr.Bold || attr.Italic || attr.Underline || attr.Strikethrough {
		spans = append(spans, AttrSpan{Start: start, End: end, Attr: theme.Attr{
			FG:            attr.FG,
			Bold:          attr.Bold,
			Italic:        attr.Italic,
			Underline:     attr.Underline,
			Strikethrough: attr.Strikethrough,
		}})
	}
	if attr.BG != nil {
		spans = append(spans, AttrSpan{Start: start, End: end, Attr: theme.Attr{BG: attr.BG}})
	}
	return spans
}

// clipToLine converts a byte offset to a line-relative offset, clamped to
// [0, lineLen].
func clipToLine(byteOff, lineStart rope.ByteOffset, lineLen int) int {
	rel := int(byteOff - lineStart)
	if rel < 0 {
		return 0
	}
	if rel > lineLen {
		return lineLen
	}
	return rel
}

// selectionSpans emits the theme's selection attribute over the
// intersection of every non-caret selection with the given line.
func (b *Buffer) selectionSpans(set *cursor.Set, lineStartByte, lineEndByte rope.ByteOffset, t *theme.Theme) []AttrSpan {
	var spans []AttrSpan
	lineLen := int(lineEndByte - lineStartByte)

	for _, sel := range set.Sels {
		if sel.IsCaret() {
			continue
		}
		selStartByte := b.rope.CharToByte(sel.Left())
		selEndByte := b.rope.CharToByte(sel.Right())

		if selStartByte >= lineEndByte || selEndByte <= lineStartByte {
			continue
		}
		start := clipToLine(selStartByte, lineStartByte, lineLen)
		end := clipToLine(selEndByte, lineStartByte, lineLen)
		if start >= end {
			continue
		}
		spans = append(spans, AttrSpan{Start: start, End: end, Attr: t.Selection})
	}
	return spans
}
