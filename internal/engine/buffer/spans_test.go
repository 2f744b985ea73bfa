package buffer

import (
	"testing"

	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/syntax"
	"github.com/dshills/scribe/internal/theme"
)

func TestLineAttributesReturnsLineTextWithoutTerminator(t *testing.T) {
	b := NewBufferFromString("foo\nbar\n")
	view := b.NewView()

	text, _ := b.LineAttributes(view, 0, theme.DefaultTheme())
	if text != "foo" {
		t.Errorf("line text = %q, want %q", text, "foo")
	}
}

func TestLineAttributesEmitsSelectionSpan(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()

	set := b.Selections(view)
	set.Replace([]cursor.Selection{cursor.NewSelection(2, 7)})

	th := theme.DefaultTheme()
	_, spans := b.LineAttributes(view, 0, th)

	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	span := spans[0]
	if span.Start != 2 || span.End != 7 {
		t.Errorf("span range = [%d,%d), want [2,7)", span.Start, span.End)
	}
	if span.Attr.BG == nil {
		t.Error("selection span should carry the theme's selection background")
	}
}

func TestLineAttributesClipsSelectionToLine(t *testing.T) {
	b := NewBufferFromString("abc\ndefgh\nij")
	view := b.NewView()

	set := b.Selections(view)
	// spans lines 0-2: selects "bc\ndefgh\ni"
	set.Replace([]cursor.Selection{cursor.NewSelection(1, 11)})

	th := theme.DefaultTheme()
	_, spans := b.LineAttributes(view, 1, th)
	if len(spans) != 1 {
		t.Fatalf("got %d spans on middle line, want 1", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 5 {
		t.Errorf("clipped span = [%d,%d), want [0,5) (whole of \"defgh\")", spans[0].Start, spans[0].End)
	}
}

func TestLineAttributesCaretProducesNoSpan(t *testing.T) {
	b := NewBufferFromString("hello world")
	view := b.NewView()
	caretAt(b, view, 3)

	_, spans := b.LineAttributes(view, 0, theme.DefaultTheme())
	if len(spans) != 0 {
		t.Errorf("got %d spans for a bare caret, want 0", len(spans))
	}
}

func TestLineAttributesUnknownViewOmitsSelectionSpans(t *testing.T) {
	b := NewBufferFromString("hello")
	_, spans := b.LineAttributes(999, 0, theme.DefaultTheme())
	if len(spans) != 0 {
		t.Errorf("got %d spans for an unknown view, want 0", len(spans))
	}
}

// A capture with both a foreground and a background must produce two
// separate AttrSpans over the same range rather than one combined span, so
// a renderer can composite them independently (e.g. painting the
// background under a selection highlight without losing the syntax fg).
func TestLineAttributesSplitsForegroundAndBackgroundSpans(t *testing.T) {
	syntax.Init(nil)
	desc := syntax.ForName("rust")
	if desc == nil {
		t.Fatal("rust language descriptor not registered")
	}

	b := NewBufferFromString("fn main() {}\n")
	b.SetLanguage(desc)
	view := b.NewView()

	fg := theme.ColorFromRGB(255, 0, 0)
	bg := theme.ColorFromRGB(0, 0, 128)
	th := &theme.Theme{
		Name:       "split",
		Foreground: theme.ColorFromRGB(200, 200, 200),
		Background: theme.ColorFromRGB(0, 0, 0),
		Highlights: map[syntax.Capture]theme.Attr{
			syntax.CaptureKeyword: {FG: &fg, BG: &bg},
		},
	}

	_, spans := b.LineAttributes(view, 0, th)

	var fgSpans, bgSpans int
	for _, s := range spans {
		if s.Start != 0 || s.End != 2 {
			continue
		}
		switch {
		case s.Attr.FG != nil && s.Attr.BG == nil:
			fgSpans++
		case s.Attr.BG != nil && s.Attr.FG == nil:
			bgSpans++
		default:
			t.Errorf("span over [0,2) should carry only fg or only bg, got %+v", s.Attr)
		}
	}
	if fgSpans != 1 || bgSpans != 1 {
		t.Errorf("expected one fg-only and one bg-only span over \"fn\", got %d fg, %d bg", fgSpans, bgSpans)
	}
}

// Scenario 6 from the motion walkthrough: load "fn main() {}\n", parse with
// the real Rust grammar, request attributes for line 0 with a theme coloring
// keyword red and function blue. The returned spans must include a
// foreground-red span over "fn" and a foreground-blue span over "main".
func TestLineAttributesSyntaxSpansFromRealParse(t *testing.T) {
	syntax.Init(nil)
	desc := syntax.ForName("rust") // "fn" is a Rust keyword, not Go's "func"
	if desc == nil {
		t.Fatal("rust language descriptor not registered")
	}

	b := NewBufferFromString("fn main() {}\n")
	b.SetLanguage(desc)
	view := b.NewView()

	red := theme.ColorFromRGB(255, 0, 0)
	blue := theme.ColorFromRGB(0, 0, 255)
	th := &theme.Theme{
		Name:       "scenario6",
		Foreground: theme.ColorFromRGB(200, 200, 200),
		Background: theme.ColorFromRGB(0, 0, 0),
		Highlights: map[syntax.Capture]theme.Attr{
			syntax.CaptureKeyword:  {FG: &red},
			syntax.CaptureFunction: {FG: &blue},
		},
	}

	text, spans := b.LineAttributes(view, 0, th)
	if text != "fn main() {}" {
		t.Fatalf("line text = %q, want %q", text, "fn main() {}")
	}

	findSpan := func(start, end int) (AttrSpan, bool) {
		for _, s := range spans {
			if s.Start == start && s.End == end {
				return s, true
			}
		}
		return AttrSpan{}, false
	}

	fnSpan, ok := findSpan(0, 2)
	if !ok || fnSpan.Attr.FG == nil || *fnSpan.Attr.FG != red {
		t.Errorf("expected a foreground-red span over \"fn\" [0,2), spans = %v", spans)
	}

	mainSpan, ok := findSpan(3, 7)
	if !ok || mainSpan.Attr.FG == nil || *mainSpan.Attr.FG != blue {
		t.Errorf("expected a foreground-blue span over \"main\" [3,7), spans = %v", spans)
	}
}
