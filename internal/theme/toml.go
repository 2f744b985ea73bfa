package theme

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/scribe/internal/syntax"
)

// ParseError describes a failure to parse a theme configuration file. Per
// the error-handling design, theme parsing failures are a single
// structured error; the caller falls back to DefaultTheme.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing theme %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// bgEntry and fgBgEntry mirror the theme file's nested tables:
//
//	selection = { bg = "#RRGGBB" }
//	gutter = { bg = "#RRGGBB", fg = "#RRGGBB" }
type bgEntry struct {
	BG Color `toml:"bg"`
}

type fgBgEntry struct {
	FG Color `toml:"fg"`
	BG Color `toml:"bg"`
}

type highlightEntry struct {
	FG            Color `toml:"fg"`
	BG            Color `toml:"bg"`
	Bold          bool  `toml:"bold"`
	Italic        bool  `toml:"italic"`
	Underline     bool  `toml:"underline"`
	Strikethrough bool  `toml:"strikethrough"`
}

type tomlDoc struct {
	FG                  Color                     `toml:"fg"`
	BG                  Color                     `toml:"bg"`
	Cursor              Color                     `toml:"cursor"`
	Selection           bgEntry                   `toml:"selection"`
	LineHighlight       bgEntry                   `toml:"line_highlight"`
	Gutter              fgBgEntry                 `toml:"gutter"`
	GutterLineHighlight fgBgEntry                 `toml:"gutter_line_highlight"`
	Highlights          map[string]highlightEntry `toml:"highlights"`
}

// LoadFile reads and parses a theme file at path. If the file does not
// exist, it returns (nil, nil) so the caller can fall back to
// DefaultTheme without treating a missing theme file as an error.
func LoadFile(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading theme file %s: %w", path, err)
	}
	return Parse(name, data)
}

// Parse parses a TOML theme document per the format in §6. Parsing is
// total: any malformed color or section produces a single ParseError;
// otherwise a fully-populated Theme is returned (unset fields default to
// the built-in theme's values).
func Parse(name string, data []byte) (*Theme, error) {
	var doc tomlDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: name, Message: err.Error(), Err: err}
	}

	t := DefaultTheme()
	t.Name = name

	if !doc.FG.isZero() {
		t.Foreground = doc.FG
	}
	if !doc.BG.isZero() {
		t.Background = doc.BG
	}
	if !doc.Cursor.isZero() {
		t.Cursor = Attr{FG: ptr(doc.Cursor)}
	}
	if !doc.Selection.BG.isZero() {
		t.Selection = Attr{BG: ptr(doc.Selection.BG)}
	}
	if !doc.LineHighlight.BG.isZero() {
		t.LineHighlight = Attr{BG: ptr(doc.LineHighlight.BG)}
	}
	if !doc.Gutter.FG.isZero() || !doc.Gutter.BG.isZero() {
		t.Gutter = attrFromFgBg(doc.Gutter)
	}
	if !doc.GutterLineHighlight.FG.isZero() || !doc.GutterLineHighlight.BG.isZero() {
		t.GutterLineHighlight = attrFromFgBg(doc.GutterLineHighlight)
	}

	for captureName, entry := range doc.Highlights {
		capCat, ok := syntax.CaptureFromName(captureName)
		if !ok {
			continue
		}
		a := Attr{Bold: entry.Bold, Italic: entry.Italic, Underline: entry.Underline, Strikethrough: entry.Strikethrough}
		if !entry.FG.isZero() {
			a.FG = ptr(entry.FG)
		}
		if !entry.BG.isZero() {
			a.BG = ptr(entry.BG)
		}
		t.Highlights[capCat] = a
	}

	return t, nil
}

func attrFromFgBg(e fgBgEntry) Attr {
	a := Attr{}
	if !e.FG.isZero() {
		a.FG = ptr(e.FG)
	}
	if !e.BG.isZero() {
		a.BG = ptr(e.BG)
	}
	return a
}

func (c Color) isZero() bool {
	return c == Color{}
}
