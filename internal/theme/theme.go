package theme

import (
	"strings"

	"github.com/dshills/scribe/internal/syntax"
)

// Theme holds the default colors, the fixed UI attribute slots, and the
// capture-category -> attribute map used to color a syntax-highlighted
// buffer.
type Theme struct {
	Name string

	Foreground Color
	Background Color

	Cursor              Attr
	Selection            Attr
	LineHighlight        Attr
	Gutter               Attr
	GutterLineHighlight  Attr

	// Highlights maps a capture category to its display attribute.
	Highlights map[syntax.Capture]Attr
}

// StyleForCapture returns the attribute for a capture category, falling
// back to the theme's default foreground/background if the category has no
// explicit entry.
func (t *Theme) StyleForCapture(c syntax.Capture) Attr {
	if a, ok := t.Highlights[c]; ok {
		return a
	}
	return Attr{FG: &t.Foreground}
}

// StyleForScope looks up an attribute by a raw capture-name string (as it
// would appear in a highlight query or a TOML `[highlights]` key),
// stripping trailing ".segment" components until a match is found or the
// scope is exhausted.
func (t *Theme) StyleForScope(scope string) Attr {
	for scope != "" {
		if c, ok := syntax.CaptureFromName(scope); ok {
			if a, ok := t.Highlights[c]; ok {
				return a
			}
		}
		if i := strings.LastIndexByte(scope, '.'); i >= 0 {
			scope = scope[:i]
		} else {
			scope = ""
		}
	}
	return Attr{FG: &t.Foreground}
}

// DefaultTheme returns the built-in fallback theme, always available even
// if no configuration file is found or it fails to parse.
func DefaultTheme() *Theme {
	fg := ColorFromRGB(212, 212, 212)
	bg := ColorFromRGB(30, 30, 30)
	return &Theme{
		Name:       "default",
		Foreground: fg,
		Background: bg,
		Cursor:     Attr{FG: ptr(ColorFromRGB(255, 255, 255))},
		Selection:  Attr{BG: ptr(ColorFromRGB(64, 64, 128))},
		LineHighlight:       Attr{BG: ptr(ColorFromRGB(40, 40, 40))},
		Gutter:              Attr{FG: ptr(ColorFromRGB(120, 120, 120)), BG: &bg},
		GutterLineHighlight: Attr{FG: ptr(ColorFromRGB(200, 200, 200)), BG: ptr(ColorFromRGB(40, 40, 40))},
		Highlights: map[syntax.Capture]Attr{
			syntax.CaptureComment:           {FG: ptr(ColorFromRGB(106, 153, 85)), Italic: true},
			syntax.CaptureKeyword:           {FG: ptr(ColorFromRGB(86, 156, 214))},
			syntax.CaptureString:            {FG: ptr(ColorFromRGB(206, 145, 120))},
			syntax.CaptureConstant:          {FG: ptr(ColorFromRGB(79, 193, 255))},
			syntax.CaptureConstantBuiltin:   {FG: ptr(ColorFromRGB(79, 193, 255))},
			syntax.CaptureFunction:          {FG: ptr(ColorFromRGB(220, 220, 170))},
			syntax.CaptureFunctionMethod:    {FG: ptr(ColorFromRGB(220, 220, 170))},
			syntax.CaptureFunctionMacro:     {FG: ptr(ColorFromRGB(220, 220, 170))},
			syntax.CaptureType:              {FG: ptr(ColorFromRGB(78, 201, 176))},
			syntax.CaptureTypeBuiltin:       {FG: ptr(ColorFromRGB(78, 201, 176))},
			syntax.CaptureVariableBuiltin:   {FG: ptr(ColorFromRGB(156, 220, 254))},
			syntax.CaptureVariableParameter: {FG: ptr(ColorFromRGB(156, 220, 254)), Italic: true},
			syntax.CaptureOperator:          {FG: ptr(fg)},
			syntax.CapturePunctuationBracket:   {FG: ptr(fg)},
			syntax.CapturePunctuationDelimiter: {FG: ptr(fg)},
			syntax.CaptureProperty:             {FG: ptr(ColorFromRGB(156, 220, 254))},
			syntax.CaptureAttribute:            {FG: ptr(ColorFromRGB(156, 220, 254))},
			syntax.CaptureLabel:                {FG: ptr(ColorFromRGB(86, 156, 214))},
			syntax.CaptureConstructor:          {FG: ptr(ColorFromRGB(78, 201, 176))},
			syntax.CaptureEscape:               {FG: ptr(ColorFromRGB(215, 186, 125))},
		},
	}
}

func ptr(c Color) *Color { return &c }

// Registry holds the set of known themes and tracks which is current.
type Registry struct {
	themes  map[string]*Theme
	current *Theme
}

// NewRegistry creates a registry seeded with the built-in default theme.
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]*Theme)}
	d := DefaultTheme()
	r.Register(d)
	r.current = d
	return r
}

// Register adds or replaces a theme by name.
func (r *Registry) Register(t *Theme) {
	r.themes[t.Name] = t
}

// Get returns a theme by name.
func (r *Registry) Get(name string) (*Theme, bool) {
	t, ok := r.themes[name]
	return t, ok
}

// Current returns the active theme.
func (r *Registry) Current() *Theme {
	return r.current
}

// SetCurrent switches the active theme by name, returning false if unknown.
func (r *Registry) SetCurrent(name string) bool {
	t, ok := r.themes[name]
	if !ok {
		return false
	}
	r.current = t
	return true
}

// Names returns all registered theme names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	return names
}
