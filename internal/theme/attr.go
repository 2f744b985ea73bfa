package theme

// Attr is a display attribute record: an optional foreground and background
// color plus style flags. A nil color means "inherit the default".
type Attr struct {
	FG            *Color
	BG            *Color
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
}

// WithFG returns a copy of a with the foreground color set.
func (a Attr) WithFG(c Color) Attr {
	a.FG = &c
	return a
}

// WithBG returns a copy of a with the background color set.
func (a Attr) WithBG(c Color) Attr {
	a.BG = &c
	return a
}
