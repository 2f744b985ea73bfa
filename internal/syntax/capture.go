package syntax

// Capture is a syntactic role assigned to a highlight query capture. It is
// the vocabulary shared between the syntax layer (which assigns captures to
// tree nodes) and the theme (which maps captures to display attributes).
type Capture int

const (
	CaptureNone Capture = iota
	CaptureAttribute
	CaptureComment
	CaptureConstant
	CaptureConstantBuiltin
	CaptureConstructor
	CaptureEscape
	CaptureFunction
	CaptureFunctionMacro
	CaptureFunctionMethod
	CaptureKeyword
	CaptureLabel
	CaptureOperator
	CaptureProperty
	CapturePunctuationBracket
	CapturePunctuationDelimiter
	CaptureString
	CaptureType
	CaptureTypeBuiltin
	CaptureVariableBuiltin
	CaptureVariableParameter
)

var captureNames = map[string]Capture{
	"attribute":             CaptureAttribute,
	"comment":               CaptureComment,
	"constant":               CaptureConstant,
	"constant.builtin":       CaptureConstantBuiltin,
	"constructor":            CaptureConstructor,
	"escape":                 CaptureEscape,
	"function":               CaptureFunction,
	"function.macro":         CaptureFunctionMacro,
	"function.method":        CaptureFunctionMethod,
	"keyword":                CaptureKeyword,
	"label":                  CaptureLabel,
	"operator":               CaptureOperator,
	"property":               CaptureProperty,
	"punctuation.bracket":    CapturePunctuationBracket,
	"punctuation.delimiter":  CapturePunctuationDelimiter,
	"string":                 CaptureString,
	"type":                   CaptureType,
	"type.builtin":           CaptureTypeBuiltin,
	"variable.builtin":       CaptureVariableBuiltin,
	"variable.parameter":     CaptureVariableParameter,
}

// CaptureFromName parses a tree-sitter highlight query capture name (e.g.
// "function.method") into its Capture value. It returns (CaptureNone,
// false) for unrecognized names, which the syntax layer treats as
// "no styling for this node".
func CaptureFromName(name string) (Capture, bool) {
	c, ok := captureNames[name]
	return c, ok
}

// String returns the canonical capture name, the inverse of
// CaptureFromName, used as the theme's TOML `[highlights]` table keys.
func (c Capture) String() string {
	for name, v := range captureNames {
		if v == c {
			return name
		}
	}
	return "none"
}
