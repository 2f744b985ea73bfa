package workspace

import (
	"path/filepath"

	"github.com/tidwall/match"

	"github.com/dshills/scribe/internal/syntax"
)

// patternDescriptor pairs a glob-style filename pattern with the language
// it selects. Patterns are matched against a path's base name, so entries
// like "Makefile" (an exact name, no wildcard) and "*.spec.ts" both work.
type patternDescriptor struct {
	pattern string
	lang    string
}

// extraPatterns covers file-naming conventions syntax.ForExtension's
// plain extension map can't express: extensionless well-known filenames
// and multi-dot suffixes.
var extraPatterns = []patternDescriptor{
	{"*.go", "go"},
	{"*.rs", "rust"},
	{"Makefile", "make"},
	{"*.spec.ts", "typescript"},
}

// languageForPath resolves path to a language descriptor by trying the
// glob pattern table first (most specific), then falling back to
// syntax.ForExtension on the plain extension. Returns nil if nothing
// recognizes the path.
func languageForPath(path string) *syntax.LangDescriptor {
	base := filepath.Base(path)

	for _, p := range extraPatterns {
		if match.Match(base, p.pattern) {
			if desc := syntax.ForName(p.lang); desc != nil {
				return desc
			}
		}
	}

	return syntax.ForExtension(filepath.Ext(path))
}
