package syntax

import (
	_ "embed"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	"go.uber.org/zap"
)

//go:embed queries/go.scm
var goHighlights string

//go:embed queries/rust.scm
var rustHighlights string

// LangDescriptor bundles a compiled tree-sitter grammar with its
// pre-compiled highlight query and the file extensions that select it. The
// query is nil if it failed to compile: that language then parses (for
// structural features) but never highlights, rather than crashing.
type LangDescriptor struct {
	Name       string
	Extensions []string
	lang       *tree_sitter.Language
	query      *tree_sitter.Query
}

var (
	registryOnce sync.Once
	registry     map[string]*LangDescriptor
	extToName    map[string]string
)

// Init compiles every known grammar and its highlight query. logger may be
// nil, in which case a no-op logger is used; Init only needs to run once
// per process regardless of how many buffers request a language.
func Init(logger *zap.SugaredLogger) {
	registryOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop().Sugar()
		}
		specs := []struct {
			name  string
			exts  []string
			lang  *tree_sitter.Language
			query string
		}{
			{"go", []string{".go"}, tree_sitter.NewLanguage(tree_sitter_go.Language()), goHighlights},
			{"rust", []string{".rs"}, tree_sitter.NewLanguage(tree_sitter_rust.Language()), rustHighlights},
		}

		registry = make(map[string]*LangDescriptor, len(specs))
		extToName = make(map[string]string)

		for _, s := range specs {
			d := &LangDescriptor{Name: s.name, Extensions: s.exts, lang: s.lang}
			q, err := tree_sitter.NewQuery(s.lang, s.query)
			if err != nil {
				logger.Warnw("highlight query failed to compile, disabling highlighting for language",
					"language", s.name, "error", err)
			} else {
				d.query = q
			}
			registry[s.name] = d
			for _, ext := range s.exts {
				extToName[ext] = s.name
			}
		}
	})
}

// ForExtension returns the descriptor registered for a file extension
// (including the leading dot, e.g. ".go"), or nil for an unrecognized or
// plain-text extension.
func ForExtension(ext string) *LangDescriptor {
	name, ok := extToName[ext]
	if !ok {
		return nil
	}
	return registry[name]
}

// ForName returns the descriptor for a language name, or nil if unknown.
func ForName(name string) *LangDescriptor {
	return registry[name]
}
