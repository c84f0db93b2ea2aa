// Package markdown extracts link targets from Markdown documents.
//
// Two extractors exist. Lexical matches `[label](target)` and `![label](target)` with a
// single regular expression and reports the target exactly as written; it is the default
// and intentionally does not understand nesting or code spans. CommonMark parses the body
// with goldmark and reports the destinations of inline links, images and reference
// definitions.
package markdown

import (
	"fmt"
	"iter"
)

// Options controls how Markdown is parsed for internal analysis.
//
// It exists so parsing behavior (extensions/settings) can evolve without rewriting
// call sites.
type Options struct{}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

type Link struct {
	Kind        LinkKind
	Destination string
}

// ExtractorName identifies an Extractor implementation.
type ExtractorName string

const (
	ExtractorLexical    ExtractorName = "lexical"
	ExtractorCommonMark ExtractorName = "commonmark"
)

// Extractor yields raw link targets found in decoded document text.
type Extractor interface {
	Name() ExtractorName
	Targets(text string) iter.Seq[string]
}

// NewExtractor returns the extractor registered under name.
func NewExtractor(name ExtractorName) (Extractor, error) {
	switch name {
	case ExtractorLexical, "":
		return Lexical{}, nil
	case ExtractorCommonMark:
		return CommonMark{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", name)
	}
}
