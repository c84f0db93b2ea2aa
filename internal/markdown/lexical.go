package markdown

import (
	"iter"
	"regexp"
)

// linkPattern matches [label](target) and ![label](target). The label may not contain ']'
// and the target may not contain ')'; both may span lines.
var linkPattern = regexp.MustCompile(`!?\[[^\]]*\]\(([^)]+)\)`)

// Lexical is the pattern-based extractor. Nested parentheses in a target or an escaped
// ']' in a label capture the wrong substring; that is accepted.
type Lexical struct{}

func (Lexical) Name() ExtractorName { return ExtractorLexical }

// Targets yields the raw target of every non-overlapping match, in document order.
func (Lexical) Targets(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for pos := 0; pos < len(text); {
			loc := linkPattern.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				return
			}
			if !yield(text[pos+loc[2] : pos+loc[3]]) {
				return
			}
			pos += loc[1]
		}
	}
}
