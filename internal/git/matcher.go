package git

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude is the documentation pattern used when none is configured.
var DefaultInclude = []string{"*.md"}

// Matcher selects repository-relative paths by include and exclude globs.
//
// A pattern without a slash is matched against the base name, so "*.md" selects
// markdown files at any depth. A pattern with a slash is matched against the whole
// path with doublestar semantics ("docs/**/*.md").
type Matcher struct {
	include []string
	exclude []string
}

// NewMatcher validates patterns and returns a Matcher. Empty include means DefaultInclude.
func NewMatcher(include, exclude []string) (*Matcher, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, pattern := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return &Matcher{include: include, exclude: exclude}, nil
}

// Match reports whether rel (slash-separated) is included and not excluded.
func (m *Matcher) Match(rel string) bool {
	return matchAny(m.include, rel) && !matchAny(m.exclude, rel)
}

// Include returns the include patterns.
func (m *Matcher) Include() []string { return m.include }

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		subject := rel
		if !strings.Contains(pattern, "/") {
			subject = path.Base(rel)
		}
		if ok, _ := doublestar.Match(pattern, subject); ok {
			return true
		}
	}
	return false
}
