package linkcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		want SkipReason
	}{
		{raw: "", want: SkipEmpty},
		{raw: "   ", want: SkipEmpty},
		{raw: "#intro", want: SkipAnchor},
		{raw: "  #intro  ", want: SkipAnchor},
		{raw: "<#intro>", want: SkipAnchor},
		{raw: "https://example.com/x", want: SkipExternal},
		{raw: "<https://example.com/x>", want: SkipExternal},
		{raw: "mailto:a@b.com", want: SkipExternal},
		{raw: "ftp://files.example.com", want: SkipExternal},
		{raw: "git+ssh://host/repo", want: SkipExternal},
		{raw: "tel:+123", want: SkipExternal},
		{raw: "ht\ntp://wrapped.example.com", want: SkipExternal},
		{raw: "./b.md", want: SkipNone},
		{raw: "../b.md#section", want: SkipNone},
		{raw: "b.md?raw=1", want: SkipNone},
		{raw: "<./assets/pic with space.png>", want: SkipNone},
		{raw: "./a:b.md", want: SkipNone},
		{raw: "1password:foo", want: SkipNone},
		{raw: ":colon.md", want: SkipNone},
		{raw: "/abs/path.md", want: SkipNone},
		{raw: "<>", want: SkipNone},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.raw))
			assert.Equal(t, tt.want != SkipNone, ShouldSkip(tt.raw))
		})
	}
}

func TestHasScheme(t *testing.T) {
	assert.True(t, HasScheme("HTTPS://EXAMPLE.COM"))
	assert.True(t, HasScheme("x-custom.v1+json:payload"))
	assert.False(t, HasScheme("docs/readme.md"))
	assert.False(t, HasScheme("a b:c"))
	assert.False(t, HasScheme(""))
}
