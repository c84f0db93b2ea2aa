package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
)

func brokenReport() *linkcheck.Report {
	return &linkcheck.Report{
		RunID:     "run-1",
		Root:      "/repo",
		StartedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Microsecond,
		Broken: []linkcheck.BrokenLink{
			{Source: "docs/a.md", Target: "./missing.md"},
			{Source: "README.md", Target: "<gone file.md>"},
		},
		Stats: linkcheck.Stats{Files: 2, Links: 4, Checked: 2},
	}
}

func TestTextFormatter(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, TextFormatter{}.Format(&buf, &linkcheck.Report{}))
		assert.Equal(t, "All markdown relative links are valid.\n", buf.String())
	})

	t.Run("broken", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, TextFormatter{}.Format(&buf, brokenReport()))
		assert.Equal(t, "Broken markdown links found:\n"+
			"docs/a.md -> ./missing.md\n"+
			"README.md -> <gone file.md>\n", buf.String())
	})
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONFormatter{}.Format(&buf, brokenReport()))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "run-1", out.RunID)
	assert.False(t, out.Valid)
	assert.InDelta(t, 1.5, out.DurationMS, 0.001)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", out.StartedAt)
	assert.Equal(t, brokenReport().Broken, out.Broken)
	assert.Equal(t, 2, out.Stats.Files)
}

func TestJSONFormatter_EmptyBrokenIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONFormatter{}.Format(&buf, &linkcheck.Report{}))
	assert.Contains(t, buf.String(), `"broken": []`)
	assert.Contains(t, buf.String(), `"valid": true`)
}

func TestGitHubFormatter(t *testing.T) {
	report := brokenReport()
	report.Broken = append(report.Broken, linkcheck.BrokenLink{Source: "a,b.md", Target: "100%.md"})

	var buf bytes.Buffer
	require.NoError(t, GitHubFormatter{}.Format(&buf, report))
	assert.Equal(t, "::error file=docs/a.md::broken link ./missing.md\n"+
		"::error file=README.md::broken link <gone file.md>\n"+
		"::error file=a%2Cb.md::broken link 100%25.md\n"+
		"Broken markdown links found:\n"+
		"docs/a.md -> ./missing.md\n"+
		"README.md -> <gone file.md>\n"+
		"a,b.md -> 100%.md\n", buf.String())
}

func TestNewFormatter(t *testing.T) {
	for format, want := range map[Format]Formatter{
		"":           TextFormatter{},
		FormatText:   TextFormatter{},
		FormatJSON:   JSONFormatter{},
		FormatGitHub: GitHubFormatter{},
	} {
		got, err := NewFormatter(format)
		require.NoError(t, err)
		assert.IsType(t, want, got)
	}

	_, err := NewFormatter("xml")
	require.Error(t, err)
}
