// Package report renders a link check Report for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
)

// Format names an output format.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatGitHub Format = "github"
)

const (
	validMessage  = "All markdown relative links are valid."
	brokenMessage = "Broken markdown links found:"
)

// Formatter writes a report to w.
type Formatter interface {
	Format(w io.Writer, report *linkcheck.Report) error
}

// NewFormatter returns the formatter for format. Empty means text.
func NewFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatText, "":
		return TextFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{}, nil
	case FormatGitHub:
		return GitHubFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// TextFormatter prints the summary line followed by one "source -> target" line per
// broken link.
type TextFormatter struct{}

func (TextFormatter) Format(w io.Writer, report *linkcheck.Report) error {
	if !report.HasBroken() {
		_, err := fmt.Fprintln(w, validMessage)
		return err
	}
	if _, err := fmt.Fprintln(w, brokenMessage); err != nil {
		return err
	}
	for _, b := range report.Broken {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", b.Source, b.Target); err != nil {
			return err
		}
	}
	return nil
}

// JSONOutput is the document written by JSONFormatter.
type JSONOutput struct {
	RunID      string                 `json:"run_id"`
	Root       string                 `json:"root"`
	StartedAt  string                 `json:"started_at"`
	DurationMS float64                `json:"duration_ms"`
	Valid      bool                   `json:"valid"`
	Stats      linkcheck.Stats        `json:"stats"`
	Broken     []linkcheck.BrokenLink `json:"broken"`
}

// JSONFormatter writes the report as an indented JSON object.
type JSONFormatter struct{}

func (JSONFormatter) Format(w io.Writer, report *linkcheck.Report) error {
	output := JSONOutput{
		RunID:      report.RunID,
		Root:       report.Root,
		StartedAt:  report.StartedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		DurationMS: float64(report.Duration.Microseconds()) / 1000,
		Valid:      !report.HasBroken(),
		Stats:      report.Stats,
		Broken:     report.Broken,
	}
	if output.Broken == nil {
		output.Broken = []linkcheck.BrokenLink{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// GitHubFormatter emits GitHub Actions workflow annotations followed by the text summary.
type GitHubFormatter struct{}

func (GitHubFormatter) Format(w io.Writer, report *linkcheck.Report) error {
	for _, b := range report.Broken {
		if _, err := fmt.Fprintf(w, "::error file=%s::broken link %s\n",
			escapeProperty(b.Source), escapeData(b.Target)); err != nil {
			return err
		}
	}
	return TextFormatter{}.Format(w, report)
}

// escapeData escapes a workflow command message.
func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}

// escapeProperty escapes a workflow command property value.
func escapeProperty(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C").Replace(s)
}
