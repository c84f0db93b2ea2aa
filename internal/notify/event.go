package notify

import (
	"time"

	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
)

// RunEvent summarizes one completed check. It is published to "<subject>.run".
type RunEvent struct {
	RunID      string    `json:"run_id"`
	Root       string    `json:"root"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS float64   `json:"duration_ms"`
	Files      int       `json:"files"`
	Links      int       `json:"links"`
	Checked    int       `json:"checked"`
	Broken     int       `json:"broken"`
	Valid      bool      `json:"valid"`
	Timestamp  time.Time `json:"timestamp"`
}

// BrokenLinkEvent describes one broken link. One is published to "<subject>.broken"
// per record, in discovery order.
type BrokenLinkEvent struct {
	RunID     string    `json:"run_id"`
	Root      string    `json:"root"`
	Position  int       `json:"position"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRunEvent builds the summary event for report.
func NewRunEvent(report *linkcheck.Report, now time.Time) RunEvent {
	return RunEvent{
		RunID:      report.RunID,
		Root:       report.Root,
		StartedAt:  report.StartedAt,
		DurationMS: float64(report.Duration.Microseconds()) / 1000,
		Files:      report.Stats.Files,
		Links:      report.Stats.Links,
		Checked:    report.Stats.Checked,
		Broken:     len(report.Broken),
		Valid:      !report.HasBroken(),
		Timestamp:  now,
	}
}

// NewBrokenLinkEvents builds one event per broken link of report.
func NewBrokenLinkEvents(report *linkcheck.Report, now time.Time) []BrokenLinkEvent {
	events := make([]BrokenLinkEvent, 0, len(report.Broken))
	for i, b := range report.Broken {
		events = append(events, BrokenLinkEvent{
			RunID:     report.RunID,
			Root:      report.Root,
			Position:  i,
			Source:    b.Source,
			Target:    b.Target,
			Timestamp: now,
		})
	}
	return events
}
