package metrics

import "git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"

// OutcomeLabel classifies a run for the runs counter.
type OutcomeLabel string

const (
	OutcomeValid  OutcomeLabel = "valid"
	OutcomeBroken OutcomeLabel = "broken"
	OutcomeFailed OutcomeLabel = "failed"
)

// Recorder receives the outcome of every run.
type Recorder interface {
	// ObserveRun records a completed run.
	ObserveRun(report *linkcheck.Report)
	// IncRunFailure records a run that could not complete (enumeration failed).
	IncRunFailure()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRun(*linkcheck.Report) {}
func (NoopRecorder) IncRunFailure()               {}
