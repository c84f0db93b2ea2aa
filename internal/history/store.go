// Package history keeps a SQLite record of link check runs and the broken links each
// run found.
package history

import (
	"context"
	"time"

	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
)

// Run summarizes one recorded check.
type Run struct {
	ID         string
	Root       string
	StartedAt  time.Time
	DurationMS float64
	Files      int
	Links      int
	Checked    int
	Broken     int
}

// Store persists run reports.
type Store interface {
	Record(ctx context.Context, report *linkcheck.Report) error
	Recent(ctx context.Context, limit int) ([]Run, error)
	BrokenLinks(ctx context.Context, runID string) ([]linkcheck.BrokenLink, error)
	Close() error
}
