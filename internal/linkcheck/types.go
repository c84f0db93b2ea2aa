package linkcheck

import (
	"time"
)

// SkipReason says why a raw target was not checked for existence.
type SkipReason string

const (
	SkipNone      SkipReason = ""
	SkipEmpty     SkipReason = "empty"
	SkipAnchor    SkipReason = "anchor"
	SkipExternal  SkipReason = "external"
	SkipEmptyPath SkipReason = "empty_path"
)

// BrokenLink pairs the repository-relative, slash-separated path of a document with a
// link target, as written, that does not resolve to an existing file.
type BrokenLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Stats counts what a run looked at.
type Stats struct {
	Files      int                `json:"files"`
	Unreadable int                `json:"unreadable"`
	Links      int                `json:"links"`
	Checked    int                `json:"checked"`
	Skipped    map[SkipReason]int `json:"skipped"`
}

// Report is the outcome of one run. Broken is in discovery order.
type Report struct {
	RunID     string        `json:"run_id"`
	Root      string        `json:"root"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	Broken    []BrokenLink  `json:"broken"`
	Stats     Stats         `json:"stats"`
	// Files lists the enumerated documents, readable or not, in order.
	Files []string `json:"-"`
}

// HasBroken reports whether at least one broken link was found.
func (r *Report) HasBroken() bool {
	return r != nil && len(r.Broken) > 0
}

func (r *Report) skip(reason SkipReason) {
	if r.Stats.Skipped == nil {
		r.Stats.Skipped = make(map[SkipReason]int)
	}
	r.Stats.Skipped[reason]++
}
