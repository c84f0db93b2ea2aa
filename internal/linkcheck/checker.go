package linkcheck

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdlinkcheck/internal/git"
	"git.home.luguber.info/inful/mdlinkcheck/internal/logfields"
	"git.home.luguber.info/inful/mdlinkcheck/internal/markdown"
)

// Checker runs the enumerate, extract, classify, normalize and resolve pipeline.
type Checker struct {
	enumerator git.Enumerator
	extractor  markdown.Extractor
	resolver   Resolver
	readFile   func(name string) ([]byte, error)
	now        func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithExtractor replaces the default lexical extractor.
func WithExtractor(e markdown.Extractor) Option {
	return func(c *Checker) {
		if e != nil {
			c.extractor = e
		}
	}
}

// WithAbsoluteMode sets how targets starting with '/' are resolved.
func WithAbsoluteMode(mode AbsoluteMode) Option {
	return func(c *Checker) { c.resolver.Absolute = mode }
}

// WithReadFile replaces os.ReadFile.
func WithReadFile(fn func(name string) ([]byte, error)) Option {
	return func(c *Checker) { c.readFile = fn }
}

// NewChecker creates a Checker for the files listed by enumerator.
func NewChecker(enumerator git.Enumerator, opts ...Option) *Checker {
	c := &Checker{
		enumerator: enumerator,
		extractor:  markdown.Lexical{},
		resolver:   Resolver{Root: enumerator.Root(), Absolute: AbsoluteFilesystem},
		readFile:   os.ReadFile,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the repository root the checker works on.
func (c *Checker) Root() string { return c.enumerator.Root() }

// Run performs one full check. Only enumeration failures and cancellation are errors;
// broken links are reported through the returned Report.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	started := c.now()
	report := &Report{
		RunID:     uuid.NewString(),
		Root:      c.enumerator.Root(),
		StartedAt: started,
		Broken:    []BrokenLink{},
		Stats:     Stats{Skipped: make(map[SkipReason]int)},
	}
	log := slog.With(logfields.RunID(report.RunID))

	files, err := c.enumerator.List(ctx)
	if err != nil {
		return nil, err
	}
	report.Files = files
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.checkFile(log, rel, report)
	}

	report.Duration = c.now().Sub(started)
	log.Info("Link check finished",
		logfields.Count(report.Stats.Files),
		slog.Int("checked", report.Stats.Checked),
		logfields.Broken(len(report.Broken)),
		logfields.Duration(report.Duration))
	return report, nil
}

func (c *Checker) checkFile(log *slog.Logger, rel string, report *Report) {
	abs := filepath.Join(report.Root, filepath.FromSlash(rel))
	// #nosec G304 -- path comes from the repository index
	content, err := c.readFile(abs)
	if err != nil {
		// Tracked but deleted or unreadable; nothing to scan.
		log.Warn("Skipping unreadable file", logfields.File(rel), logfields.Error(err))
		report.Stats.Unreadable++
		return
	}
	report.Stats.Files++

	for raw := range c.extractor.Targets(markdown.DecodeLossy(content)) {
		report.Stats.Links++
		if reason := Classify(raw); reason != SkipNone {
			report.skip(reason)
			continue
		}
		normalized := Normalize(raw)
		if normalized == "" {
			report.skip(SkipEmptyPath)
			continue
		}

		report.Stats.Checked++
		resolved, ok := c.resolver.Resolve(abs, normalized)
		if ok {
			log.Debug("Link target exists", logfields.File(rel), logfields.Target(raw), logfields.Resolved(resolved))
			continue
		}
		log.Debug("Broken link", logfields.File(rel), logfields.Target(raw), logfields.Resolved(resolved))
		report.Broken = append(report.Broken, BrokenLink{Source: rel, Target: strings.TrimSpace(raw)})
	}
}
