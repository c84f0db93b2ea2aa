package commands

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/mdlinkcheck/internal/config"
	ferrors "git.home.luguber.info/inful/mdlinkcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/mdlinkcheck/internal/git"
	"git.home.luguber.info/inful/mdlinkcheck/internal/history"
	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
	"git.home.luguber.info/inful/mdlinkcheck/internal/logfields"
	"git.home.luguber.info/inful/mdlinkcheck/internal/markdown"
	"git.home.luguber.info/inful/mdlinkcheck/internal/metrics"
	"git.home.luguber.info/inful/mdlinkcheck/internal/notify"
	"git.home.luguber.info/inful/mdlinkcheck/internal/report"
)

// session wires one configured checker to its output and optional sinks.
type session struct {
	cfg       *config.Config
	matcher   *git.Matcher
	checker   *linkcheck.Checker
	formatter report.Formatter
	out       io.Writer
	store     history.Store
	publisher notify.Publisher
	recorder  metrics.Recorder
}

// loadConfig reads the configuration of the repository containing start and applies
// the command-line overrides.
func loadConfig(g *Global, root *CLI, start string, o config.Overrides) (*config.Config, string, error) {
	repoRoot, err := git.FindRoot(start)
	if err != nil {
		// Enumeration reports the failure; look for configuration next to start.
		repoRoot, _ = filepath.Abs(start)
	}

	cfg, err := config.Load(repoRoot, root.Config)
	if err != nil {
		return nil, "", err
	}
	cfg.Apply(o)
	if err := cfg.Finalize(); err != nil {
		return nil, "", err
	}
	slog.SetDefault(cfg.Logging.NewLogger(g.stderr()))
	return cfg, repoRoot, nil
}

func openSession(ctx context.Context, g *Global, root *CLI, flags *CheckFlags, o config.Overrides) (*session, error) {
	cfg, repoRoot, err := loadConfig(g, root, flags.start(), o)
	if err != nil {
		return nil, err
	}

	matcher, err := cfg.Matcher()
	if err != nil {
		return nil, ferrors.ValidationError(err.Error()).WithCause(err).Build()
	}
	enumerator, err := git.Open(ctx, cfg.Backend, flags.start(), matcher)
	if err != nil {
		return nil, err
	}
	extractor, err := markdown.NewExtractor(cfg.Extractor)
	if err != nil {
		return nil, ferrors.ValidationError(err.Error()).WithCause(err).Build()
	}
	formatter, err := report.NewFormatter(cfg.Format)
	if err != nil {
		return nil, ferrors.ValidationError(err.Error()).WithCause(err).Build()
	}

	s := &session{
		cfg:     cfg,
		matcher: matcher,
		checker: linkcheck.NewChecker(enumerator,
			linkcheck.WithExtractor(extractor),
			linkcheck.WithAbsoluteMode(cfg.AbsoluteLinks)),
		formatter: formatter,
		out:       g.stdout(),
		recorder:  metrics.NoopRecorder{},
	}

	slog.Debug("Configured link check",
		logfields.Path(enumerator.Root()),
		logfields.Backend(string(cfg.Backend)),
		logfields.Extractor(string(cfg.Extractor)),
		slog.Any("include", cfg.Include),
		slog.Any("exclude", cfg.Exclude))

	if cfg.History.Path != "" {
		store, err := history.Open(historyPath(repoRoot, cfg.History.Path))
		if err != nil {
			slog.Warn("Run history disabled", logfields.Error(err))
		} else {
			s.store = store
		}
	}

	if cfg.NATS.URL != "" {
		publisher, err := notify.NewNATSPublisher(notify.NATSOptions{
			URL:       cfg.NATS.URL,
			Subject:   cfg.NATS.Subject,
			JetStream: cfg.NATS.JetStream,
		})
		if err != nil {
			// Notifications never decide the outcome of a check.
			slog.Warn("Notifications disabled", logfields.Error(err))
		} else {
			s.publisher = publisher
		}
	}

	return s, nil
}

// historyPath resolves a relative database path against the repository root.
func historyPath(repoRoot, path string) string {
	if path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}

// run checks once, prints the report and feeds the sinks.
func (s *session) run(ctx context.Context) (*linkcheck.Report, error) {
	rep, err := s.checker.Run(ctx)
	if err != nil {
		s.recorder.IncRunFailure()
		return nil, err
	}

	if err := s.formatter.Format(s.out, rep); err != nil {
		return rep, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to write report").Build()
	}
	s.recorder.ObserveRun(rep)

	if s.store != nil {
		if err := s.store.Record(ctx, rep); err != nil {
			slog.Warn("Failed to record run history", logfields.RunID(rep.RunID), logfields.Error(err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, rep); err != nil {
			slog.Warn("Failed to publish run events", logfields.RunID(rep.RunID), logfields.Error(err))
		}
	}
	return rep, nil
}

func (s *session) close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			slog.Warn("Failed to close history database", logfields.Error(err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			slog.Warn("Failed to close NATS connection", logfields.Error(err))
		}
	}
}
