package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/mdlinkcheck/internal/logfields"
	"git.home.luguber.info/inful/mdlinkcheck/internal/metrics"
	"git.home.luguber.info/inful/mdlinkcheck/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	CheckFlags
	WatchFlags
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunWatch(ctx, g, root, &w.CheckFlags, &w.WatchFlags)
}

func RunWatch(ctx context.Context, g *Global, root *CLI, flags *CheckFlags, wf *WatchFlags) error {
	o := flags.overrides(root)
	o.Interval = wf.Interval
	o.Debounce = wf.Debounce
	o.MetricsAddr = wf.MetricsAddr

	s, err := openSession(ctx, g, root, flags, o)
	if err != nil {
		return err
	}
	defer s.close()

	if addr := s.cfg.Watch.MetricsAddr; addr != "" {
		reg := metrics.NewRegistry()
		s.recorder = metrics.NewPrometheusRecorder(reg)
		srv := metrics.NewServer(addr, reg)
		go func() {
			slog.Info("Serving metrics", slog.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	watcher, err := watch.New(watch.Options{
		Root:     s.checker.Root(),
		Match:    s.matcher.Match,
		Debounce: s.cfg.Watch.Debounce.Std(),
		Interval: s.cfg.Watch.Interval.Std(),
	}, func(ctx context.Context, reason watch.Reason) ([]string, error) {
		slog.Debug("Starting link check", slog.String("reason", string(reason)))
		rep, err := s.run(ctx)
		if err != nil {
			return nil, err
		}
		return rep.Files, nil
	})
	if err != nil {
		return err
	}

	if err := watcher.Run(ctx); err != nil {
		return err
	}
	slog.Info("Watch stopped")
	return nil
}
