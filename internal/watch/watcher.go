// Package watch re-runs the link check when documentation changes and, optionally,
// on a fixed interval.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/mdlinkcheck/internal/logfields"
)

// Reason says why a run was started.
type Reason string

const (
	ReasonInitial  Reason = "initial"
	ReasonChange   Reason = "change"
	ReasonSchedule Reason = "schedule"
)

// RunFunc performs one check and returns the repository-relative paths it scanned,
// which decide the directories to watch next.
type RunFunc func(ctx context.Context, reason Reason) ([]string, error)

// Options configures a Watcher.
type Options struct {
	// Root is the repository working tree.
	Root string
	// Match selects relevant repository-relative paths. Nil matches everything.
	Match func(rel string) bool
	// Debounce is the quiet period after the last change before a run starts.
	Debounce time.Duration
	// Interval adds a periodic full run when positive.
	Interval time.Duration
}

// Watcher serializes runs triggered by file changes and the scheduler.
type Watcher struct {
	opts     Options
	run      RunFunc
	fs       *fsnotify.Watcher
	watched  map[string]bool
	requests chan Reason
}

// New creates a Watcher. Call Run to start it.
func New(opts Options, run RunFunc) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		opts:     opts,
		run:      run,
		fs:       fsw,
		watched:  make(map[string]bool),
		requests: make(chan Reason, 1),
	}, nil
}

// Run performs an initial check and then keeps checking until ctx is done. Errors
// from individual runs are logged; only setup failures are returned.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fs.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	if err := w.add(w.opts.Root); err != nil {
		return err
	}
	// git add/rm rewrites the index, which changes what is enumerated.
	if err := w.add(filepath.Join(w.opts.Root, ".git")); err != nil {
		slog.Debug("Not watching git directory", logfields.Error(err))
	}

	if w.opts.Interval > 0 {
		scheduler, err := w.startScheduler()
		if err != nil {
			return err
		}
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				slog.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}

	slog.Info("Watching documentation for changes",
		logfields.Path(w.opts.Root),
		slog.Duration("debounce", w.opts.Debounce),
		slog.Duration("interval", w.opts.Interval))

	debounce := newDebouncer(w.opts.Debounce)
	defer debounce.Stop()

	w.execute(ctx, ReasonInitial)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				debounce.Trigger()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		case <-debounce.C():
			if debounce.Fired() {
				w.execute(ctx, ReasonChange)
			}
		case reason := <-w.requests:
			w.execute(ctx, reason)
		}
	}
}

// Request queues a run. It never blocks; a request already queued absorbs it.
func (w *Watcher) Request(reason Reason) {
	select {
	case w.requests <- reason:
	default:
	}
}

func (w *Watcher) startScheduler() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.opts.Interval),
		gocron.NewTask(w.Request, ReasonSchedule),
		gocron.WithName("periodic-link-check"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic check job: %w", err)
	}
	s.Start()
	return s, nil
}

func (w *Watcher) execute(ctx context.Context, reason Reason) {
	if ctx.Err() != nil {
		return
	}
	started := time.Now()
	files, err := w.run(ctx, reason)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("Link check run failed", slog.String("reason", string(reason)), logfields.Error(err))
		}
		return
	}
	slog.Debug("Link check run completed",
		slog.String("reason", string(reason)),
		logfields.Count(len(files)),
		logfields.Duration(time.Since(started)))
	w.sync(files)
}

// sync starts watching the directories of newly enumerated files.
func (w *Watcher) sync(files []string) {
	for _, dir := range Dirs(w.opts.Root, files) {
		if err := w.add(dir); err != nil {
			slog.Warn("Cannot watch directory", logfields.Path(dir), logfields.Error(err))
		}
	}
}

func (w *Watcher) add(dir string) error {
	if w.watched[dir] {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.watched[dir] = true
	return nil
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return Relevant(w.opts.Root, event.Name, w.opts.Match)
}

// Relevant reports whether a change to name should trigger a run: the git index or a
// path under root accepted by match.
func Relevant(root, name string, match func(rel string) bool) bool {
	rel, err := filepath.Rel(root, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".git/index" {
		return true
	}
	if rel == ".git" || strings.HasPrefix(rel, ".git/") {
		return false
	}
	return match == nil || match(rel)
}

// Dirs returns the sorted absolute directories containing files, root included.
func Dirs(root string, files []string) []string {
	seen := map[string]bool{root: true}
	dirs := []string{root}
	for _, rel := range files {
		dir := filepath.Join(root, filepath.Dir(filepath.FromSlash(rel)))
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	slices.Sort(dirs)
	return dirs
}
