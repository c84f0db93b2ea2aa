package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/mdlinkcheck/internal/config"
	ferrors "git.home.luguber.info/inful/mdlinkcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/mdlinkcheck/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Root    string `help:"Directory inside the repository (default: working directory)" env:"MDLINKCHECK_ROOT"`
	History string `help:"SQLite database written by check --history" env:"MDLINKCHECK_HISTORY"`
	Limit   int    `short:"n" default:"10" help:"Number of runs to show (0 shows all)"`
	RunID   string `name:"run" help:"Show the broken links recorded for this run ID"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	start := h.Root
	if start == "" {
		start = "."
	}
	o := config.Overrides{HistoryPath: h.History, LogFormat: root.LogFormat}
	cfg, repoRoot, err := loadConfig(g, root, start, o)
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return ferrors.ValidationError("no history database configured (use --history or history.path)").Build()
	}

	path := historyPath(repoRoot, cfg.History.Path)
	if path != ":memory:" {
		if _, err := os.Stat(path); err != nil {
			return ferrors.ValidationError("history database not found").
				WithContext("path", path).
				Build()
		}
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if h.RunID != "" {
		return h.printBroken(ctx, g, store)
	}
	return h.printRuns(ctx, g, store)
}

func (h *HistoryCmd) printRuns(ctx context.Context, g *Global, store history.Store) error {
	runs, err := store.Recent(ctx, h.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(g.stdout(), "No runs recorded.")
		return err
	}

	tw := tabwriter.NewWriter(g.stdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RUN\tSTARTED\tDURATION\tFILES\tCHECKED\tBROKEN")
	for _, r := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			time.Duration(r.DurationMS*float64(time.Millisecond)).Round(time.Millisecond),
			r.Files, r.Checked, r.Broken)
	}
	return tw.Flush()
}

func (h *HistoryCmd) printBroken(ctx context.Context, g *Global, store history.Store) error {
	links, err := store.BrokenLinks(ctx, h.RunID)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		_, err := fmt.Fprintf(g.stdout(), "No broken links recorded for run %s.\n", h.RunID)
		return err
	}
	for _, b := range links {
		if _, err := fmt.Fprintf(g.stdout(), "%s -> %s\n", b.Source, b.Target); err != nil {
			return err
		}
	}
	return nil
}
