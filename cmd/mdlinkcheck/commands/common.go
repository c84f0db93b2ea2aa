package commands

import (
	"io"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/mdlinkcheck/internal/config"
)

// Global carries the process streams into commands; tests replace them.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) stderr() io.Writer {
	if g == nil || g.Stderr == nil {
		return os.Stderr
	}
	return g.Stderr
}

// CLI definition & global flags.
type CLI struct {
	Config    string `short:"c" help:"Configuration file path (default: .mdlinkcheck.yaml in the repository root)" env:"MDLINKCHECK_CONFIG"`
	Verbose   bool   `short:"v" help:"Enable verbose logging" env:"MDLINKCHECK_VERBOSE"`
	LogFormat string `name:"log-format" help:"Log output format (text or json)" env:"MDLINKCHECK_LOG_FORMAT"`

	Check   CheckCmd   `cmd:"" default:"withargs" help:"Check relative links in tracked markdown files (default)"`
	Watch   WatchCmd   `cmd:"" help:"Re-check whenever documentation changes"`
	History HistoryCmd `cmd:"" help:"Show recorded runs"`
	Version VersionCmd `cmd:"" help:"Show version and exit"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(c.logging().NewLogger(os.Stderr))
	return nil
}

func (c *CLI) logging() config.LoggingConfig {
	cfg := config.LoggingConfig{Level: config.LogLevelInfo, Format: config.LogFormatText}
	if c.Verbose {
		cfg.Level = config.LogLevelDebug
	}
	if c.LogFormat == string(config.LogFormatJSON) {
		cfg.Format = config.LogFormatJSON
	}
	return cfg
}

// CheckFlags are shared by the check and watch commands.
type CheckFlags struct {
	Root          string   `help:"Directory inside the repository to check (default: working directory)" env:"MDLINKCHECK_ROOT"`
	Include       []string `help:"Glob selecting files to check; repeatable (default: *.md)" env:"MDLINKCHECK_INCLUDE"`
	Exclude       []string `help:"Glob excluding files from the check; repeatable" env:"MDLINKCHECK_EXCLUDE"`
	Backend       string   `help:"Tracked file source: index (go-git) or cli (git ls-files)" env:"MDLINKCHECK_BACKEND"`
	Extractor     string   `help:"Link extractor: lexical or commonmark" env:"MDLINKCHECK_EXTRACTOR"`
	Format        string   `short:"f" help:"Report format: text, json or github" env:"MDLINKCHECK_FORMAT"`
	AbsoluteLinks string   `name:"absolute-links" help:"Resolve /targets against the filesystem or the repository root" env:"MDLINKCHECK_ABSOLUTE_LINKS"`
	History       string   `help:"Record runs in this SQLite database" env:"MDLINKCHECK_HISTORY"`
	NATSURL       string   `name:"nats-url" help:"Publish run events to this NATS server" env:"MDLINKCHECK_NATS_URL"`
	NATSSubject   string   `name:"nats-subject" help:"Subject prefix for published events (default: mdlinkcheck)" env:"MDLINKCHECK_NATS_SUBJECT"`
}

func (f *CheckFlags) start() string {
	if f.Root == "" {
		return "."
	}
	return f.Root
}

func (f *CheckFlags) overrides(root *CLI) config.Overrides {
	o := config.Overrides{
		Include:       f.Include,
		Exclude:       f.Exclude,
		Backend:       f.Backend,
		Extractor:     f.Extractor,
		Format:        f.Format,
		AbsoluteLinks: f.AbsoluteLinks,
		HistoryPath:   f.History,
		NATSURL:       f.NATSURL,
		NATSSubject:   f.NATSSubject,
		LogFormat:     root.LogFormat,
	}
	if root.Verbose {
		o.LogLevel = string(config.LogLevelDebug)
	}
	return o
}

// WatchFlags extend CheckFlags for the watch command.
type WatchFlags struct {
	Interval    time.Duration `help:"Also re-check on this interval (0 disables)" env:"MDLINKCHECK_INTERVAL"`
	Debounce    time.Duration `help:"Quiet period after a change before re-checking (default: 500ms)" env:"MDLINKCHECK_DEBOUNCE"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address" env:"MDLINKCHECK_METRICS_ADDR"`
}
