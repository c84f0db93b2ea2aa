package config

import (
	"time"

	"git.home.luguber.info/inful/mdlinkcheck/internal/git"
	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
	"git.home.luguber.info/inful/mdlinkcheck/internal/markdown"
	"git.home.luguber.info/inful/mdlinkcheck/internal/report"
)

const (
	DefaultNATSSubject = "mdlinkcheck"
	DefaultDebounce    = 500 * time.Millisecond
)

// Default returns a configuration that checks every tracked *.md file and prints
// the text report.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if len(c.Include) == 0 {
		c.Include = append([]string(nil), git.DefaultInclude...)
	}
	if c.Backend == "" {
		c.Backend = git.BackendIndex
	}
	if c.Extractor == "" {
		c.Extractor = markdown.ExtractorLexical
	}
	if c.Format == "" {
		c.Format = report.FormatText
	}
	if c.AbsoluteLinks == "" {
		c.AbsoluteLinks = linkcheck.AbsoluteFilesystem
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = DefaultNATSSubject
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = Duration(DefaultDebounce)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}

// Finalize normalizes enumerations, applies defaults and validates the result.
func (c *Config) Finalize() error {
	if err := c.normalize(); err != nil {
		return err
	}
	c.applyDefaults()
	return c.validate()
}
