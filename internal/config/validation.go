package config

import (
	"strings"

	ferrors "git.home.luguber.info/inful/mdlinkcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/mdlinkcheck/internal/foundation/normalization"
	"git.home.luguber.info/inful/mdlinkcheck/internal/git"
	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
	"git.home.luguber.info/inful/mdlinkcheck/internal/markdown"
	"git.home.luguber.info/inful/mdlinkcheck/internal/report"
)

var (
	backends = normalization.NewEnum("backend", map[string]git.Backend{
		"index": git.BackendIndex,
		"cli":   git.BackendCLI,
	}, git.BackendIndex)

	extractors = normalization.NewEnum("extractor", map[string]markdown.ExtractorName{
		"lexical":    markdown.ExtractorLexical,
		"commonmark": markdown.ExtractorCommonMark,
	}, markdown.ExtractorLexical)

	formats = normalization.NewEnum("format", map[string]report.Format{
		"text":   report.FormatText,
		"json":   report.FormatJSON,
		"github": report.FormatGitHub,
	}, report.FormatText)

	absoluteModes = normalization.NewEnum("absolute link mode", map[string]linkcheck.AbsoluteMode{
		"filesystem": linkcheck.AbsoluteFilesystem,
		"repository": linkcheck.AbsoluteRepository,
	}, linkcheck.AbsoluteFilesystem)

	logLevels = normalization.NewEnum("log level", map[string]LogLevel{
		"debug": LogLevelDebug,
		"info":  LogLevelInfo,
		"warn":  LogLevelWarn,
		"error": LogLevelError,
	}, LogLevelInfo)

	logFormats = normalization.NewEnum("log format", map[string]LogFormat{
		"text": LogFormatText,
		"json": LogFormatJSON,
	}, LogFormatText)
)

// normalize case-folds enumerations into their canonical values.
func (c *Config) normalize() error {
	var err error
	if c.Backend, err = backends.Parse(string(c.Backend)); err != nil {
		return invalid("backend", err)
	}
	if c.Extractor, err = extractors.Parse(string(c.Extractor)); err != nil {
		return invalid("extractor", err)
	}
	if c.Format, err = formats.Parse(string(c.Format)); err != nil {
		return invalid("format", err)
	}
	if c.AbsoluteLinks, err = absoluteModes.Parse(string(c.AbsoluteLinks)); err != nil {
		return invalid("absolute_links", err)
	}
	if c.Logging.Level, err = logLevels.Parse(string(c.Logging.Level)); err != nil {
		return invalid("logging.level", err)
	}
	if c.Logging.Format, err = logFormats.Parse(string(c.Logging.Format)); err != nil {
		return invalid("logging.format", err)
	}
	return nil
}

func (c *Config) validate() error {
	if _, err := c.Matcher(); err != nil {
		return invalid("include", err)
	}
	if c.Watch.Debounce < 0 {
		return ferrors.ValidationError("watch.debounce must not be negative").
			WithContext("field", "watch.debounce").Build()
	}
	if c.Watch.Interval < 0 {
		return ferrors.ValidationError("watch.interval must not be negative").
			WithContext("field", "watch.interval").Build()
	}
	if strings.ContainsAny(c.NATS.Subject, "*> \t") {
		return ferrors.ValidationError("nats.subject must be a literal subject without wildcards").
			WithContext("field", "nats.subject").
			WithContext("value", c.NATS.Subject).
			Build()
	}
	return nil
}

// Matcher compiles the include and exclude patterns.
func (c *Config) Matcher() (*git.Matcher, error) {
	return git.NewMatcher(c.Include, c.Exclude)
}

func invalid(field string, err error) error {
	return ferrors.ValidationError(err.Error()).
		WithCause(err).
		WithContext("field", field).
		Build()
}
