// Package config loads mdlinkcheck settings from an optional YAML file and the
// environment, and merges them with command-line overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/mdlinkcheck/internal/foundation/errors"
	"git.home.luguber.info/inful/mdlinkcheck/internal/git"
	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
	"git.home.luguber.info/inful/mdlinkcheck/internal/markdown"
	"git.home.luguber.info/inful/mdlinkcheck/internal/report"
)

// DefaultFileName is looked up in the repository root when no file is given.
const DefaultFileName = ".mdlinkcheck.yaml"

// Config is the complete, validated configuration of a run.
type Config struct {
	Include       []string               `yaml:"include"`
	Exclude       []string               `yaml:"exclude"`
	Backend       git.Backend            `yaml:"backend"`
	Extractor     markdown.ExtractorName `yaml:"extractor"`
	Format        report.Format          `yaml:"format"`
	AbsoluteLinks linkcheck.AbsoluteMode `yaml:"absolute_links"`
	History       HistoryConfig          `yaml:"history"`
	NATS          NATSConfig             `yaml:"nats"`
	Watch         WatchConfig            `yaml:"watch"`
	Logging       LoggingConfig          `yaml:"logging"`
}

// HistoryConfig enables the SQLite run history.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// NATSConfig enables run notifications.
type NATSConfig struct {
	URL       string `yaml:"url"`
	Subject   string `yaml:"subject"`
	JetStream bool   `yaml:"jetstream"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce    Duration `yaml:"debounce"`
	Interval    Duration `yaml:"interval"`
	MetricsAddr string   `yaml:"metrics_addr"`
}

// LoggingConfig selects log verbosity and encoding.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Duration is a time.Duration written as a Go duration string ("500ms", "5m").
type Duration time.Duration

// UnmarshalYAML parses a duration scalar.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", node.Line, raw)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration in its string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load reads the configuration file for the repository at root. path may name a file
// explicitly, in which case it must exist; otherwise DefaultFileName in root is used
// when present. The result still needs Apply and Finalize.
func Load(root, path string) (*Config, error) {
	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, DefaultFileName)
	}

	// #nosec G304 -- configuration path is chosen by the user
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").
				WithContext("path", path).
				Fatal().
				UserAction().
				Build()
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No configuration file; defaults apply.
	default:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "configuration file not readable").
			WithContext("path", path).
			Fatal().
			UserAction().
			Build()
	}

	return cfg, nil
}

// decode parses YAML with environment expansion and rejects unknown keys.
func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
