package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the ryazon configuration file
// (~/.config/ryazon/config.yaml unless --config is given). Pointer fields
// distinguish "not set" from zero values. Values only apply to flags that
// were not given on the command line.
type Config struct {
	Texts  string `yaml:"texts"`
	Output string `yaml:"output"`

	// Training
	Order             *int64  `yaml:"order"`
	RemoveURLs        *bool   `yaml:"remove_urls"`
	RemovePunctuation *bool   `yaml:"remove_punctuation"`
	AddPunctuation    *string `yaml:"add_punctuation"`

	// Generation
	Seed       *string `yaml:"seed"`
	Terminator *string `yaml:"terminator"`
	MaxWords   *int64  `yaml:"max_words"`
	MinWords   *int64  `yaml:"min_words"`
	Iterations *int64  `yaml:"iterations"`
	RandSeed   *int64  `yaml:"rand_seed"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ryazon", "config.yaml")
}

// loadConfig reads the config file at path. A missing file at the default
// location yields a zero Config; a missing file that was asked for
// explicitly is an error.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig copies config file values into s for every flag the user did
// not set explicitly.
func applyConfig(c *cli.Command, cfg Config, s *settings) {
	if cfg.Texts != "" && !c.IsSet("texts") {
		s.textsPath = cfg.Texts
	}
	if cfg.Output != "" && !c.IsSet("output") {
		s.output = cfg.Output
	}
	if cfg.Order != nil && !c.IsSet("order") {
		s.order = *cfg.Order
	}
	if cfg.RemoveURLs != nil && !c.IsSet("remove-urls") {
		s.removeURLs = *cfg.RemoveURLs
	}
	if cfg.RemovePunctuation != nil && !c.IsSet("remove-punctuation") {
		s.removePunctuation = *cfg.RemovePunctuation
	}
	if cfg.AddPunctuation != nil && !c.IsSet("add-punctuation") {
		s.addPunctuation = *cfg.AddPunctuation
	}
	if cfg.Seed != nil && !c.IsSet("seed") {
		s.seed = *cfg.Seed
	}
	if cfg.Terminator != nil && !c.IsSet("terminator") {
		s.terminator = *cfg.Terminator
	}
	if cfg.MaxWords != nil && !c.IsSet("max-words") {
		s.maxWords = *cfg.MaxWords
	}
	if cfg.MinWords != nil && !c.IsSet("min-words") {
		s.minWords = *cfg.MinWords
	}
	if cfg.Iterations != nil && !c.IsSet("iterations") {
		s.iterations = *cfg.Iterations
	}
	if cfg.RandSeed != nil && !c.IsSet("rand-seed") {
		s.randSeed = *cfg.RandSeed
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		s.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		s.logFormat = cfg.LogFormat
	}
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		s.addr = cfg.ServerAddress
	}
}

// parseLevel converts a level name to a slog.Level, defaulting to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the process logger. Logs go to w so stdout stays free
// for generated text.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
