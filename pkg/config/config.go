// Package config loads repository-local lineprogress settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/odvcencio/lineprogress/pkg/linecount"
	"github.com/odvcencio/lineprogress/pkg/scan"
)

// FileName is the configuration file name inside the repository metadata
// directory.
const FileName = "lineprogress.toml"

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "LINEPROGRESS_LOG_LEVEL"

// Config holds the tracking rules and logging settings of one repository.
type Config struct {
	Suffix        string `toml:"suffix"`
	CommentMarker string `toml:"comment_marker"`
	LogLevel      string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Suffix:        scan.DefaultSuffix,
		CommentMarker: linecount.DefaultCommentMarker,
		LogLevel:      "warn",
	}
}

// Path returns the configuration file location inside the repository
// metadata directory.
func Path(metaDir string) string {
	return filepath.Join(metaDir, FileName)
}

// Load reads lineprogress.toml from metaDir. A missing file yields defaults.
// Keys absent from the file keep their default values. The log level can be
// overridden through LINEPROGRESS_LOG_LEVEL.
func Load(metaDir string) (*Config, error) {
	cfg := Default()

	path := Path(metaDir)
	md, err := toml.DecodeFile(path, cfg)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err == nil {
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
		}
	}

	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		cfg.LogLevel = lvl
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings for values the tracker cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Suffix) == "" {
		return fmt.Errorf("suffix must not be empty")
	}
	if strings.ContainsAny(c.Suffix, `/\`) {
		return fmt.Errorf("suffix %q must not contain a path separator", c.Suffix)
	}
	if strings.TrimSpace(c.CommentMarker) != c.CommentMarker {
		return fmt.Errorf("comment_marker %q must not contain surrounding whitespace", c.CommentMarker)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// ParseLevel maps debug, info, warn or error (any case) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log_level %q", s)
	}
	return lvl, nil
}
