// Package config loads settings for the calc command.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/cache"
)

// Config holds the command's settings.
type Config struct {
	// MaxDepth limits the nesting depth of expressions.
	MaxDepth int `koanf:"max-depth"`
	// MaxIntBits limits the size of integer results.
	MaxIntBits int `koanf:"max-int-bits"`
	// CacheSize is the number of compiled expressions the tools keep.
	CacheSize int `koanf:"cache-size"`
	// LogLevel is one of debug, info, warn, or error.
	LogLevel string `koanf:"log-level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log-format"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		MaxDepth:   calc.DefaultMaxDepth,
		MaxIntBits: calc.DefaultMaxIntBits,
		CacheSize:  cache.DefaultCapacity,
		LogLevel:   "warn",
		LogFormat:  "text",
	}
}

// Load loads the defaults overlaid by the YAML file at path. If path is
// empty, only the defaults are used.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("couldn't load defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("couldn't load config from %s: %w", path, err)
		}
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("couldn't decode config: %w", err)
	}
	if _, err := cfg.level(); err != nil {
		return Config{}, err
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return cfg, nil
}

// Options returns the calculator options the configuration describes.
func (c Config) Options() []calc.Option {
	return []calc.Option{calc.MaxDepth(c.MaxDepth), calc.MaxIntBits(c.MaxIntBits)}
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return l, nil
}

// Logger creates a logger writing to w in the configured format and level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	l, err := c.level()
	if err != nil {
		l = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: l}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
