// Package config loads resolver settings from the environment and optional
// .env files.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultMaxDepth bounds recursive supplier unwrapping.
	DefaultMaxDepth = 64
	// DefaultMaxLoopIterations bounds expression loops.
	DefaultMaxLoopIterations = 10000
)

// Environment keys read by Load.
const (
	KeyMaxDepth          = "SUPPLY_MAX_DEPTH"
	KeyMaxLoopIterations = "SUPPLY_MAX_LOOP_ITERATIONS"
	KeyLogLevel          = "SUPPLY_LOG_LEVEL"
	KeyLogFormat         = "SUPPLY_LOG_FORMAT"
)

// Config holds the tunables shared by resolvers and expression loops.
type Config struct {
	MaxDepth          int
	MaxLoopIterations int
	LogLevel          string // debug | info | warn | error
	LogFormat         string // text | json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxDepth:          DefaultMaxDepth,
		MaxLoopIterations: DefaultMaxLoopIterations,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load reads the given .env files (".env" when none are given) and builds a
// Config. Process environment variables take precedence over file values and
// missing files are ignored.
func Load(envFiles ...string) (Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}

	fileVals := map[string]string{}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("config: reading %s: %w", f, err)
		}
		for k, v := range vals {
			fileVals[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}

	cfg := Default()
	var err error
	if cfg.MaxDepth, err = envInt(lookup, KeyMaxDepth, cfg.MaxDepth); err != nil {
		return Config{}, err
	}
	if cfg.MaxLoopIterations, err = envInt(lookup, KeyMaxLoopIterations, cfg.MaxLoopIterations); err != nil {
		return Config{}, err
	}
	if v, ok := lookup(KeyLogLevel); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(KeyLogFormat); ok && v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	return cfg, nil
}

func envInt(lookup func(string) (string, bool), key string, def int) (int, error) {
	raw, ok := lookup(key)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, raw, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %d", key, n)
	}
	return n, nil
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a logger writing to w. It does not touch the global logger.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
