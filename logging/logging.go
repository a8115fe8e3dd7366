// Package logging builds the slog logger shared by the mirror-upload
// commands and the upload clients.
//
// Levels follow slog: debug, info, warn and error. Upload progress
// (release found, file sent, version published) and dry-run output are
// logged at info; request details at debug. Debug output also
// carries the source location of each record.
//
// Two output formats are supported: "text" (key=value, the default)
// and "json" for log collectors.
//
//	logger := logging.New(logging.FromFlags("debug", "json", os.Stderr))
//	logger.Info("uploaded", "service", "modrinth", "file", "mod.jar")
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is a slog level.
type Level = slog.Level

// Log levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format is the handler output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level written.
	Level Level

	// Format selects the text or JSON handler.
	Format Format

	// Output defaults to os.Stderr.
	Output io.Writer

	// AddSource adds the source file and line to every record.
	AddSource bool
}

// DefaultConfig logs info and above as text to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// FromFlags turns the --log-level and --log-format values into a Config.
// Source locations are only added at debug level.
func FromFlags(level, format string, out io.Writer) Config {
	lvl := ParseLevel(level)

	return Config{
		Level:     lvl,
		Format:    ParseFormat(format),
		Output:    out,
		AddSource: lvl <= LevelDebug,
	}
}

// New creates a logger for cfg.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return slog.New(handler)
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel returns LevelInfo for unknown values.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ParseFormat returns FormatText for unknown values.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, string(FormatJSON)) {
		return FormatJSON
	}

	return FormatText
}
