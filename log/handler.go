// Package log builds the plugin's slog handlers.
//
// The host shell owns the plugin's stdout for its protocol, so logs are only
// ever written to the writer passed in, normally stderr.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format selects the record encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// HandlerOption configures the handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	attrs     []slog.Attr
	format    Format
	level     slog.Level
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level:  slog.LevelInfo,
		format: FormatText,
	}
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithFormat selects text or JSON output. Unknown formats fall back to text.
func WithFormat(format Format) HandlerOption {
	return func(c *handlerConfig) {
		c.format = format
	}
}

// WithPlugin tags every record with the plugin name and version.
func WithPlugin(name, version string) HandlerOption {
	return func(c *handlerConfig) {
		c.attrs = append(c.attrs, slog.String("plugin", name), slog.String("version", version))
	}
}

// NewHandler creates a handler writing to w with the given options.
func NewHandler(w io.Writer, opts ...HandlerOption) slog.Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	hopts := &slog.HandlerOptions{Level: cfg.level, AddSource: cfg.addSource}
	var h slog.Handler
	if cfg.format == FormatJSON {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	return h
}

// NewLogger is shorthand for slog.New(NewHandler(w, opts...)).
func NewLogger(w io.Writer, opts ...HandlerOption) *slog.Logger {
	return slog.New(NewHandler(w, opts...))
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
