// Package cli is the artwork command line: cobra commands over the render
// pipeline.
//
//	artwork render poster.yaml -f svg,png     export to files
//	artwork describe poster.yaml             print the normalized workspace
//	artwork methods                           list shape methods
//	artwork serve --addr :8080                run the HTTP server
//	artwork cache clear|prune|path            manage the file cache
//
// Settings come from $XDG_CONFIG_HOME/artwork/config.yaml (or --config) and
// ARTWORK_* environment variables; flags win over both. --verbose turns on
// debug logging and pipeline event lines, and log.format picks text, logfmt
// or JSON. The logger travels in the command context.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger on w with centisecond timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// setLogFormat switches the logger between text, logfmt and JSON output.
func setLogFormat(l *log.Logger, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		l.SetFormatter(log.TextFormatter)
	case "logfmt":
		l.SetFormatter(log.LogfmtFormatter)
	case "json":
		l.SetFormatter(log.JSONFormatter)
	default:
		return fmt.Errorf("unknown log format %q (must be text, logfmt or json)", format)
	}
	return nil
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
