package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// pathKeys are attribute keys whose values are file paths.
var pathKeys = map[string]bool{
	"path":   true,
	"source": true,
	"file":   true,
	"dir":    true,
}

// PathHandler wraps an slog.Handler and rewrites absolute file paths to
// paths relative to a base directory, so that log lines stay short and
// match what the reports print.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because it works with any underlying handler (text, JSON, etc.) and
// components keep using the plain *slog.Logger API.
type PathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// base is the directory paths are made relative to.
	base string
}

// NewPathHandler creates a PathHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. An empty base
// disables rewriting.
func NewPathHandler(handler slog.Handler, base string) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &PathHandler{handler: handler, base: base}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's path attributes and passes it on.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(rewritten), base: h.base}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), base: h.base}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if !pathKeys[strings.ToLower(a.Key)] || a.Value.Kind() != slog.KindString {
		return a
	}
	return slog.String(a.Key, h.relative(a.Value.String()))
}

// relative returns path relative to the base directory. Paths outside the
// base, relative paths and non-paths such as "string" are left alone.
func (h *PathHandler) relative(path string) string {
	if h.base == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(h.base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// NewLogger creates a text logger.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPathHandler(slog.NewTextHandler(w, handlerOptions(verbose)), workingDir()))
}

// NewJSONLogger creates a logger that outputs JSON format. Useful for
// structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPathHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), workingDir()))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

func workingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return dir
}
