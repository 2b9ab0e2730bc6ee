package telemetry

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// spanContextLogHandler stamps records with the trace and span of the
// context they were logged under.
type spanContextLogHandler struct {
	slog.Handler
}

func handlerWithSpanContext(handler slog.Handler) *spanContextLogHandler {
	return &spanContextLogHandler{Handler: handler}
}

func (h *spanContextLogHandler) Handle(ctx context.Context, record slog.Record) error {
	if s := trace.SpanContextFromContext(ctx); s.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", s.TraceID().String()),
			slog.String("span_id", s.SpanID().String()),
			slog.Bool("trace_sampled", s.TraceFlags().IsSampled()),
		)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *spanContextLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return handlerWithSpanContext(h.Handler.WithAttrs(attrs))
}

func (h *spanContextLogHandler) WithGroup(name string) slog.Handler {
	return handlerWithSpanContext(h.Handler.WithGroup(name))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the JSON logger used across the process.
func NewLogger(w io.Writer, level string) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handlerWithSpanContext(jsonHandler))
}

// SetupLogging installs NewLogger as the slog default.
func SetupLogging(w io.Writer, level string) *slog.Logger {
	logger := NewLogger(w, level)
	slog.SetDefault(logger)
	return logger
}
