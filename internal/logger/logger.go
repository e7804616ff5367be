package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

type Config struct {
	Level   string
	Format  string
	Output  io.Writer
	Service string
}

type Logger struct {
	l *slog.Logger
}

func New(conf Config) *Logger {
	if conf.Output == nil {
		conf.Output = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: parseLevel(conf.Level)}

	var handler slog.Handler
	if conf.Format == FormatText {
		handler = slog.NewTextHandler(conf.Output, opts)
	} else {
		handler = slog.NewJSONHandler(conf.Output, opts)
	}

	if conf.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", conf.Service)})
	}

	return &Logger{l: slog.New(handler)}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return New(Config{Output: io.Discard})
}

func parseLevel(level string) slog.Level {
	switch level {
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

// FromContext attaches the trace and span ids of the span stored in ctx, if any.
func (l *Logger) FromContext(ctx context.Context) *Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}

	return &Logger{l: l.l.With(
		slog.String("trace_id", sc.TraceID().String()),
		slog.String("span_id", sc.SpanID().String()),
	)}
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}

func (l *Logger) LogWarn(format string, v ...any) {
	l.l.Warn(fmt.Sprintf(format, v...))
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.l.Info(fmt.Sprintf(format, v...))
}

func (l *Logger) LogDebug(format string, v ...any) {
	l.l.Debug(fmt.Sprintf(format, v...))
}
