// Package log provides the logging interfaces used by platform
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

var (
	// Null is a logger that outputs nothing.
	Null = slog.New(Discard)

	trace = sync.OnceValue(func() TraceLogger {
		return Null
	})
)

const (
	KeyError    = "error"
	KeyFile     = "file"
	KeyStrategy = "strategy"
	KeyKey      = "key"
	KeyValue    = "value"
	KeyLine     = "line"
)

// ErrorAttr returns an attribute for an error, an empty string for nil.
func ErrorAttr(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: KeyError, Value: slog.StringValue("")}
	}
	return slog.Attr{Key: KeyError, Value: slog.StringValue(err.Error())}
}

// FileAttr returns an attribute for a release file path.
func FileAttr(file string) slog.Attr {
	return slog.String(KeyFile, file)
}

// StrategyAttr returns an attribute naming the parsing strategy in use.
func StrategyAttr(name fmt.Stringer) slog.Attr {
	return slog.String(KeyStrategy, name.String())
}

// SetTraceLogger sets the logger that receives the internal trace messages.
func SetTraceLogger(l TraceLogger) {
	trace = sync.OnceValue(func() TraceLogger { return l })
}

// Trace is for platform's internal trace logging that must be separately enabled by
// providing a [TraceLogger] logger, which is implemented by slog.Logger.
func Trace(ctx context.Context, msg string, keysAndValues ...any) {
	trace().Log(ctx, slog.LevelDebug, msg, keysAndValues...)
}

// TraceLogger is implemented by slog.Logger.
type TraceLogger interface {
	Log(ctx context.Context, level slog.Level, msg string, keysAndValues ...any)
}

// NewText returns a slog text logger writing to out at the given level.
// Timestamps are left out, the consuming program can add them if it wants.
func NewText(out io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return attr
		},
	}))
}

// Logger interface is implemented by slog.Logger and some other logging packages
// and can be easily used via a wrapper with any other logging system.
// The functions are not sprintf-style. Keys and values are key-value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

type withAttrs struct {
	logger Logger
	attrs  []any
}

func (w *withAttrs) kv(kv []any) []any {
	out := make([]any, 0, len(w.attrs)+len(kv))
	out = append(out, w.attrs...)
	return append(out, kv...)
}

func (w *withAttrs) Debug(msg string, keysAndValues ...any) {
	w.logger.Debug(msg, w.kv(keysAndValues)...)
}

func (w *withAttrs) Info(msg string, keysAndValues ...any) {
	w.logger.Info(msg, w.kv(keysAndValues)...)
}

func (w *withAttrs) Warn(msg string, keysAndValues ...any) {
	w.logger.Warn(msg, w.kv(keysAndValues)...)
}

func (w *withAttrs) Error(msg string, keysAndValues ...any) {
	w.logger.Error(msg, w.kv(keysAndValues)...)
}

// WithAttrs returns a logger that prepends attrs to every message.
func WithAttrs(logger Logger, attrs ...any) Logger {
	return &withAttrs{logger, attrs}
}

// LoggerInjectable is a struct that can be embedded in other structs to provide a logger and a log setter.
type LoggerInjectable struct {
	logger Logger
}

// SetLogger sets the logger for the embedding object.
func (li *LoggerInjectable) SetLogger(logger Logger) {
	li.logger = logger
}

// HasLogger returns true if a logger has been set.
func (li *LoggerInjectable) HasLogger() bool {
	return li.logger != nil && li.logger != Null
}

// Log returns the logger for the embedding object.
func (li *LoggerInjectable) Log() Logger {
	if li.logger == nil {
		return Null
	}
	return li.logger
}

// LogWithAttrs returns the embedded logger with attrs prepended.
func (li *LoggerInjectable) LogWithAttrs(attrs ...any) Logger {
	return WithAttrs(li.Log(), attrs...)
}
