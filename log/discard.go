package log

import (
	"context"
	"log/slog"
)

// Discard is a slog.Handler that drops every record.
var Discard slog.Handler = discardHandler{}

type discardHandler struct{}

func (h discardHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (h discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (h discardHandler) WithAttrs(_ []slog.Attr) slog.Handler          { return h }
func (h discardHandler) WithGroup(_ string) slog.Handler               { return h }
