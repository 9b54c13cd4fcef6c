// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

// Package logging contains the structured logging setup for the Zoom report client.
package logging

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey string

// Public constants
const (
	ErrKey = "error"
)

// Private constants
const (
	slogFields      ctxKey = "slog_fields"
	logLevelDefault        = slog.LevelInfo

	// Log levels
	debug = "debug"
	warn  = "warn"
	err   = "error"
	info  = "info"
)

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	return h.Handler.Handle(ctx, r)
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		v = append(v, attr)
		return context.WithValue(parent, slogFields, v)
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// InitStructureLogConfig sets the structured log behavior. Logs go to stderr so
// tabular output written to stdout stays clean.
func InitStructureLogConfig() slog.Handler {
	logOptions := &slog.HandlerOptions{}

	switch os.Getenv("LOG_LEVEL") {
	case debug:
		logOptions.Level = slog.LevelDebug
	case warn:
		logOptions.Level = slog.LevelWarn
	case err:
		logOptions.Level = slog.LevelError
	case info:
		logOptions.Level = slog.LevelInfo
	default:
		logOptions.Level = logLevelDefault
	}

	addSource := os.Getenv("LOG_ADD_SOURCE")
	logOptions.AddSource = addSource == "true" || addSource == "t" || addSource == "1"

	h := slog.NewJSONHandler(os.Stderr, logOptions)
	slog.SetDefault(slog.New(contextHandler{h}))

	return h
}
