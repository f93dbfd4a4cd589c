package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// SlogFormatter emits chi access log lines through slog so they share the
// application's handler and format.
type SlogFormatter struct {
	logger *slog.Logger
}

func NewSlogFormatter(logger *slog.Logger) *SlogFormatter {
	return &SlogFormatter{logger: logger}
}

func (f *SlogFormatter) NewLogEntry(r *http.Request) chiMiddleware.LogEntry {
	return &slogEntry{
		logger: f.logger.With(
			"request_id", chiMiddleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		),
		ctx: r.Context(),
	}
}

type slogEntry struct {
	ctx    context.Context
	logger *slog.Logger
}

func (e *slogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}
	e.logger.Log(e.ctx, level, "http request",
		"status", status,
		"bytes", bytes,
		"duration_ms", elapsed.Milliseconds(),
	)
}

func (e *slogEntry) Panic(v interface{}, stack []byte) {
	e.logger.ErrorContext(e.ctx, "http handler panic", "panic", v, "stack", string(stack))
}
