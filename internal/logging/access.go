package logging

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// AccessLog returns chi middleware that writes one record per request to log.
// Mount it after middleware.RequestID so records carry the request id.
func AccessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return middleware.RequestLogger(&accessFormatter{log: log})
}

type accessFormatter struct {
	log *slog.Logger
}

func (f *accessFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &accessEntry{
		log: f.log,
		ctx: r.Context(),
		attrs: []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		},
	}
}

type accessEntry struct {
	log   *slog.Logger
	ctx   context.Context
	attrs []slog.Attr
}

func (e *accessEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs := append(e.attrs,
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Duration("elapsed", elapsed),
	)
	e.log.LogAttrs(e.ctx, level, "http request", attrs...)
}

func (e *accessEntry) Panic(v interface{}, stack []byte) {
	e.log.LogAttrs(e.ctx, slog.LevelError, "http panic",
		append(e.attrs, slog.Any("panic", v), slog.String("stack", string(stack)))...)
}
