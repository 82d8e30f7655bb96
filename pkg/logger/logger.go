// Package logger provides the structured, levelled logger used across the
// POS backend. It is a thin layer over log/slog.
//
// Handlers should log through WithCtx so every line carries the request id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_id", order.ID)
//	// → time=... level=INFO msg="order created" request_id=6f1c... order_id=7
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// L is the process-wide base logger.
var L *slog.Logger

func init() {
	Setup("local")
}

// Setup replaces the base logger. Production environments log JSON at INFO,
// everything else logs text at DEBUG. Any extra handlers receive every record
// as well (e.g. the MongoDB sink).
func Setup(env string, extra ...slog.Handler) {
	L = slog.New(NewHandler(env, os.Stdout, extra...))
	slog.SetDefault(L)
}

// NewHandler builds the handler Setup installs, writing to w.
func NewHandler(env string, w io.Writer, extra ...slog.Handler) slog.Handler {
	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if len(extra) == 0 {
		return handler
	}
	return NewMultiHandler(append([]slog.Handler{handler}, extra...)...)
}

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored by InjectLogger, or the
// base logger when ctx carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the request logging middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
