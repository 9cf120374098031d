package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with the application's logging helpers
type Logger struct {
	*slog.Logger
}

// New creates a logger configured from GIN_MODE and LOG_LEVEL
func New() *Logger {
	return NewWithOptions(os.Getenv("LOG_LEVEL"), gin.Mode() == gin.DebugMode)
}

// NewWithOptions creates a stdout logger at level. Development loggers write
// text, everything else writes JSON.
func NewWithOptions(level string, development bool) *Logger {
	slogLevel := getLogLevel(level)

	opts := &slog.HandlerOptions{
		Level:     slogLevel,
		AddSource: slogLevel == slog.LevelDebug,
	}

	var handler slog.Handler
	if development {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return NewWithHandler(handler)
}

// NewWithHandler builds a Logger on top of handler. Records logged with a
// context carrying a request ID get a request_id attribute.
func NewWithHandler(handler slog.Handler) *Logger {
	return &Logger{Logger: slog.New(requestIDHandler{next: handler})}
}

func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
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

// Request ID propagation

type requestIDKey struct{}

// ContextWithRequestID returns a copy of ctx carrying id
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID stored in ctx, or ""
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type requestIDHandler struct {
	next slog.Handler
}

func (h requestIDHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h requestIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.next.Handle(ctx, r)
}

func (h requestIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestIDHandler{next: h.next.WithAttrs(attrs)}
}

func (h requestIDHandler) WithGroup(name string) slog.Handler {
	return requestIDHandler{next: h.next.WithGroup(name)}
}

// HTTP logging

// LogHTTPRequest logs a served request. 5xx responses are logged as errors
// and 4xx as warnings.
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	status := c.Writer.Status()
	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	l.Logger.LogAttrs(c.Request.Context(), level,
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("route", c.FullPath()),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", status),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Reservation logging

// LogSeatsReserved logs a committed reservation
func (l *Logger) LogSeatsReserved(ctx context.Context, reservationID string, seats []int, scattered bool) {
	l.Logger.InfoContext(ctx,
		"Seats Reserved",
		slog.String("reservation_id", reservationID),
		slog.Any("seats", seats),
		slog.Int("count", len(seats)),
		slog.Bool("scattered", scattered),
	)
}

// LogReservationRejected logs a request that did not produce seats
func (l *Logger) LogReservationRejected(ctx context.Context, count int, outcome string) {
	l.Logger.WarnContext(ctx,
		"Reservation Rejected",
		slog.Int("count", count),
		slog.String("outcome", outcome),
	)
}

// LogRateLimitExceeded logs a request refused by the rate limiter
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// ErrorWithContext logs msg at error level with err and fields attached
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)+1)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

var defaultLogger = New()

// GetDefault returns the process-wide logger
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault replaces the process-wide logger
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
