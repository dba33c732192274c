// Package logger wraps log/slog with the handful of structured helpers the
// API uses for request, booking and broker logging.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with domain helpers.
type Logger struct {
	*slog.Logger
}

// New builds a logger writing to stdout. Level comes from LOG_LEVEL; env
// "dev" selects the text handler, anything else emits JSON.
func New(env string) *Logger {
	return NewWithWriter(os.Stdout, env, os.Getenv("LOG_LEVEL"))
}

// NewWithWriter is New with an explicit destination and level string.
func NewWithWriter(w io.Writer, env, level string) *Logger {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}
	var h slog.Handler
	if strings.EqualFold(env, "dev") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return &Logger{Logger: slog.New(h)}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// WithUserID adds the acting user to every record.
func (l *Logger) WithUserID(userID uint64) *Logger {
	return &Logger{Logger: l.Logger.With(slog.Uint64("user_id", userID))}
}

// WithError adds err to every record.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// WithComponent tags records with the emitting subsystem.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("component", name))}
}

// LogSeatsBooked records a committed booking.
func (l *Logger) LogSeatsBooked(ctx context.Context, userID, screeningID uint64, seatIDs []uint64) {
	l.Logger.InfoContext(ctx, "seats booked",
		slog.Uint64("user_id", userID),
		slog.Uint64("screening_id", screeningID),
		slog.Any("seat_ids", seatIDs),
	)
}

// LogSeatsCancelled records a committed cancellation.
func (l *Logger) LogSeatsCancelled(ctx context.Context, userID, screeningID uint64, seatIDs []uint64) {
	l.Logger.InfoContext(ctx, "bookings cancelled",
		slog.Uint64("user_id", userID),
		slog.Uint64("screening_id", screeningID),
		slog.Any("seat_ids", seatIDs),
	)
}
