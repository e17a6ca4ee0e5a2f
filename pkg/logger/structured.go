package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var zlog zerolog.Logger

// Init sets up the process-wide logger. Development environments get a
// human-readable console writer; everything else emits JSON lines.
// LOG_LEVEL overrides the default info level.
func Init(env string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var w io.Writer = os.Stdout
	switch env {
	case "development", "dev", "local":
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			level = parsed
		}
	}

	zlog = zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "adec-web").
		Logger()
}

// Get returns the global logger
func Get() *zerolog.Logger {
	return &zlog
}

// WithRequestID returns a child logger carrying the request id
func WithRequestID(requestID string) zerolog.Logger {
	return zlog.With().Str("request_id", requestID).Logger()
}

// WithMemberID returns a child logger carrying the acting member's id
func WithMemberID(memberID uint) zerolog.Logger {
	return zlog.With().Uint("member_id", memberID).Logger()
}
