package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
)

// InitLogging configures the global zerolog logger. Output always goes to
// stdout; when logFilePath is set it is duplicated to the file as well.
func InitLogging(logFilePath, level string) {
	once.Do(func() {
		writers := []io.Writer{os.Stdout}

		if logFilePath != "" {
			file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
			if err != nil {
				os.Stderr.WriteString("failed to open log file: " + err.Error() + "\n")
			} else {
				writers = append(writers, file)
			}
		}

		lvl, err := zerolog.ParseLevel(level)
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}

		multi := zerolog.MultiLevelWriter(writers...)
		globalLogger = zerolog.New(multi).With().Timestamp().Logger().Level(lvl)
		log.Logger = globalLogger
	})
}

// WithFields returns a context carrying a logger extended with fields, so
// request-scoped values (employee id, route) ride along on every log line.
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	l := fromContext(ctx).With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

func fromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &globalLogger
	}
	return l
}

// Debug logs a debug level message.
func Debug(ctx context.Context, msg string, args ...interface{}) {
	fromContext(ctx).Debug().Msgf(msg, args...)
}

// Info logs an info level message.
func Info(ctx context.Context, msg string, args ...interface{}) {
	fromContext(ctx).Info().Msgf(msg, args...)
}

// Warn logs a warning level message.
func Warn(ctx context.Context, msg string, args ...interface{}) {
	fromContext(ctx).Warn().Msgf(msg, args...)
}

// Error logs msg with a structured error field when err is non-nil.
func Error(ctx context.Context, msg string, err error) {
	fromContext(ctx).Error().Err(err).Msg(msg)
}
