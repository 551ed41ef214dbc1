package logger

import (
	"log/slog"
	"os"
)

var base = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Init configures the process-wide logger. Production gets JSON at info
// level, everything else gets text at debug level.
func Init(environment string) {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	base = slog.New(handler)
}

// normalize tolerates a trailing bare value (commonly an error) so that
// logger.Error("failed to load", err) still produces a keyed attribute.
func normalize(args []any) []any {
	if len(args)%2 == 1 {
		keyed := make([]any, 0, len(args)+1)
		keyed = append(keyed, args[:len(args)-1]...)
		keyed = append(keyed, "error", args[len(args)-1])
		return keyed
	}
	return args
}

func Debug(msg string, args ...any) {
	base.Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	base.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	base.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	base.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	base.Error(msg, normalize(args)...)
	os.Exit(1)
}
