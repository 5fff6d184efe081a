package types

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	LevelTrace = slog.Level(slog.LevelDebug - 1)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var logLevelMap = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}

func ParseLevel(level string) (slog.Level, error) {
	l, ok := logLevelMap[strings.ToLower(level)]
	if !ok {
		return LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

// LevelName undoes ParseLevel so that trace shows up by name in the logs.
func LevelName(l slog.Level) string {
	if l == LevelTrace {
		return "TRACE"
	}
	return l.String()
}
