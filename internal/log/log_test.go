package log

import (
	"context"
	"log/slog"
	"testing"
)

func TestLoggerFromContextDefault(t *testing.T) {
	if l := LoggerFromContext(context.Background()); l != slog.Default() {
		t.Fatalf("expected the default logger for an empty context")
	}
}

func TestLoggerFromContext(t *testing.T) {
	logger := slog.Default().With(slog.String("target", "test"))
	ctx := ContextWithLogger(context.Background(), logger)
	if l := LoggerFromContext(ctx); l != logger {
		t.Fatalf("expected the logger stored in the context")
	}
}

func TestGetLogLevel(t *testing.T) {
	defer func() { Debug = false }()
	Debug = false
	if l := GetLogLevel(); l != slog.LevelInfo {
		t.Errorf("GetLogLevel() = %v; want %v", l, slog.LevelInfo)
	}
	Debug = true
	if l := GetLogLevel(); l != slog.LevelDebug {
		t.Errorf("GetLogLevel() = %v; want %v", l, slog.LevelDebug)
	}
}
