package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerMirrorReceivesBoundAttributes(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core)).With("component", "mailer")

	var (
		gotMsg  string
		gotArgs []any
	)
	SetMirror(func(_ context.Context, _ Level, msg string, args ...any) {
		gotMsg = msg
		gotArgs = args
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.InfoContext(context.Background(), "email sent", "template", "welcome")

	if logs.Len() != 1 {
		t.Fatalf("expected one zap entry, got %d", logs.Len())
	}
	if gotMsg != "email sent" {
		t.Fatalf("unexpected mirrored message: %q", gotMsg)
	}
	want := []any{"component", "mailer", "template", "welcome"}
	if len(gotArgs) != len(want) {
		t.Fatalf("unexpected mirrored args: %+v", gotArgs)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Fatalf("mirrored arg %d: want %v got %v", i, want[i], gotArgs[i])
		}
	}
}

func TestLoggerMirrorSkipsFilteredLevels(t *testing.T) {
	core, _ := observer.New(zapcore.WarnLevel)
	logger := FromZap(zap.New(core))

	called := false
	SetMirror(func(context.Context, Level, string, ...any) { called = true })
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("noise")
	if called {
		t.Fatalf("mirror must not receive records below the core level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"fatal":   LevelInfo,
		"loud":    LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerFieldsAndSyncOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := FromZap(zap.New(core))
	child := base.With("request_id", "r-1")

	child.Warn("slow query", "table", "report_cards", "dangling")
	entry := logs.All()[0]
	ctxFields := entry.ContextMap()
	if ctxFields["request_id"] != "r-1" || ctxFields["table"] != "report_cards" {
		t.Fatalf("unexpected fields: %+v", ctxFields)
	}
	if v, ok := ctxFields["dangling"]; !ok || v != nil {
		t.Fatalf("expected dangling key with nil value, got %+v", ctxFields)
	}

	if err := child.Sync(); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if !base.synced.Load() {
		t.Fatal("expected derived logger to share sync state")
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(nil) })

	var l *Logger
	l.Info("from nil")
	if logs.Len() != 1 {
		t.Fatalf("expected default logger to receive the record, got %d", logs.Len())
	}
}
