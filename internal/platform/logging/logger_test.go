package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_ContextFieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("component", "pipeline")

	logger.WarnContext(context.Background(), "cycle failed", "sport", "nba", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "pipeline" || fields["sport"] != "nba" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error field to be flattened, got %v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLogger_MirrorRespectsLevel(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	var mirrored []string
	SetMirror(func(_ context.Context, _ Level, msg string, _ ...any) {
		mirrored = append(mirrored, msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.DebugContext(context.Background(), "too chatty")
	logger.InfoContext(context.Background(), "cycle finished")

	if len(mirrored) != 1 || mirrored[0] != "cycle finished" {
		t.Fatalf("unexpected mirrored entries: %v", mirrored)
	}
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	logger.InfoContext(context.Background(), "no panic either")
}

func TestLogger_NonStringKeysAreNumbered(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Info("cycle finished", "games", 3, 42, "stray")

	fields := logs.All()[0].ContextMap()
	if fields["arg_1"] != "stray" {
		t.Fatalf("expected numbered key for non-string key, got %v", fields)
	}
}

func TestLogger_MirrorSkipsContextlessCalls(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	var mirrored int
	SetMirror(func(context.Context, Level, string, ...any) { mirrored++ })
	t.Cleanup(func() { SetMirror(nil) })

	logger.Warn("roster refresh failed")
	if mirrored != 0 {
		t.Fatalf("expected contextless call not to be mirrored, got %d", mirrored)
	}
}
