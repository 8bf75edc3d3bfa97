package startup

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func missingPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func assertSingleLog(t *testing.T, logs *observer.ObservedLogs, level zapcore.Level, msg, path string) {
	t.Helper()

	entries := logs.FilterMessage(msg).AllUntimed()
	if len(entries) != 1 {
		t.Fatalf("expected one %q log line, got %d (all: %v)", msg, len(entries), logs.AllUntimed())
	}
	if entries[0].Level != level {
		t.Fatalf("expected %q at %s, got %s", msg, level, entries[0].Level)
	}
	if path != "" {
		if got := entries[0].ContextMap()["path"]; got != path {
			t.Fatalf("expected path field %q, got %v", path, got)
		}
	}
}
