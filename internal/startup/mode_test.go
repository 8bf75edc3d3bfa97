package startup

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lux-bot/lux/internal/process"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		wantLevel  zapcore.Level
		wantMsg    string
	}{
		{name: "debug", production: false, wantLevel: zapcore.DebugLevel, wantMsg: "Running in debug mode."},
		{name: "production", production: true, wantLevel: zapcore.InfoLevel, wantMsg: "Running in production mode."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger, logs := newObservedLogger()
			level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
			state := process.NewState()
			state.SetProduction(!tc.production)

			got := ResolveMode(logger, level, state, tc.production)

			if got != tc.production {
				t.Fatalf("expected %v to be returned, got %v", tc.production, got)
			}
			if level.Level() != tc.wantLevel {
				t.Fatalf("expected level %s, got %s", tc.wantLevel, level.Level())
			}
			if state.Production() != tc.production {
				t.Fatalf("expected state production=%v", tc.production)
			}
			if logs.Len() != 1 {
				t.Fatalf("expected exactly one log line, got %d", logs.Len())
			}
			assertSingleLog(t, logs, zapcore.InfoLevel, tc.wantMsg, "")
		})
	}
}
