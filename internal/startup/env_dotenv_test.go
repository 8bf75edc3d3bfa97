//go:build !nodotenv

package startup

import (
	"os"
	"testing"

	"github.com/lux-bot/lux/internal/env"
	"github.com/lux-bot/lux/internal/process"
)

func TestResolveEnvMergesIntoProcessEnvironment(t *testing.T) {
	t.Setenv("LUX_RESOLVE_KEPT", "ambient")
	t.Setenv("LUX_RESOLVE_ADDED", "")
	os.Unsetenv("LUX_RESOLVE_ADDED")

	logger, _ := newObservedLogger()
	state := process.NewState()
	path := writeFile(t, ".env", "LUX_RESOLVE_ADDED=from-file\nLUX_RESOLVE_KEPT=from-file\n")

	if err := ResolveEnv(logger, env.DotenvLoader{}, state, path); err != nil {
		t.Fatalf("ResolveEnv returned error: %v", err)
	}

	if got := os.Getenv("LUX_RESOLVE_ADDED"); got != "from-file" {
		t.Fatalf("expected file entry in ambient environment, got %q", got)
	}
	if got := state.Env().Get("LUX_RESOLVE_ADDED"); got != "from-file" {
		t.Fatalf("expected snapshot to contain file entry, got %q", got)
	}
	if got := state.Env().Get("LUX_RESOLVE_KEPT"); got != "ambient" {
		t.Fatalf("expected ambient value to win, got %q", got)
	}
}
