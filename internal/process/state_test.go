package process

import (
	"testing"

	"github.com/lux-bot/lux/internal/env"
)

func TestState(t *testing.T) {
	s := NewState()
	if s.Production() || s.Env() != nil {
		t.Fatalf("expected empty state")
	}

	s.SetProduction(true)
	snapshot := env.FromPairs([]string{"A=1"})
	s.SetEnv(snapshot)

	if !s.Production() {
		t.Fatalf("expected production mode")
	}
	if s.Env() != snapshot {
		t.Fatalf("expected published snapshot")
	}

	s.SetProduction(false)
	if s.Production() {
		t.Fatalf("expected last write to win")
	}
}
