package startup

import (
	"errors"
	"os"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/lux-bot/lux/internal/env"
	"github.com/lux-bot/lux/internal/process"
)

type fakeLoader struct {
	available bool
	err       error
	loaded    []string
}

func (f *fakeLoader) Available() bool { return f.available }

func (f *fakeLoader) Load(path string) error {
	f.loaded = append(f.loaded, path)
	return f.err
}

func TestResolveEnvMissingFile(t *testing.T) {
	logger, logs := newObservedLogger()
	loader := &fakeLoader{available: true}
	state := process.NewState()
	path := missingPath(t, "missing.env")

	if err := ResolveEnv(logger, loader, state, path); err != nil {
		t.Fatalf("ResolveEnv returned error: %v", err)
	}
	if len(loader.loaded) != 0 {
		t.Fatalf("expected no load attempt, got %v", loader.loaded)
	}
	if state.Env() == nil {
		t.Fatalf("expected env snapshot to be published")
	}
	assertSingleLog(t, logs, zapcore.WarnLevel, "File does not exist.", path)
}

func TestResolveEnvLoaderUnavailable(t *testing.T) {
	for _, loader := range []env.Loader{&fakeLoader{available: false}, env.NoopLoader{}, nil} {
		logger, logs := newObservedLogger()
		state := process.NewState()
		path := writeFile(t, ".env", "LUX_RESOLVE_UNAVAILABLE=1\n")

		if err := ResolveEnv(logger, loader, state, path); err != nil {
			t.Fatalf("ResolveEnv returned error: %v", err)
		}
		if fl, ok := loader.(*fakeLoader); ok && len(fl.loaded) != 0 {
			t.Fatalf("expected no load attempt, got %v", fl.loaded)
		}
		if _, ok := os.LookupEnv("LUX_RESOLVE_UNAVAILABLE"); ok {
			t.Fatalf("expected ambient environment to stay unchanged")
		}
		if state.Env() == nil {
			t.Fatalf("expected env snapshot to be published")
		}
		assertSingleLog(t, logs, zapcore.WarnLevel, "dotenv support is not available. Skipping load .env file.", path)
	}
}

func TestResolveEnvLoadsExistingFile(t *testing.T) {
	logger, logs := newObservedLogger()
	loader := &fakeLoader{available: true}
	state := process.NewState()
	path := writeFile(t, ".env", "A=1\n")

	if err := ResolveEnv(logger, loader, state, path); err != nil {
		t.Fatalf("ResolveEnv returned error: %v", err)
	}
	if len(loader.loaded) != 1 || loader.loaded[0] != path {
		t.Fatalf("expected one load of %s, got %v", path, loader.loaded)
	}
	if state.Env() == nil {
		t.Fatalf("expected env snapshot to be published")
	}
	assertSingleLog(t, logs, zapcore.InfoLevel, "Using .env file.", path)
}

func TestResolveEnvLoadErrorStillPublishes(t *testing.T) {
	logger, _ := newObservedLogger()
	loadErr := errors.New("bad syntax")
	loader := &fakeLoader{available: true, err: loadErr}
	state := process.NewState()

	err := ResolveEnv(logger, loader, state, writeFile(t, ".env", "=\n"))
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if state.Env() == nil {
		t.Fatalf("expected env snapshot to be published even on failure")
	}
}
