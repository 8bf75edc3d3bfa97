package startup

import (
	"go.uber.org/zap"

	"github.com/lux-bot/lux/internal/env"
	"github.com/lux-bot/lux/internal/process"
)

// ResolveEnv merges the .env file at path into the process environment when
// it exists and loader is available, then publishes a fresh snapshot to
// state. The snapshot is published on every path, including a failed load.
func ResolveEnv(logger *zap.Logger, loader env.Loader, state *process.State, path string) error {
	var err error
	switch {
	case !fileExists(path):
		logger.Warn("File does not exist.", zap.String("path", path))
	case loader == nil || !loader.Available():
		logger.Warn("dotenv support is not available. Skipping load .env file.", zap.String("path", path))
	default:
		logger.Info("Using .env file.", zap.String("path", path))
		err = loader.Load(path)
	}

	state.SetEnv(env.New())
	return err
}
