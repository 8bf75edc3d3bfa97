package startup

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lux-bot/lux/internal/process"
)

// ResolveMode publishes the run mode and lowers the log level to debug
// outside production. It returns production unchanged.
func ResolveMode(logger *zap.Logger, level zap.AtomicLevel, state *process.State, production bool) bool {
	if !production {
		level.SetLevel(zapcore.DebugLevel)
	}

	logger.Info("Running in " + modeName(production) + " mode.")
	state.SetProduction(production)
	return production
}

func modeName(production bool) string {
	if production {
		return "production"
	}
	return "debug"
}
