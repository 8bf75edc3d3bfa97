package startup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/lux-bot/lux/internal/config"
)

// ResolveConfig loads the main config from path, or returns config.Default
// when path does not exist.
func ResolveConfig(logger *zap.Logger, path string) (config.Config, error) {
	return resolveFile(logger, path, "Using config file.", config.Default, config.LoadFromPath)
}

// ResolveCogConfig loads the cog config from path, or returns
// config.DefaultCog when path does not exist.
func ResolveCogConfig(logger *zap.Logger, path string) (config.CogConfig, error) {
	return resolveFile(logger, path, "Using cog config file.", config.DefaultCog, config.LoadCogFromPath)
}

func resolveFile[T any](logger *zap.Logger, path, usingMsg string, def func() T, load func(string) (T, error)) (T, error) {
	if !fileExists(path) {
		logger.Warn("File does not exist.", zap.String("path", path))
		return def(), nil
	}

	logger.Info(usingMsg, zap.String("path", path))
	v, err := load(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s: %w", path, err)
	}
	return v, nil
}

// fileExists reports false only when path is definitely absent. Other stat
// failures count as present so that the loader reports them.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
