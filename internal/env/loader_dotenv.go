//go:build !nodotenv

package env

import (
	"fmt"

	"github.com/joho/godotenv"
)

// DotenvLoader loads .env files with godotenv.
type DotenvLoader struct{}

// DefaultLoader returns the loader selected at build time.
func DefaultLoader() Loader {
	return DotenvLoader{}
}

// Available always returns true.
func (DotenvLoader) Available() bool { return true }

// Load merges path into the process environment without overriding existing values.
func (DotenvLoader) Load(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load dotenv file path=%s: %w", path, err)
	}
	return nil
}
