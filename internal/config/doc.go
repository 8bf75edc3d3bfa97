// Package config defines the main bot configuration and the cog configuration.
// Both are YAML files whose values are overlaid on built-in defaults, so a
// loaded value is always complete. Deciding whether a file is used at all is
// left to the caller.
package config
