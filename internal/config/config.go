package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDirName            = "lux"
	configFileName        = "config.yaml"
	defaultName           = "lux"
	defaultAddr           = ":8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config holds the main bot settings. The zero value is not usable; build one
// with Default or LoadFromPath.
type Config struct {
	Name        string
	Prefixes    []string
	OwnerIDs    []string
	DebugGuilds []string
	HTTP        HTTPConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
}

// HTTPConfig configures the status API server.
type HTTPConfig struct {
	Addr                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
}

// RateLimitConfig configures the status API token bucket. Zero disables it.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LogConfig enables an optional rolling log file next to stdout.
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Name        string        `yaml:"name"`
	Prefixes    []string      `yaml:"prefixes"`
	OwnerIDs    []string      `yaml:"owner_ids"`
	DebugGuilds []string      `yaml:"debug_guilds"`
	HTTP        yamlHTTP      `yaml:"http"`
	RateLimit   yamlRateLimit `yaml:"rate_limit"`
	Log         yamlLog       `yaml:"log"`
}

type yamlHTTP struct {
	Addr                 string `yaml:"addr"`
	ShutdownGracePeriod  string `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string `yaml:"read_header_timeout"`
	WriteTimeout         string `yaml:"write_timeout"`
	IdleTimeout          string `yaml:"idle_timeout"`
	EnableRequestLogging *bool  `yaml:"enable_request_logging"`
}

// yamlRateLimit uses pointers so an explicit 0 can disable the limiter.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

type yamlLog struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfigPath returns the platform default location of the main config
// file, falling back to the working directory when no user config dir exists.
func DefaultConfigPath() string {
	return defaultPath(configFileName)
}

func defaultPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return name
	}
	return filepath.Join(dir, appDirName, name)
}

// Default returns the built-in configuration used when no config file exists.
func Default() Config {
	return Config{
		Name:     defaultName,
		Prefixes: []string{"!"},
		HTTP: HTTPConfig{
			Addr:                 defaultAddr,
			ShutdownGracePeriod:  10 * time.Second,
			ReadHeaderTimeout:    5 * time.Second,
			WriteTimeout:         15 * time.Second,
			IdleTimeout:          60 * time.Second,
			EnableRequestLogging: true,
		},
		RateLimit: RateLimitConfig{
			RPS:   defaultRateLimitRPS,
			Burst: defaultRateLimitBurst,
		},
		Log: LogConfig{
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 14,
		},
	}
}

// LoadFromPath reads a YAML config file and overlays it on Default.
// Unreadable, malformed or invalid files are reported as errors.
func LoadFromPath(path string) (Config, error) {
	var raw yamlConfig
	if err := readYAML(path, &raw); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := applyYAMLConfig(&cfg, &raw); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// readYAML decodes a YAML file into out. An empty file decodes to the zero value.
func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse YAML %s: %w", path, err)
	}
	return nil
}

func applyYAMLConfig(cfg *Config, raw *yamlConfig) error {
	if name := strings.TrimSpace(raw.Name); name != "" {
		cfg.Name = name
	}
	if len(raw.Prefixes) > 0 {
		cfg.Prefixes = raw.Prefixes
	}
	if len(raw.OwnerIDs) > 0 {
		cfg.OwnerIDs = raw.OwnerIDs
	}
	if len(raw.DebugGuilds) > 0 {
		cfg.DebugGuilds = raw.DebugGuilds
	}

	if raw.HTTP.Addr != "" {
		cfg.HTTP.Addr = raw.HTTP.Addr
	}
	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"http.shutdown_grace_period", raw.HTTP.ShutdownGracePeriod, &cfg.HTTP.ShutdownGracePeriod},
		{"http.read_header_timeout", raw.HTTP.ReadHeaderTimeout, &cfg.HTTP.ReadHeaderTimeout},
		{"http.write_timeout", raw.HTTP.WriteTimeout, &cfg.HTTP.WriteTimeout},
		{"http.idle_timeout", raw.HTTP.IdleTimeout, &cfg.HTTP.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	if raw.HTTP.EnableRequestLogging != nil {
		cfg.HTTP.EnableRequestLogging = *raw.HTTP.EnableRequestLogging
	}

	if raw.RateLimit.RPS != nil {
		cfg.RateLimit.RPS = *raw.RateLimit.RPS
	}
	if raw.RateLimit.Burst != nil {
		cfg.RateLimit.Burst = *raw.RateLimit.Burst
	}

	cfg.Log.File = strings.TrimSpace(raw.Log.File)
	if raw.Log.MaxSizeMB > 0 {
		cfg.Log.MaxSizeMB = raw.Log.MaxSizeMB
	}
	if raw.Log.MaxBackups > 0 {
		cfg.Log.MaxBackups = raw.Log.MaxBackups
	}
	if raw.Log.MaxAgeDays > 0 {
		cfg.Log.MaxAgeDays = raw.Log.MaxAgeDays
	}
	cfg.Log.Compress = raw.Log.Compress
	return nil
}

func validateConfig(cfg Config) error {
	if len(cfg.Prefixes) == 0 {
		return errors.New("prefixes cannot be empty")
	}
	for _, p := range cfg.Prefixes {
		if strings.TrimSpace(p) == "" {
			return errors.New("prefixes cannot contain blank entries")
		}
	}
	if cfg.HTTP.ShutdownGracePeriod <= 0 {
		return errors.New("http.shutdown_grace_period must be > 0")
	}
	if cfg.RateLimit.RPS < 0 {
		return errors.New("rate_limit.rps must be >= 0")
	}
	if cfg.RateLimit.Burst < 0 {
		return errors.New("rate_limit.burst must be >= 0")
	}
	return nil
}
