package cogs

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/lux-bot/lux/internal/config"
)

const maxNameLength = 32

var (
	// ErrUnknownCog is returned for cogs that are not registered.
	ErrUnknownCog = errors.New("unknown cog")
	// ErrInvalidCogName indicates a name outside [a-z0-9_-] or longer than 32 bytes.
	ErrInvalidCogName = errors.New("cog names must be 1-32 characters of a-z, 0-9, '_' or '-'")
)

// Cog is a pluggable bot module together with its state and settings.
type Cog struct {
	Name     string         `json:"name"`
	Enabled  bool           `json:"enabled"`
	Settings map[string]any `json:"settings,omitempty"`
}

// Registry provides access to the known cogs.
type Registry interface {
	List() []Cog
	Get(name string) (Cog, error)
	SetEnabled(name string, enabled bool) error
	EnabledCount() int
}

// MemoryRegistry keeps cogs in-memory and guards access with a RWMutex.
type MemoryRegistry struct {
	mu   sync.RWMutex
	cogs map[string]*Cog
}

// NewMemoryRegistry registers every cog named in cfg. A cog listed both as
// enabled and disabled ends up disabled.
func NewMemoryRegistry(cfg config.CogConfig) (*MemoryRegistry, error) {
	settings, err := normalizeSettings(cfg.Settings)
	if err != nil {
		return nil, err
	}

	r := &MemoryRegistry{cogs: make(map[string]*Cog, len(cfg.Enabled)+len(cfg.Disabled))}
	for _, raw := range cfg.Enabled {
		if err := r.register(raw, true, settings); err != nil {
			return nil, err
		}
	}
	for _, raw := range cfg.Disabled {
		if err := r.register(raw, false, settings); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// normalizeSettings keys settings by normalized cog name. Two keys that
// normalize to the same name are rejected.
func normalizeSettings(raw map[string]map[string]any) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(raw))
	for key, settings := range raw {
		name, err := normalizeName(key)
		if err != nil {
			return nil, fmt.Errorf("settings %q: %w", key, err)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("settings for cog %q given more than once", name)
		}
		out[name] = settings
	}
	return out, nil
}

func (r *MemoryRegistry) register(raw string, enabled bool, settings map[string]map[string]any) error {
	name, err := normalizeName(raw)
	if err != nil {
		return fmt.Errorf("register %q: %w", raw, err)
	}
	if cog, ok := r.cogs[name]; ok {
		cog.Enabled = cog.Enabled && enabled
		return nil
	}
	r.cogs[name] = &Cog{Name: name, Enabled: enabled, Settings: maps.Clone(settings[name])}
	return nil
}

// List returns a copy of every cog sorted by name.
func (r *MemoryRegistry) List() []Cog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Cog, 0, len(r.cogs))
	for _, cog := range r.cogs {
		out = append(out, cloneCog(cog))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns a copy of the named cog.
func (r *MemoryRegistry) Get(name string) (Cog, error) {
	normalized, err := normalizeName(name)
	if err != nil {
		return Cog{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cog, ok := r.cogs[normalized]
	if !ok {
		return Cog{}, fmt.Errorf("%w: %s", ErrUnknownCog, normalized)
	}
	return cloneCog(cog), nil
}

// SetEnabled toggles a registered cog.
func (r *MemoryRegistry) SetEnabled(name string, enabled bool) error {
	normalized, err := normalizeName(name)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cog, ok := r.cogs[normalized]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCog, normalized)
	}
	cog.Enabled = enabled
	return nil
}

// EnabledCount returns the number of enabled cogs.
func (r *MemoryRegistry) EnabledCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, cog := range r.cogs {
		if cog.Enabled {
			n++
		}
	}
	return n
}

func cloneCog(c *Cog) Cog {
	out := *c
	out.Settings = maps.Clone(c.Settings)
	return out
}

func normalizeName(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" || len(name) > maxNameLength {
		return "", ErrInvalidCogName
	}
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == '_', ch == '-':
		default:
			return "", ErrInvalidCogName
		}
	}
	return name, nil
}
