// Package env captures the process environment after the .env file has been
// merged into it, and provides the loaders that perform that merge.
package env

import (
	"os"
	"sort"
	"strings"
)

// EnvToken names the variable holding the bot token.
const EnvToken = "LUX_TOKEN"

// Env is an immutable snapshot of the process environment.
type Env struct {
	vars map[string]string
}

// New captures the current process environment.
func New() *Env {
	return FromPairs(os.Environ())
}

// FromPairs builds a snapshot from KEY=VALUE pairs. Later duplicates win.
func FromPairs(pairs []string) *Env {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = value
	}
	return &Env{vars: vars}
}

// Lookup reports the value of key and whether it was set.
func (e *Env) Lookup(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.vars[key]
	return v, ok
}

// Get returns the value of key, or "" when unset.
func (e *Env) Get(key string) string {
	v, _ := e.Lookup(key)
	return v
}

// Token returns the trimmed bot token.
func (e *Env) Token() string {
	return strings.TrimSpace(e.Get(EnvToken))
}

// Keys returns the sorted variable names. Values are never listed.
func (e *Env) Keys() []string {
	if e == nil {
		return nil
	}
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
