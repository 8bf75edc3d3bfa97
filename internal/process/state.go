// Package process holds the state established once during startup and read by
// the rest of the bot: the run mode and the environment snapshot.
package process

import "github.com/lux-bot/lux/internal/env"

// State is written by the startup pipeline before the application is built
// and is read-only afterwards, so it carries no lock.
type State struct {
	production bool
	env        *env.Env
}

// NewState returns an empty State in debug mode with no environment snapshot.
func NewState() *State {
	return &State{}
}

// SetProduction records the run mode. The last call wins.
func (s *State) SetProduction(production bool) {
	s.production = production
}

// Production reports whether the bot runs in production mode.
func (s *State) Production() bool {
	return s.production
}

// SetEnv publishes the environment snapshot.
func (s *State) SetEnv(e *env.Env) {
	s.env = e
}

// Env returns the published snapshot, or nil before the env resolver ran.
func (s *State) Env() *env.Env {
	return s.env
}
