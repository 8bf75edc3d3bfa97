// Package application is the bot runtime handed over by the startup pipeline.
// It follows a two-phase lifecycle: Init wires the cog registry, metrics and
// the status API server; Run serves until the process is asked to stop.
package application
