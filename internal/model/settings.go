package model

import "time"

// Version of sympath, set here so every surface (CLI, TUI, web) agrees.
const Version = "0.4.0"

// Settings is the immutable configuration for a sync session.
// Build it once at startup (see internal/config) and pass it around by
// value; nothing mutates it after that.
type Settings struct {
	SymbolServer string        // fixed prefix, segment 0 of the search path
	Variable     string        // environment variable to maintain
	Application  string        // image name of the debuggee to track
	PollInterval time.Duration // how often the watcher looks for the debuggee
}

// DefaultPollInterval is deliberately coarse. The debuggee does not move
// on disk while running, so there is no point hammering the process list.
const DefaultPollInterval = 5 * time.Second

// Normalized returns a copy with empty fields replaced by defaults.
func (s Settings) Normalized() Settings {
	if s.Variable == "" {
		s.Variable = DefaultVariable
	}
	if s.PollInterval <= 0 {
		s.PollInterval = DefaultPollInterval
	}
	return s
}
