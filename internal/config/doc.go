// Package config provides centralized configuration and path management for
// the pipeline stages.
//
// Configuration is loaded from environment variables (prefix TPS) layered
// over an optional config.yaml next to the executable, then validated.
// The Paths type is the single source of truth for every file the pipeline
// reads or writes; all paths resolve relative to the executable directory so
// the stage binaries behave identically regardless of working directory.
package config
