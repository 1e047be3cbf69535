// Package shared holds utilities used across the pipeline stages that do
// not belong to any single package.
//
// The testutil subpackage provides an in-memory slog handler so tests can
// assert on what the stages log.
package shared
