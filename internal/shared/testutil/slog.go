// Package testutil provides test helpers shared across packages.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// LogRecord is one captured log entry.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is a slog.Handler that records every entry in memory so
// tests can assert on what a stage logged.
type CaptureHandler struct {
	mu      sync.Mutex
	attrs   []slog.Attr
	records *[]LogRecord
}

// NewTestLogger returns a logger backed by a capture handler.
func NewTestLogger() (*slog.Logger, *CaptureHandler) {
	h := &CaptureHandler{records: &[]LogRecord{}}
	return slog.New(h), h
}

func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

func (h *CaptureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CaptureHandler{
		attrs:   append(append([]slog.Attr{}, h.attrs...), attrs...),
		records: h.records,
	}
}

func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Records returns a copy of everything captured so far.
func (h *CaptureHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(*h.records))
	copy(out, *h.records)
	return out
}

// ContainsMessage reports whether any captured entry contains the substring.
func (h *CaptureHandler) ContainsMessage(message string) bool {
	for _, r := range h.Records() {
		if strings.Contains(r.Message, message) {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level entries.
func (h *CaptureHandler) ErrorCount() int {
	n := 0
	for _, r := range h.Records() {
		if r.Level >= slog.LevelError {
			n++
		}
	}
	return n
}
