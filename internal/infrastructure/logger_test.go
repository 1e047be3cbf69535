package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.input), tt.input)
	}
}

func TestRunHandlerInjectsRunID(t *testing.T) {
	var buf bytes.Buffer
	handler := &runHandler{Handler: slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler)

	ctx := WithRunID(context.Background(), "run-123")
	logger.InfoContext(ctx, "stage started")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "run-123", record["run_id"])
	assert.Equal(t, "stage started", record["msg"])
}

func TestRunHandlerWithoutRunID(t *testing.T) {
	var buf bytes.Buffer
	handler := &runHandler{Handler: slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler)

	logger.InfoContext(context.Background(), "no run id")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	_, present := record["run_id"]
	assert.False(t, present)
}

func TestRunHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := &runHandler{Handler: slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler).With("stage", "acquire")

	ctx := WithRunID(context.Background(), "run-456")
	logger.InfoContext(ctx, "with attrs")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "acquire", record["stage"])
	assert.Equal(t, "run-456", record["run_id"])
}

func TestGetLoggerFallsBackToDefault(t *testing.T) {
	if globalLogger != nil {
		t.Skip("global logger already initialized by another test")
	}
	assert.NotNil(t, GetLogger())
}
