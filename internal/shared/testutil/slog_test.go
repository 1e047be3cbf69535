package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureHandler(t *testing.T) {
	logger, h := NewTestLogger()

	logger.Info("panel built", "rows", 42)
	logger.Error("merge failed")

	records := h.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "panel built", records[0].Message)
	assert.Equal(t, slog.LevelInfo, records[0].Level)
	assert.EqualValues(t, 42, records[0].Attrs["rows"])

	assert.True(t, h.ContainsMessage("merge"))
	assert.False(t, h.ContainsMessage("absent"))
	assert.Equal(t, 1, h.ErrorCount())
}

func TestCaptureHandlerWithAttrs(t *testing.T) {
	logger, h := NewTestLogger()

	logger.With("stage", "merge").Info("started")

	records := h.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "merge", records[0].Attrs["stage"])
}
