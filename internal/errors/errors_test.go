package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	base := fmt.Errorf("open data/processed/merged_panel.csv: %w", ErrMissingInput)

	err := Wrap("analyze", "read merged panel", base)
	require.Error(t, err)
	assert.Equal(t, "analyze: read merged panel: open data/processed/merged_panel.csv: required input file missing", err.Error())

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "analyze", stageErr.Stage)
	assert.Equal(t, "read merged panel", stageErr.Op)
	assert.Equal(t, base, stageErr.Unwrap())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap("merge", "join panels", nil))
}

func TestWrapPreservesSentinels(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
	}{
		{"missing input", ErrMissingInput},
		{"duplicate key", ErrDuplicateKey},
		{"row count changed", ErrRowCountChanged},
		{"quality check", ErrQualityCheck},
		{"not found", ErrNotFound},
		{"no observations", ErrNoObservations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap("merge", "quality checks", fmt.Errorf("details: %w", tt.sentinel))
			assert.True(t, Is(wrapped, tt.sentinel))
			assert.False(t, Is(wrapped, fmt.Errorf("unrelated")))
		})
	}
}
