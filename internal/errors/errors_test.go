package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisError(t *testing.T) {
	err := NewAnalysisError("ACME", "1d", "indicators",
		fmt.Errorf("%w: need more candles", ErrInsufficientData))

	assert.True(t, Is(err, ErrInsufficientData))
	assert.Contains(t, err.Error(), "ACME")
	assert.Contains(t, err.Error(), "indicators")

	var analysisErr *AnalysisError
	require.True(t, As(err, &analysisErr))
	assert.Equal(t, "1d", analysisErr.Timeframe)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))

	wrapped := Wrap(ErrInvalidParameter, "checking period")
	assert.True(t, Is(wrapped, ErrInvalidParameter))
	assert.Contains(t, wrapped.Error(), "checking period")

	formatted := Wrapf(ErrInvalidParameter, "period %d", -1)
	assert.True(t, Is(formatted, ErrInvalidParameter))
	assert.Contains(t, formatted.Error(), "period -1")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("period", -3, "must be positive")
	assert.Contains(t, err.Error(), "period")
	assert.Contains(t, err.Error(), "must be positive")
}
