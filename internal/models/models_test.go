package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeframeIntraday(t *testing.T) {
	assert.True(t, Timeframe1Min.Intraday())
	assert.True(t, Timeframe30Min.Intraday())
	assert.False(t, Timeframe1Hour.Intraday())
	assert.False(t, TimeframeDay.Intraday())
	assert.False(t, TimeframeWeek.Intraday())
}

func TestCandleHelpers(t *testing.T) {
	c := Candle{Open: 100, High: 110, Low: 95, Close: 105, Volume: 1000}
	assert.InDelta(t, 15, c.Range(), 1e-9)
	assert.InDelta(t, (110+95+105)/3.0, c.TypicalPrice(), 1e-9)
}

func TestSeriesExtraction(t *testing.T) {
	candles := []Candle{
		{Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
		{Open: 1.5, High: 3, Low: 1, Close: 2.5, Volume: 20},
	}

	assert.Equal(t, []float64{1.5, 2.5}, Closes(candles))
	assert.Equal(t, []float64{2, 3}, Highs(candles))
	assert.Equal(t, []float64{0.5, 1}, Lows(candles))
	assert.Equal(t, []int64{10, 20}, Volumes(candles))
}
