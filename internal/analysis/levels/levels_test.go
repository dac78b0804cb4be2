package levels

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

func TestCalculatePivots(t *testing.T) {
	p := CalculatePivots(110, 90, 100)

	assert.InDelta(t, 100, p.Pivot, 1e-9)
	assert.InDelta(t, 110, p.R1, 1e-9)
	assert.InDelta(t, 120, p.R2, 1e-9)
	assert.InDelta(t, 130, p.R3, 1e-9)
	assert.InDelta(t, 90, p.S1, 1e-9)
	assert.InDelta(t, 80, p.S2, 1e-9)
	assert.InDelta(t, 70, p.S3, 1e-9)
}

func TestPivotLevels(t *testing.T) {
	lvls := CalculatePivots(110, 90, 100).Levels(105)
	require.Len(t, lvls, 7)

	// Price above the pivot makes the central pivot a support.
	assert.Equal(t, analysis.LevelSupport, lvls[0].Type)
	for _, lvl := range lvls {
		assert.Equal(t, "pivot", lvl.Source)
		assert.GreaterOrEqual(t, lvl.Strength, 0.0)
		assert.LessOrEqual(t, lvl.Strength, 1.0)
	}
}

func TestDetectPsychologicalLevels(t *testing.T) {
	t.Run("round numbers around price", func(t *testing.T) {
		lvls := DetectPsychologicalLevels(50)
		require.NotEmpty(t, lvls)
		prices := make(map[float64]bool)
		for _, lvl := range lvls {
			prices[lvl.Price] = true
			assert.LessOrEqual(t, math.Abs(lvl.Price-50)/50, psychWindow+1e-9)
		}
		assert.True(t, prices[49])
		assert.True(t, prices[51])
	})

	t.Run("strength decays with distance", func(t *testing.T) {
		lvls := DetectPsychologicalLevels(50)
		var near, far float64
		for _, lvl := range lvls {
			if lvl.Price == 51 {
				near = lvl.Strength
			}
			if lvl.Price == 58 {
				far = lvl.Strength
			}
		}
		require.NotZero(t, near)
		require.NotZero(t, far)
		assert.Greater(t, near, far)
	})

	t.Run("non-positive price yields nothing", func(t *testing.T) {
		assert.Empty(t, DetectPsychologicalLevels(0))
	})
}

func TestDetectFibonacciLevels(t *testing.T) {
	// One wide candle fixes the swing at 120/80; the last close sets the
	// reference price.
	candles := []models.Candle{
		{High: 120, Low: 80, Close: 110, Volume: 1000},
		{High: 112, Low: 100, Close: 105, Volume: 1000},
	}

	lvls := DetectFibonacciLevels(candles)
	require.NotEmpty(t, lvls)

	var prices []float64
	for _, lvl := range lvls {
		prices = append(prices, lvl.Price)
	}

	// 50% retracement of 120->80 sits at 100, 61.8% at 95.28.
	assert.True(t, containsPrice(prices, 100, 1e-6))
	assert.True(t, containsPrice(prices, 95.28, 1e-6))

	for _, lvl := range lvls {
		distance := math.Abs(lvl.Price-105) / 105
		assert.GreaterOrEqual(t, distance, fibRetraceMinDistance-1e-9)
		assert.LessOrEqual(t, distance, fibExtensionMaxDistance+1e-9)
	}
}

func TestFibonacciGoldenRatioBoost(t *testing.T) {
	candles := []models.Candle{
		{High: 120, Low: 80, Close: 105, Volume: 1000},
	}
	lvls := DetectFibonacciLevels(candles)

	var golden, plain float64
	for _, lvl := range lvls {
		if math.Abs(lvl.Price-95.28) < 1e-6 { // 0.618
			golden = lvl.Strength
		}
		if math.Abs(lvl.Price-100) < 1e-6 { // 0.5
			plain = lvl.Strength
		}
	}
	require.NotZero(t, golden)
	require.NotZero(t, plain)
	assert.Greater(t, golden, plain)
}

func TestDetectVolumeLevels(t *testing.T) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var candles []models.Candle
	for i := 0; i < 20; i++ {
		candles = append(candles, models.Candle{
			Timestamp: ts.Add(time.Duration(i) * 24 * time.Hour),
			Open:      100, High: 101, Low: 99, Close: 100,
			Volume: 1000,
		})
	}
	// Two heavy bars at a distinct price.
	candles[5].High, candles[5].Low, candles[5].Close = 111, 109, 110
	candles[5].Volume = 10000
	candles[6].High, candles[6].Low, candles[6].Close = 111, 109, 110
	candles[6].Volume = 10000

	lvls := DetectVolumeLevels(candles)
	require.NotEmpty(t, lvls)

	found := false
	for _, lvl := range lvls {
		if math.Abs(lvl.Price-110) < 1.0 {
			found = true
			assert.Equal(t, 2, lvl.TouchCount)
			assert.InDelta(t, 20000, lvl.Volume, 1e-9)
		}
	}
	assert.True(t, found)
}

func TestDetectDynamicLevels(t *testing.T) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var candles []models.Candle
	price := func(i int) float64 {
		// Seven-bar oscillation retests the same high and low repeatedly
		// without flat plateaus.
		return 100 + 5*math.Sin(float64(i)*2*math.Pi/7)
	}
	for i := 0; i < 50; i++ {
		p := price(i)
		candles = append(candles, models.Candle{
			Timestamp: ts.Add(time.Duration(i) * 24 * time.Hour),
			Open:      p, High: p + 0.5, Low: p - 0.5, Close: p,
			Volume: 5000,
		})
	}

	lvls := DetectDynamicLevels(candles)
	require.NotEmpty(t, lvls)
	for _, lvl := range lvls {
		assert.GreaterOrEqual(t, lvl.Strength, dynamicMinStrength)
		assert.LessOrEqual(t, lvl.Strength, 1.0)
		assert.GreaterOrEqual(t, lvl.TouchCount, 1)
		assert.Equal(t, "dynamic", lvl.Source)
	}
}

func TestDedup(t *testing.T) {
	t.Run("same type within tolerance keeps the stronger", func(t *testing.T) {
		merged := Dedup([]analysis.Level{
			{Price: 100.0, Type: analysis.LevelSupport, Strength: 0.5},
			{Price: 100.2, Type: analysis.LevelSupport, Strength: 0.9},
		})
		require.Len(t, merged, 1)
		assert.InDelta(t, 100.2, merged[0].Price, 1e-9)
		assert.InDelta(t, 0.9, merged[0].Strength, 1e-9)
	})

	t.Run("different types are kept apart", func(t *testing.T) {
		merged := Dedup([]analysis.Level{
			{Price: 100.0, Type: analysis.LevelSupport, Strength: 0.5},
			{Price: 100.2, Type: analysis.LevelResistance, Strength: 0.9},
		})
		assert.Len(t, merged, 2)
	})

	t.Run("outside tolerance both survive", func(t *testing.T) {
		merged := Dedup([]analysis.Level{
			{Price: 100.0, Type: analysis.LevelSupport, Strength: 0.5},
			{Price: 101.0, Type: analysis.LevelSupport, Strength: 0.9},
		})
		assert.Len(t, merged, 2)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []analysis.Level{
			{Price: 100.0, Type: analysis.LevelSupport, Strength: 0.5},
			{Price: 100.2, Type: analysis.LevelSupport, Strength: 0.9},
			{Price: 110.0, Type: analysis.LevelResistance, Strength: 0.7},
		}
		once := Dedup(in)
		twice := Dedup(once)
		assert.Equal(t, once, twice)
	})
}

func TestDetectAll(t *testing.T) {
	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, NewDetector().DetectAll(nil))
	})

	t.Run("bounded and sorted", func(t *testing.T) {
		ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		var candles []models.Candle
		for i := 0; i < 60; i++ {
			p := 100 + 10*math.Sin(float64(i)/4)
			candles = append(candles, models.Candle{
				Timestamp: ts.Add(time.Duration(i) * 24 * time.Hour),
				Open:      p, High: p + 1, Low: p - 1, Close: p,
				Volume: 5000 + int64(i%7)*2000,
			})
		}

		lvls := NewDetector().DetectAll(candles)
		require.NotEmpty(t, lvls)
		assert.LessOrEqual(t, len(lvls), maxLevels)
		for i := 1; i < len(lvls); i++ {
			assert.GreaterOrEqual(t, lvls[i-1].Strength, lvls[i].Strength)
		}
	})
}

func containsPrice(prices []float64, want, tolerance float64) bool {
	for _, p := range prices {
		if math.Abs(p-want) <= tolerance {
			return true
		}
	}
	return false
}
