package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ta-engine/internal/analysis"
	apperrors "ta-engine/internal/errors"
	"ta-engine/internal/models"
)

// risingCandles walks upward with a small oscillation so swing points exist.
func risingCandles(n int) []models.Candle {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, n)
	for i := range candles {
		p := 100 + 0.5*float64(i) + 2*math.Sin(float64(i)*2*math.Pi/7)
		candles[i] = models.Candle{
			Timestamp: ts.Add(time.Duration(i) * 24 * time.Hour),
			Open:      p, High: p + 1, Low: p - 1, Close: p,
			Volume: 5000 + int64(i%5)*1000,
		}
	}
	return candles
}

func flatCandles(n int) []models.Candle {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, n)
	for i := range candles {
		candles[i] = models.Candle{
			Timestamp: ts.Add(time.Duration(i) * 24 * time.Hour),
			Open:      100, High: 101, Low: 99, Close: 100,
			Volume: 5000,
		}
	}
	return candles
}

func TestAnalyzeInsufficientData(t *testing.T) {
	eng := New()
	_, err := eng.Analyze("ACME", models.TimeframeDay, risingCandles(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientData))

	var analysisErr *apperrors.AnalysisError
	require.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, "ACME", analysisErr.Symbol)
}

func TestAnalyzeMinimumBars(t *testing.T) {
	eng := New()
	result, err := eng.Analyze("ACME", models.Timeframe1Hour, risingCandles(20))
	require.NoError(t, err)
	assert.Equal(t, "ACME", result.Symbol)
	assert.Equal(t, "1hour", result.Timeframe)
	assert.NotZero(t, result.LastClose)
	// 20 bars cannot warm up every indicator, but the analysis still runs.
	assert.NotNil(t, result.Levels)
}

func TestAnalyzeRisingSeries(t *testing.T) {
	eng := New()
	candles := risingCandles(60)
	result, err := eng.Analyze("ACME", models.TimeframeDay, candles)
	require.NoError(t, err)

	assert.Equal(t, analysis.TrendUp, result.Trend.Direction)
	assert.Greater(t, result.Trend.Slope, 0.0)
	assert.Greater(t, result.Trend.Strength, 0.5)

	assert.Greater(t, result.Momentum.RSI, 50.0)
	assert.NotEmpty(t, result.Indicators)
	assert.NotEmpty(t, result.Levels)

	assert.Greater(t, result.Volatility.ATR, 0.0)
	assert.GreaterOrEqual(t, result.Volatility.Rank, 0.0)
	assert.LessOrEqual(t, result.Volatility.Rank, 1.0)
	assert.True(t, result.Volatility.BollingerLower <= result.Volatility.BollingerMiddle)
	assert.True(t, result.Volatility.BollingerMiddle <= result.Volatility.BollingerUpper)

	assert.InDelta(t, candles[len(candles)-1].Close, result.LastClose, 1e-9)

	// The oscillation repeats every seven bars while drifting up, so the
	// swing highs and lows form parallel rising lines.
	var types []analysis.PatternType
	for _, p := range result.Patterns {
		types = append(types, p.Type)
	}
	assert.Contains(t, types, analysis.PatternChannelUp)
}

func TestAnalyzeFlatSeries(t *testing.T) {
	eng := New()
	result, err := eng.Analyze("ACME", models.Timeframe1Hour, flatCandles(60))
	require.NoError(t, err)

	assert.Equal(t, analysis.TrendSideways, result.Trend.Direction)
	// Constant closes with a constant range: no patterns to find.
	assert.Empty(t, result.Patterns)
}

func TestAnalyzeIsPure(t *testing.T) {
	eng := New()
	candles := risingCandles(60)

	first, err := eng.Analyze("ACME", models.TimeframeDay, candles)
	require.NoError(t, err)
	second, err := eng.Analyze("ACME", models.TimeframeDay, candles)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSignals(t *testing.T) {
	eng := New()

	t.Run("requires a prior analysis", func(t *testing.T) {
		_, err := eng.GenerateSignals(nil, nil)
		assert.Error(t, err)
	})

	t.Run("flat series holds", func(t *testing.T) {
		candles := flatCandles(60)
		result, err := eng.Analyze("ACME", models.Timeframe1Hour, candles)
		require.NoError(t, err)

		signal, err := eng.GenerateSignals(result, candles)
		require.NoError(t, err)
		assert.Equal(t, analysis.ActionHold, signal.Action)
		assert.NotEmpty(t, signal.Reasoning)
	})

	t.Run("signal fields are bounded and coherent", func(t *testing.T) {
		candles := risingCandles(80)
		result, err := eng.Analyze("ACME", models.TimeframeDay, candles)
		require.NoError(t, err)

		signal, err := eng.GenerateSignals(result, candles)
		require.NoError(t, err)

		assert.Contains(t, []analysis.Action{analysis.ActionBuy, analysis.ActionSell, analysis.ActionHold}, signal.Action)
		assert.GreaterOrEqual(t, signal.Confidence, 0.0)
		assert.LessOrEqual(t, signal.Confidence, 1.0)
		assert.Equal(t, "weeks", signal.TimeHorizon)
		assert.Contains(t, []analysis.RiskLevel{analysis.RiskLow, analysis.RiskMedium, analysis.RiskHigh}, signal.Risk)
		assert.LessOrEqual(t, len(signal.Targets), 8)

		if signal.Action == analysis.ActionBuy {
			price := result.LastClose
			for _, tgt := range signal.Targets {
				assert.Greater(t, tgt.Price, price)
			}
			assert.Less(t, signal.StopLoss, price)
		}
	})
}

func TestHorizonFor(t *testing.T) {
	tests := []struct {
		timeframe models.Timeframe
		want      string
	}{
		{models.Timeframe5Min, "hours"},
		{models.Timeframe30Min, "hours"},
		{models.Timeframe1Hour, "days"},
		{models.Timeframe4Hour, "days"},
		{models.TimeframeDay, "weeks"},
		{models.TimeframeWeek, "months"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, horizonFor(tt.timeframe), string(tt.timeframe))
	}
}

func TestRiskFor(t *testing.T) {
	assert.Equal(t, analysis.RiskLow, riskFor(0.1))
	assert.Equal(t, analysis.RiskMedium, riskFor(0.5))
	assert.Equal(t, analysis.RiskHigh, riskFor(0.9))
}

func TestAnalyzeTrendRegression(t *testing.T) {
	t.Run("perfect line has full strength", func(t *testing.T) {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = 100 + 2*float64(i)
		}
		trend := analyzeTrend(closes)
		assert.Equal(t, analysis.TrendUp, trend.Direction)
		assert.InDelta(t, 2.0, trend.Slope, 1e-9)
		assert.InDelta(t, 1.0, trend.Strength, 1e-9)
		assert.Equal(t, 30, trend.Duration)
	})

	t.Run("descending line", func(t *testing.T) {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = 200 - 1.5*float64(i)
		}
		trend := analyzeTrend(closes)
		assert.Equal(t, analysis.TrendDown, trend.Direction)
		assert.Less(t, trend.Slope, 0.0)
	})

	t.Run("window bounded", func(t *testing.T) {
		closes := make([]float64, 200)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		trend := analyzeTrend(closes)
		assert.Equal(t, trendWindow, trend.Duration)
	})
}
