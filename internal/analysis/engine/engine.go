// Package engine is the analysis facade: it runs indicators, pattern and
// level detection, and summary computations over one candle series, and
// derives trading signals from the combined picture. The engine is pure; it
// performs no I/O and keeps no state between calls.
package engine

import (
	"fmt"
	"math"
	"sort"

	"ta-engine/internal/analysis"
	"ta-engine/internal/analysis/indicators"
	"ta-engine/internal/analysis/levels"
	"ta-engine/internal/analysis/patterns"
	"ta-engine/internal/analysis/targets"
	apperrors "ta-engine/internal/errors"
	"ta-engine/internal/models"
)

// Analysis tuning.
const (
	// minBars gates every analysis.
	minBars = 20

	// trendWindow bounds the regression over recent closes.
	trendWindow = 50

	// trendSlopeEpsilon separates a sideways drift from a trend,
	// measured as fraction of price per bar.
	trendSlopeEpsilon = 0.0005

	// squeezePercentile marks a Bollinger squeeze when current
	// bandwidth sits at or below this fraction of its history.
	squeezePercentile = 0.25
)

// Engine runs complete technical analyses.
type Engine struct {
	patterns    *patterns.Detector
	levels      *levels.Detector
	synthesizer *targets.Synthesizer
}

// New creates an analysis engine.
func New() *Engine {
	return &Engine{
		patterns:    patterns.NewDetector(),
		levels:      levels.NewDetector(),
		synthesizer: targets.NewSynthesizer(),
	}
}

// Analyze runs the full pipeline over an oldest-first candle series. Fewer
// than minBars candles fail with ErrInsufficientData. Indicators whose own
// warm-up exceeds the series are skipped rather than failing the analysis;
// absence of patterns or levels yields empty slices.
func (e *Engine) Analyze(symbol string, timeframe models.Timeframe, candles []models.Candle) (*analysis.Result, error) {
	if len(candles) < minBars {
		return nil, apperrors.NewAnalysisError(symbol, string(timeframe), "validate",
			fmt.Errorf("%w: need at least %d candles, got %d", apperrors.ErrInsufficientData, minBars, len(candles)))
	}

	closes := models.Closes(candles)
	highs := models.Highs(candles)
	lows := models.Lows(candles)
	lastClose := closes[len(closes)-1]

	volatility := e.volatilityAnalysis(highs, lows, closes, indicators.DefaultParameters())
	params := indicators.OptimizeParameters(timeframe, volatility.Rank)

	result := &analysis.Result{
		Symbol:    symbol,
		Timeframe: string(timeframe),
		LastClose: lastClose,
	}

	momentum := analysis.MomentumAnalysis{}
	var collected []analysis.IndicatorResult

	if r, err := indicators.NewSMA(params.BollingerPeriod).Calculate(closes); err == nil {
		collected = append(collected, *r)
	}
	if r, err := indicators.NewEMA(params.MACDFast).Calculate(closes); err == nil {
		collected = append(collected, *r)
	}
	if r, err := indicators.NewRSI(params.RSIPeriod).Calculate(closes); err == nil {
		collected = append(collected, *r)
		momentum.RSI = r.Last()
	}
	if r, err := indicators.NewMACD(params.MACDFast, params.MACDSlow, params.MACDSignal).Calculate(closes); err == nil {
		collected = append(collected, r.Indicator())
		momentum.MACD = r.MACD[len(r.MACD)-1]
		momentum.MACDSignal = r.SignalLine[len(r.SignalLine)-1]
		momentum.MACDHistogram = r.Histogram[len(r.Histogram)-1]
	}
	if r, err := indicators.NewStochastic(params.StochasticK, params.StochasticD).Calculate(highs, lows, closes); err == nil {
		collected = append(collected, r.Indicator())
		momentum.StochasticK = r.K[len(r.K)-1]
		momentum.StochasticD = r.D[len(r.D)-1]
	}
	if r, err := indicators.NewBollinger(params.BollingerPeriod, params.BollingerStdDevs).Calculate(closes); err == nil {
		collected = append(collected, r.Indicator())
	}
	if r, err := indicators.NewATR(params.ATRPeriod).Calculate(highs, lows, closes); err == nil {
		collected = append(collected, *r)
	}
	momentum.Interpretation = interpretMomentum(momentum)

	result.Indicators = collected
	result.Momentum = momentum
	result.Volatility = volatility
	result.Trend = analyzeTrend(closes)
	result.Patterns = e.patterns.DetectAll(candles)
	result.Levels = e.levels.DetectAll(candles)

	return result, nil
}

// volatilityAnalysis computes the ATR/Bollinger picture and the volatility
// rank, the fraction of historical ATR readings at or below the current
// one.
func (e *Engine) volatilityAnalysis(highs, lows, closes []float64, params indicators.ParameterSet) analysis.VolatilityAnalysis {
	out := analysis.VolatilityAnalysis{Rank: 0.5}

	if atr, err := indicators.NewATR(params.ATRPeriod).Calculate(highs, lows, closes); err == nil {
		out.ATR = atr.Last()
		out.Rank = rankOf(atr.Values)
	}

	if bb, err := indicators.NewBollinger(params.BollingerPeriod, params.BollingerStdDevs).Calculate(closes); err == nil {
		n := len(bb.Middle)
		out.BollingerUpper = bb.Upper[n-1]
		out.BollingerMiddle = bb.Middle[n-1]
		out.BollingerLower = bb.Lower[n-1]
		out.Squeeze = rankOf(bb.Bandwidth) <= squeezePercentile
	}
	return out
}

// rankOf returns the fraction of values at or below the last value.
func rankOf(values []float64) float64 {
	if len(values) < 2 {
		return 0.5
	}
	last := values[len(values)-1]
	count := 0
	for _, v := range values {
		if v <= last {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

// analyzeTrend fits a least-squares line over the recent closes and grades
// direction by normalized slope and strength by fit quality.
func analyzeTrend(closes []float64) analysis.TrendAnalysis {
	window := closes
	if len(window) > trendWindow {
		window = window[len(window)-trendWindow:]
	}
	n := float64(len(window))

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range window {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return analysis.TrendAnalysis{Direction: analysis.TrendSideways, Duration: len(window)}
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssTot, ssRes float64
	for i, y := range window {
		fit := slope*float64(i) + intercept
		ssRes += (y - fit) * (y - fit)
		ssTot += (y - meanY) * (y - meanY)
	}
	strength := 0.0
	if ssTot > 0 {
		strength = clamp01(1 - ssRes/ssTot)
	}

	normSlope := slope
	if meanY != 0 {
		normSlope = slope / meanY
	}
	direction := analysis.TrendSideways
	if normSlope > trendSlopeEpsilon {
		direction = analysis.TrendUp
	} else if normSlope < -trendSlopeEpsilon {
		direction = analysis.TrendDown
	}

	return analysis.TrendAnalysis{
		Direction: direction,
		Strength:  strength,
		Duration:  len(window),
		Slope:     slope,
	}
}

func interpretMomentum(m analysis.MomentumAnalysis) string {
	switch {
	case m.RSI > 70 && m.StochasticK > 80:
		return "Momentum stretched to the upside"
	case m.RSI < 30 && m.StochasticK < 20:
		return "Momentum stretched to the downside"
	case m.MACDHistogram > 0 && m.RSI > 50:
		return "Momentum building to the upside"
	case m.MACDHistogram < 0 && m.RSI < 50:
		return "Momentum building to the downside"
	default:
		return "Momentum mixed"
	}
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// sortLevelsByDistance orders levels by distance to a price, nearest first.
func sortLevelsByDistance(in []analysis.Level, price float64) []analysis.Level {
	out := make([]analysis.Level, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Price-price) < math.Abs(out[j].Price-price)
	})
	return out
}
