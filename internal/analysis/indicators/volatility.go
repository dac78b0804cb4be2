package indicators

import (
	"fmt"
	"math"

	"ta-engine/internal/analysis"
)

// ATR calculates the Average True Range.
type ATR struct {
	period int
}

// NewATR creates a new ATR indicator.
func NewATR(period int) *ATR {
	return &ATR{period: period}
}

// Name returns the indicator name.
func (a *ATR) Name() string {
	return fmt.Sprintf("ATR(%d)", a.period)
}

// Period returns the indicator period.
func (a *ATR) Period() int {
	return a.period
}

// Calculate computes the ATR as the SMA of true ranges. True range needs a
// previous close, so n bars yield n-1 true ranges and n-period ATR values.
func (a *ATR) Calculate(highs, lows, closes []float64) (*analysis.IndicatorResult, error) {
	if a.period <= 0 {
		return nil, fmt.Errorf("%w: ATR period must be positive, got %d", ErrInvalidParameter, a.period)
	}
	if len(highs) != len(lows) || len(highs) != len(closes) {
		return nil, fmt.Errorf("%w: ATR series lengths differ (%d highs, %d lows, %d closes)",
			ErrInvalidParameter, len(highs), len(lows), len(closes))
	}
	if len(closes) < a.period+1 {
		return nil, fmt.Errorf("%w: ATR(%d) needs at least %d bars, got %d",
			ErrInsufficientData, a.period, a.period+1, len(closes))
	}

	trueRanges := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		trueRanges[i-1] = math.Max(hl, math.Max(hc, lc))
	}

	values := rollingMean(trueRanges, a.period)
	last := values[len(values)-1]
	price := closes[len(closes)-1]

	interpretation := fmt.Sprintf("ATR %.2f", last)
	if price > 0 {
		interpretation = fmt.Sprintf("ATR %.2f (%.1f%% of price)", last, last/price*100)
	}

	return &analysis.IndicatorResult{
		Name:           a.Name(),
		Values:         values,
		Params:         ATRParams{Period: a.period},
		Interpretation: interpretation,
		Signal:         analysis.SignalNeutral,
	}, nil
}

// Bollinger calculates Bollinger Bands.
type Bollinger struct {
	period  int
	stdDevs float64
}

// NewBollinger creates a new Bollinger Bands indicator.
func NewBollinger(period int, stdDevs float64) *Bollinger {
	return &Bollinger{period: period, stdDevs: stdDevs}
}

// Name returns the indicator name.
func (b *Bollinger) Name() string {
	return fmt.Sprintf("BB(%d,%.1f)", b.period, b.stdDevs)
}

// BollingerResult holds the three band series plus bandwidth and %B. All
// series have n-period+1 entries.
type BollingerResult struct {
	Upper          []float64
	Middle         []float64
	Lower          []float64
	Bandwidth      []float64 // (upper-lower)/middle
	PercentB       []float64 // (close-lower)/(upper-lower)
	Params         BollingerParams
	Interpretation string
	Signal         analysis.Signal
}

// Calculate computes the bands. The middle band is the SMA; the upper and
// lower bands offset it by stdDevs population standard deviations of the
// same window. A zero-width window pins %B to 0.5.
func (b *Bollinger) Calculate(prices []float64) (*BollingerResult, error) {
	if b.period <= 0 {
		return nil, fmt.Errorf("%w: Bollinger period must be positive, got %d", ErrInvalidParameter, b.period)
	}
	if b.stdDevs <= 0 {
		return nil, fmt.Errorf("%w: Bollinger stddev multiplier must be positive, got %.2f",
			ErrInvalidParameter, b.stdDevs)
	}
	if len(prices) < b.period {
		return nil, fmt.Errorf("%w: %s needs at least %d prices, got %d",
			ErrInsufficientData, b.Name(), b.period, len(prices))
	}

	n := len(prices) - b.period + 1
	upper := make([]float64, n)
	middle := make([]float64, n)
	lower := make([]float64, n)
	bandwidth := make([]float64, n)
	percentB := make([]float64, n)

	for i := 0; i < n; i++ {
		window := prices[i : i+b.period]
		m := mean(window)
		sd := stdDev(window)
		middle[i] = m
		upper[i] = m + b.stdDevs*sd
		lower[i] = m - b.stdDevs*sd
		if m != 0 {
			bandwidth[i] = (upper[i] - lower[i]) / m
		}
		width := upper[i] - lower[i]
		if width == 0 {
			percentB[i] = 0.5
		} else {
			percentB[i] = (prices[i+b.period-1] - lower[i]) / width
		}
	}

	price := prices[len(prices)-1]
	lastUpper := upper[n-1]
	lastLower := lower[n-1]
	lastMiddle := middle[n-1]

	signal := analysis.SignalNeutral
	interpretation := fmt.Sprintf("Price %.2f inside bands [%.2f, %.2f]", price, lastLower, lastUpper)
	switch {
	case price > lastUpper:
		signal = analysis.SignalBearish
		interpretation = fmt.Sprintf("Price %.2f above upper band %.2f, overbought", price, lastUpper)
	case price < lastLower:
		signal = analysis.SignalBullish
		interpretation = fmt.Sprintf("Price %.2f below lower band %.2f, oversold", price, lastLower)
	case price > lastMiddle:
		interpretation = fmt.Sprintf("Price %.2f in upper band half, mild strength", price)
	case price < lastMiddle:
		interpretation = fmt.Sprintf("Price %.2f in lower band half, mild weakness", price)
	}

	return &BollingerResult{
		Upper:          upper,
		Middle:         middle,
		Lower:          lower,
		Bandwidth:      bandwidth,
		PercentB:       percentB,
		Params:         BollingerParams{Period: b.period, StdDevs: b.stdDevs},
		Interpretation: interpretation,
		Signal:         signal,
	}, nil
}

// Indicator converts the Bollinger result into the generic indicator form
// using the middle band.
func (r *BollingerResult) Indicator() analysis.IndicatorResult {
	return analysis.IndicatorResult{
		Name:           fmt.Sprintf("BB(%d,%.1f)", r.Params.Period, r.Params.StdDevs),
		Values:         r.Middle,
		Params:         r.Params,
		Interpretation: r.Interpretation,
		Signal:         r.Signal,
	}
}
