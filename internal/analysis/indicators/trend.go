package indicators

import (
	"fmt"

	"ta-engine/internal/analysis"
)

// SMA calculates the Simple Moving Average.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

// Name returns the indicator name.
func (s *SMA) Name() string {
	return fmt.Sprintf("SMA(%d)", s.period)
}

// Period returns the indicator period.
func (s *SMA) Period() int {
	return s.period
}

// Calculate computes the SMA over the price series. The output drops the
// warm-up window: n prices yield n-period+1 values.
func (s *SMA) Calculate(prices []float64) (*analysis.IndicatorResult, error) {
	if s.period <= 0 {
		return nil, fmt.Errorf("%w: SMA period must be positive, got %d", ErrInvalidParameter, s.period)
	}
	if len(prices) < s.period {
		return nil, fmt.Errorf("%w: SMA(%d) needs at least %d prices, got %d",
			ErrInsufficientData, s.period, s.period, len(prices))
	}

	values := rollingMean(prices, s.period)
	last := values[len(values)-1]
	price := prices[len(prices)-1]

	signal := analysis.SignalNeutral
	interpretation := fmt.Sprintf("Price %.2f at SMA %.2f", price, last)
	if price > last {
		signal = analysis.SignalBullish
		interpretation = fmt.Sprintf("Price %.2f above SMA %.2f", price, last)
	} else if price < last {
		signal = analysis.SignalBearish
		interpretation = fmt.Sprintf("Price %.2f below SMA %.2f", price, last)
	}

	return &analysis.IndicatorResult{
		Name:           s.Name(),
		Values:         values,
		Params:         MAParams{Period: s.period},
		Interpretation: interpretation,
		Signal:         signal,
	}, nil
}

// EMA calculates the Exponential Moving Average.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator.
func NewEMA(period int) *EMA {
	return &EMA{period: period}
}

// Name returns the indicator name.
func (e *EMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

// Period returns the indicator period.
func (e *EMA) Period() int {
	return e.period
}

// Calculate computes the EMA over the price series. The first value is the
// SMA of the first period prices; subsequent values apply the 2/(period+1)
// multiplier. The output drops the warm-up window.
func (e *EMA) Calculate(prices []float64) (*analysis.IndicatorResult, error) {
	if e.period <= 0 {
		return nil, fmt.Errorf("%w: EMA period must be positive, got %d", ErrInvalidParameter, e.period)
	}
	if len(prices) < e.period {
		return nil, fmt.Errorf("%w: EMA(%d) needs at least %d prices, got %d",
			ErrInsufficientData, e.period, e.period, len(prices))
	}

	values := expMean(prices, e.period)
	last := values[len(values)-1]
	price := prices[len(prices)-1]

	signal := analysis.SignalNeutral
	interpretation := fmt.Sprintf("Price %.2f at EMA %.2f", price, last)
	if price > last {
		signal = analysis.SignalBullish
		interpretation = fmt.Sprintf("Price %.2f above EMA %.2f", price, last)
	} else if price < last {
		signal = analysis.SignalBearish
		interpretation = fmt.Sprintf("Price %.2f below EMA %.2f", price, last)
	}

	return &analysis.IndicatorResult{
		Name:           e.Name(),
		Values:         values,
		Params:         MAParams{Period: e.period},
		Interpretation: interpretation,
		Signal:         signal,
	}, nil
}

// MACD calculates Moving Average Convergence Divergence.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with the given periods.
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{fastPeriod: fast, slowPeriod: slow, signalPeriod: signal}
}

// Name returns the indicator name.
func (m *MACD) Name() string {
	return fmt.Sprintf("MACD(%d,%d,%d)", m.fastPeriod, m.slowPeriod, m.signalPeriod)
}

// MACDResult holds the three MACD series. MACD has n-slow+1 entries; Signal
// and Histogram have signalPeriod-1 fewer. Histogram[i] corresponds to
// MACD[i+signalPeriod-1].
type MACDResult struct {
	MACD           []float64
	SignalLine     []float64
	Histogram      []float64
	Params         MACDParams
	Interpretation string
	Signal         analysis.Signal
}

// Calculate computes the MACD line, signal line, and histogram. The fast EMA
// is sliced by slow-fast so both EMA series start at the same bar.
func (m *MACD) Calculate(prices []float64) (*MACDResult, error) {
	if m.fastPeriod <= 0 || m.slowPeriod <= 0 || m.signalPeriod <= 0 {
		return nil, fmt.Errorf("%w: MACD periods must be positive, got (%d,%d,%d)",
			ErrInvalidParameter, m.fastPeriod, m.slowPeriod, m.signalPeriod)
	}
	if m.fastPeriod >= m.slowPeriod {
		return nil, fmt.Errorf("%w: MACD fast period %d must be shorter than slow period %d",
			ErrInvalidParameter, m.fastPeriod, m.slowPeriod)
	}
	minBars := m.slowPeriod + m.signalPeriod - 1
	if len(prices) < minBars {
		return nil, fmt.Errorf("%w: %s needs at least %d prices, got %d",
			ErrInsufficientData, m.Name(), minBars, len(prices))
	}

	fastEMA := expMean(prices, m.fastPeriod)
	slowEMA := expMean(prices, m.slowPeriod)

	// The fast series starts slow-fast bars earlier; drop those so both
	// series cover the same bars.
	fastEMA = fastEMA[m.slowPeriod-m.fastPeriod:]

	macdLine := make([]float64, len(slowEMA))
	for i := range slowEMA {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine := expMean(macdLine, m.signalPeriod)
	histogram := make([]float64, len(signalLine))
	offset := m.signalPeriod - 1
	for i := range signalLine {
		histogram[i] = macdLine[i+offset] - signalLine[i]
	}

	lastMACD := macdLine[len(macdLine)-1]
	lastSignal := signalLine[len(signalLine)-1]
	lastHist := histogram[len(histogram)-1]

	signal := analysis.SignalNeutral
	interpretation := "MACD flat against signal line"
	if lastMACD > lastSignal && lastHist > 0 {
		signal = analysis.SignalBullish
		interpretation = fmt.Sprintf("MACD %.4f above signal %.4f, histogram positive", lastMACD, lastSignal)
	} else if lastMACD < lastSignal && lastHist < 0 {
		signal = analysis.SignalBearish
		interpretation = fmt.Sprintf("MACD %.4f below signal %.4f, histogram negative", lastMACD, lastSignal)
	}

	return &MACDResult{
		MACD:       macdLine,
		SignalLine: signalLine,
		Histogram:  histogram,
		Params: MACDParams{
			FastPeriod:   m.fastPeriod,
			SlowPeriod:   m.slowPeriod,
			SignalPeriod: m.signalPeriod,
		},
		Interpretation: interpretation,
		Signal:         signal,
	}, nil
}

// Indicator converts the MACD result into the generic indicator form using
// the MACD line as the value series.
func (r *MACDResult) Indicator() analysis.IndicatorResult {
	return analysis.IndicatorResult{
		Name: fmt.Sprintf("MACD(%d,%d,%d)",
			r.Params.FastPeriod, r.Params.SlowPeriod, r.Params.SignalPeriod),
		Values:         r.MACD,
		Params:         r.Params,
		Interpretation: r.Interpretation,
		Signal:         r.Signal,
	}
}
