package indicators

import (
	"fmt"

	"ta-engine/internal/analysis"
)

// Overbought/oversold bounds for the momentum oscillators.
const (
	rsiOverbought = 70.0
	rsiOversold   = 30.0

	stochOverbought = 80.0
	stochOversold   = 20.0
)

// RSI calculates the Relative Strength Index using Wilder's smoothing.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Name returns the indicator name.
func (r *RSI) Name() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

// Period returns the indicator period.
func (r *RSI) Period() int {
	return r.period
}

// Calculate computes the RSI over the price series. The seed averages are
// simple means of the first period changes; later bars use Wilder's
// smoothing (avg*(p-1)+change)/p. Zero average loss saturates the value to
// 100 rather than dividing by zero. Output starts at bar index period, so n
// prices yield n-period values.
func (r *RSI) Calculate(prices []float64) (*analysis.IndicatorResult, error) {
	if r.period <= 0 {
		return nil, fmt.Errorf("%w: RSI period must be positive, got %d", ErrInvalidParameter, r.period)
	}
	if len(prices) < r.period+1 {
		return nil, fmt.Errorf("%w: RSI(%d) needs at least %d prices, got %d",
			ErrInsufficientData, r.period, r.period+1, len(prices))
	}

	gains := make([]float64, len(prices)-1)
	losses := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	avgGain := mean(gains[:r.period])
	avgLoss := mean(losses[:r.period])

	values := make([]float64, 0, len(prices)-r.period)
	values = append(values, rsiValue(avgGain, avgLoss))

	p := float64(r.period)
	for i := r.period; i < len(gains); i++ {
		avgGain = (avgGain*(p-1) + gains[i]) / p
		avgLoss = (avgLoss*(p-1) + losses[i]) / p
		values = append(values, rsiValue(avgGain, avgLoss))
	}

	last := values[len(values)-1]
	signal := analysis.SignalNeutral
	interpretation := fmt.Sprintf("RSI %.1f in neutral range", last)
	if last > rsiOverbought {
		signal = analysis.SignalBearish
		interpretation = fmt.Sprintf("RSI %.1f overbought", last)
	} else if last < rsiOversold {
		signal = analysis.SignalBullish
		interpretation = fmt.Sprintf("RSI %.1f oversold", last)
	}

	return &analysis.IndicatorResult{
		Name:           r.Name(),
		Values:         values,
		Params:         RSIParams{Period: r.period},
		Interpretation: interpretation,
		Signal:         signal,
	}, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// Stochastic calculates the stochastic oscillator (%K and %D).
type Stochastic struct {
	kPeriod int
	dPeriod int
}

// NewStochastic creates a new stochastic oscillator.
func NewStochastic(kPeriod, dPeriod int) *Stochastic {
	return &Stochastic{kPeriod: kPeriod, dPeriod: dPeriod}
}

// Name returns the indicator name.
func (s *Stochastic) Name() string {
	return fmt.Sprintf("Stochastic(%d,%d)", s.kPeriod, s.dPeriod)
}

// StochasticResult holds the %K and %D series. K has n-kPeriod+1 entries; D
// is the SMA of K and has dPeriod-1 fewer.
type StochasticResult struct {
	K              []float64
	D              []float64
	Params         StochasticParams
	Interpretation string
	Signal         analysis.Signal
}

// Calculate computes %K over the trailing kPeriod window of highs/lows and
// %D as the SMA of %K. A zero high-low range saturates %K to 50.
func (s *Stochastic) Calculate(highs, lows, closes []float64) (*StochasticResult, error) {
	if s.kPeriod <= 0 || s.dPeriod <= 0 {
		return nil, fmt.Errorf("%w: stochastic periods must be positive, got (%d,%d)",
			ErrInvalidParameter, s.kPeriod, s.dPeriod)
	}
	if len(highs) != len(lows) || len(highs) != len(closes) {
		return nil, fmt.Errorf("%w: stochastic series lengths differ (%d highs, %d lows, %d closes)",
			ErrInvalidParameter, len(highs), len(lows), len(closes))
	}
	minBars := s.kPeriod + s.dPeriod - 1
	if len(closes) < minBars {
		return nil, fmt.Errorf("%w: %s needs at least %d bars, got %d",
			ErrInsufficientData, s.Name(), minBars, len(closes))
	}

	k := make([]float64, 0, len(closes)-s.kPeriod+1)
	for i := s.kPeriod - 1; i < len(closes); i++ {
		hh := highest(highs[i-s.kPeriod+1 : i+1])
		ll := lowest(lows[i-s.kPeriod+1 : i+1])
		if hh == ll {
			k = append(k, 50)
			continue
		}
		k = append(k, (closes[i]-ll)/(hh-ll)*100)
	}

	d := rollingMean(k, s.dPeriod)

	lastK := k[len(k)-1]
	lastD := d[len(d)-1]

	signal := analysis.SignalNeutral
	bias := "%K below %D"
	if lastK >= lastD {
		bias = "%K above %D"
	}
	interpretation := fmt.Sprintf("Stochastic %%K %.1f / %%D %.1f in neutral range, %s", lastK, lastD, bias)
	if lastK > stochOverbought && lastD > stochOverbought {
		signal = analysis.SignalBearish
		interpretation = fmt.Sprintf("Stochastic %%K %.1f / %%D %.1f overbought", lastK, lastD)
	} else if lastK < stochOversold && lastD < stochOversold {
		signal = analysis.SignalBullish
		interpretation = fmt.Sprintf("Stochastic %%K %.1f / %%D %.1f oversold", lastK, lastD)
	}

	return &StochasticResult{
		K:              k,
		D:              d,
		Params:         StochasticParams{KPeriod: s.kPeriod, DPeriod: s.dPeriod},
		Interpretation: interpretation,
		Signal:         signal,
	}, nil
}

// Indicator converts the stochastic result into the generic indicator form
// using the %K series.
func (r *StochasticResult) Indicator() analysis.IndicatorResult {
	return analysis.IndicatorResult{
		Name:           fmt.Sprintf("Stochastic(%d,%d)", r.Params.KPeriod, r.Params.DPeriod),
		Values:         r.K,
		Params:         r.Params,
		Interpretation: r.Interpretation,
		Signal:         r.Signal,
	}
}
