package indicators

import (
	"ta-engine/internal/models"
)

// MAParams parameterizes the moving-average indicators.
type MAParams struct {
	Period int
}

func (p MAParams) Describe() map[string]float64 {
	return map[string]float64{"period": float64(p.Period)}
}

// RSIParams parameterizes the RSI.
type RSIParams struct {
	Period int
}

func (p RSIParams) Describe() map[string]float64 {
	return map[string]float64{"period": float64(p.Period)}
}

// MACDParams parameterizes the MACD.
type MACDParams struct {
	FastPeriod   int
	SlowPeriod   int
	SignalPeriod int
}

func (p MACDParams) Describe() map[string]float64 {
	return map[string]float64{
		"fast":   float64(p.FastPeriod),
		"slow":   float64(p.SlowPeriod),
		"signal": float64(p.SignalPeriod),
	}
}

// BollingerParams parameterizes the Bollinger Bands.
type BollingerParams struct {
	Period  int
	StdDevs float64
}

func (p BollingerParams) Describe() map[string]float64 {
	return map[string]float64{
		"period":  float64(p.Period),
		"stddevs": p.StdDevs,
	}
}

// StochasticParams parameterizes the stochastic oscillator.
type StochasticParams struct {
	KPeriod int
	DPeriod int
}

func (p StochasticParams) Describe() map[string]float64 {
	return map[string]float64{
		"k": float64(p.KPeriod),
		"d": float64(p.DPeriod),
	}
}

// ATRParams parameterizes the ATR.
type ATRParams struct {
	Period int
}

func (p ATRParams) Describe() map[string]float64 {
	return map[string]float64{"period": float64(p.Period)}
}

// ParameterSet bundles the periods for one analysis run.
type ParameterSet struct {
	RSIPeriod        int
	MACDFast         int
	MACDSlow         int
	MACDSignal       int
	BollingerPeriod  int
	BollingerStdDevs float64
	StochasticK      int
	StochasticD      int
	ATRPeriod        int
}

// DefaultParameters returns the conventional indicator periods.
func DefaultParameters() ParameterSet {
	return ParameterSet{
		RSIPeriod:        14,
		MACDFast:         12,
		MACDSlow:         26,
		MACDSignal:       9,
		BollingerPeriod:  20,
		BollingerStdDevs: 2.0,
		StochasticK:      14,
		StochasticD:      3,
		ATRPeriod:        14,
	}
}

// Volatility thresholds for band-width tuning.
const (
	highVolatility = 0.8
	lowVolatility  = 0.3
)

// OptimizeParameters adapts the default periods to the bar interval and the
// current volatility rank in [0,1]. Sub-hour timeframes use shorter windows
// to stay responsive; daily and weekly use longer ones to cut noise. High
// volatility widens the Bollinger multiplier, low volatility narrows it.
func OptimizeParameters(timeframe models.Timeframe, volatility float64) ParameterSet {
	params := DefaultParameters()

	switch {
	case timeframe.Intraday():
		params.RSIPeriod = 9
		params.MACDFast = 8
		params.MACDSlow = 17
		params.BollingerPeriod = 14
		params.StochasticK = 9
		params.ATRPeriod = 10
	case timeframe == models.TimeframeDay || timeframe == models.TimeframeWeek:
		params.RSIPeriod = 21
		params.MACDFast = 19
		params.MACDSlow = 39
		params.BollingerPeriod = 30
		params.StochasticK = 21
		params.StochasticD = 5
		params.ATRPeriod = 21
	}

	if volatility > highVolatility {
		params.BollingerStdDevs = 2.5
	} else if volatility < lowVolatility {
		params.BollingerStdDevs = 1.5
	}

	return params
}
