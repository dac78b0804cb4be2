// Package analysis provides the shared result types produced by the
// technical-analysis engine: indicator readings, detected patterns,
// support/resistance levels, price targets, and trading signals.
package analysis

// Signal represents the directional bias of an indicator reading.
type Signal string

const (
	SignalBullish Signal = "BULLISH"
	SignalBearish Signal = "BEARISH"
	SignalNeutral Signal = "NEUTRAL"
)

// IndicatorParams describes the parameters an indicator was computed with.
// Each indicator defines its own typed parameter struct implementing this
// interface so callers keep named fields without an untyped bag.
type IndicatorParams interface {
	// Describe returns the parameter values keyed by name.
	Describe() map[string]float64
}

// IndicatorResult holds one indicator computation. Values are trimmed to
// drop the warm-up window, so an SMA over n bars with period p has n-p+1
// values. Immutable once created.
type IndicatorResult struct {
	Name           string
	Values         []float64
	Params         IndicatorParams
	Interpretation string
	Signal         Signal
}

// Last returns the most recent value, or 0 if the result is empty.
func (r *IndicatorResult) Last() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	return r.Values[len(r.Values)-1]
}

// PatternType identifies a detected chart formation.
type PatternType string

const (
	PatternAscendingTriangle   PatternType = "ASCENDING_TRIANGLE"
	PatternDescendingTriangle  PatternType = "DESCENDING_TRIANGLE"
	PatternSymmetricalTriangle PatternType = "SYMMETRICAL_TRIANGLE"
	PatternHeadAndShoulders    PatternType = "HEAD_AND_SHOULDERS"
	PatternDoubleTop           PatternType = "DOUBLE_TOP"
	PatternDoubleBottom        PatternType = "DOUBLE_BOTTOM"
	PatternChannelUp           PatternType = "CHANNEL_UP"
	PatternChannelDown         PatternType = "CHANNEL_DOWN"
)

// ChartPoint is one defining coordinate of a pattern: bar index plus price.
type ChartPoint struct {
	Index int
	Price float64
}

// PatternResult describes one detected chart formation. Immutable once
// detected.
type PatternResult struct {
	Type         PatternType
	Confidence   float64
	Points       []ChartPoint // 2-4 defining coordinates
	Description  string
	Implications []string
	Targets      []PriceTarget
}

// TrendLineType classifies a fitted trend line.
type TrendLineType string

const (
	TrendLineSupport    TrendLineType = "SUPPORT"
	TrendLineResistance TrendLineType = "RESISTANCE"
	TrendLineTrend      TrendLineType = "TREND"
)

// TrendLine is a fitted line through pivot points.
type TrendLine struct {
	Start    ChartPoint
	End      ChartPoint
	Slope    float64
	Strength int // touching points
	Type     TrendLineType
}

// LevelType classifies a support/resistance level.
type LevelType string

const (
	LevelSupport    LevelType = "SUPPORT"
	LevelResistance LevelType = "RESISTANCE"
)

// Level is one support or resistance price level. Two levels of the same
// type whose prices differ by less than the dedup tolerance (0.5%) are
// considered the same level; the higher-strength one survives a merge.
type Level struct {
	Price      float64
	Type       LevelType
	Strength   float64 // [0,1]
	TouchCount int     // >= 1
	Volume     float64 // aggregate volume at the level
	Confidence float64 // [0,1]
	Source     string  // method that produced the level
}

// TargetType classifies a price target.
type TargetType string

const (
	TargetEntry    TargetType = "ENTRY"
	TargetPrice    TargetType = "TARGET"
	TargetStopLoss TargetType = "STOP_LOSS"
)

// PriceTarget is one projected price with the method that produced it.
// Targets of the same type within 1.5% of each other are duplicates; the
// higher-confidence one survives a merge.
type PriceTarget struct {
	Price      float64
	Type       TargetType
	Confidence float64 // [0,1]
	Reasoning  string
}

// TrendDirection summarizes the prevailing trend.
type TrendDirection string

const (
	TrendUp       TrendDirection = "UPTREND"
	TrendDown     TrendDirection = "DOWNTREND"
	TrendSideways TrendDirection = "SIDEWAYS"
)

// TrendAnalysis summarizes trend direction and strength from a regression
// over recent closes.
type TrendAnalysis struct {
	Direction TrendDirection
	Strength  float64 // [0,1]
	Duration  int     // bars the regression covers
	Slope     float64 // price per bar
}

// MomentumAnalysis packages the momentum oscillator readings.
type MomentumAnalysis struct {
	RSI            float64
	MACD           float64
	MACDSignal     float64
	MACDHistogram  float64
	StochasticK    float64
	StochasticD    float64
	Interpretation string
}

// VolatilityAnalysis packages the volatility readings.
type VolatilityAnalysis struct {
	ATR             float64
	BollingerUpper  float64
	BollingerMiddle float64
	BollingerLower  float64
	Squeeze         bool
	Rank            float64 // [0,1] percentile-style rank of current volatility
}

// Result is the engine's terminal output for one symbol/timeframe
// analysis. Immutable; the caller owns any caching or expiry.
type Result struct {
	Symbol     string
	Timeframe  string
	LastClose  float64 // close the analysis was anchored to
	Indicators []IndicatorResult
	Patterns   []PatternResult
	Levels     []Level
	Trend      TrendAnalysis
	Momentum   MomentumAnalysis
	Volatility VolatilityAnalysis
}

// Action is a trading signal action.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// RiskLevel classifies signal risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// TradingSignal is a directional recommendation derived from one analysis.
type TradingSignal struct {
	Action      Action
	Confidence  float64 // [0,1]
	Reasoning   []string
	Targets     []PriceTarget
	StopLoss    float64
	TimeHorizon string
	Risk        RiskLevel
}
