package indicators

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"ta-engine/internal/models"
)

// priceSliceGen generates a positive price series of at least minLen values.
func priceSliceGen(minLen, maxLen int) gopter.Gen {
	return gen.SliceOfN(maxLen, gen.Float64Range(100.0, 1000.0)).Map(func(prices []float64) []float64 {
		for len(prices) < minLen {
			prices = append(prices, prices[len(prices)-1])
		}
		for i := range prices {
			if prices[i] <= 0 {
				prices[i] = 100.0
			}
		}
		return prices
	})
}

// candleGen generates valid candle data with realistic OHLCV values.
func candleGen() gopter.Gen {
	return gen.Struct(reflect.TypeOf(models.Candle{}), map[string]gopter.Gen{
		"Timestamp": gen.TimeRange(time.Now().Add(-365*24*time.Hour), time.Hour),
		"Open":      gen.Float64Range(100.0, 1000.0),
		"High":      gen.Float64Range(100.0, 1000.0),
		"Low":       gen.Float64Range(100.0, 1000.0),
		"Close":     gen.Float64Range(100.0, 1000.0),
		"Volume":    gen.Int64Range(1000, 10000000),
	}).Map(func(c models.Candle) models.Candle {
		if c.Open <= 0 {
			c.Open = 100.0
		}
		if c.Close <= 0 {
			c.Close = 100.0
		}
		c.High = math.Max(c.High, math.Max(c.Open, c.Close))
		c.Low = math.Min(c.Low, math.Min(c.Open, c.Close))
		if c.Low > c.High {
			c.Low, c.High = c.High, c.Low
		}
		if c.High <= c.Low {
			c.High = c.Low + 1.0
		}
		return c
	})
}

// candleSliceGen generates a slice of valid candles.
func candleSliceGen(minLen, maxLen int) gopter.Gen {
	return gen.SliceOfN(maxLen, candleGen()).Map(func(candles []models.Candle) []models.Candle {
		for len(candles) < minLen {
			candles = append(candles, candles[len(candles)-1])
		}
		for i := range candles {
			candles[i].Timestamp = time.Now().Add(time.Duration(i) * time.Hour)
		}
		return candles
	})
}

func TestProperty_RSIWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("RSI values are within [0, 100]", prop.ForAll(
		func(prices []float64) bool {
			result, err := NewRSI(14).Calculate(prices)
			if err != nil {
				return true
			}
			for _, v := range result.Values {
				if v < 0 || v > 100 || math.IsNaN(v) || math.IsInf(v, 0) {
					return false
				}
			}
			return true
		},
		priceSliceGen(20, 100),
	))

	properties.TestingRun(t)
}

func TestProperty_StochasticWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Stochastic %K and %D values are within [0, 100]", prop.ForAll(
		func(candles []models.Candle) bool {
			result, err := NewStochastic(14, 3).Calculate(
				models.Highs(candles), models.Lows(candles), models.Closes(candles))
			if err != nil {
				return true
			}
			for _, v := range result.K {
				if v < 0 || v > 100 || math.IsNaN(v) {
					return false
				}
			}
			for _, v := range result.D {
				if v < 0 || v > 100 || math.IsNaN(v) {
					return false
				}
			}
			return true
		},
		candleSliceGen(25, 100),
	))

	properties.TestingRun(t)
}

func TestProperty_BollingerBandsOrdering(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Bollinger Bands: Lower <= Middle <= Upper", prop.ForAll(
		func(prices []float64) bool {
			result, err := NewBollinger(20, 2.0).Calculate(prices)
			if err != nil {
				return true
			}
			for i := range result.Middle {
				if result.Lower[i] > result.Middle[i] || result.Middle[i] > result.Upper[i] {
					return false
				}
			}
			return true
		},
		priceSliceGen(25, 100),
	))

	properties.TestingRun(t)
}

func TestProperty_SMAIsAverageOfPrices(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("SMA is the arithmetic mean of prices over the period", prop.ForAll(
		func(prices []float64) bool {
			period := 10
			result, err := NewSMA(period).Calculate(prices)
			if err != nil {
				return true
			}
			if len(result.Values) != len(prices)-period+1 {
				return false
			}
			for i, v := range result.Values {
				expected := mean(prices[i : i+period])
				if math.Abs(v-expected) > 0.0001 {
					return false
				}
			}
			return true
		},
		priceSliceGen(15, 50),
	))

	properties.TestingRun(t)
}

func TestProperty_ATRIsNonNegative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("ATR values are non-negative", prop.ForAll(
		func(candles []models.Candle) bool {
			result, err := NewATR(14).Calculate(
				models.Highs(candles), models.Lows(candles), models.Closes(candles))
			if err != nil {
				return true
			}
			for _, v := range result.Values {
				if v < 0 || math.IsNaN(v) {
					return false
				}
			}
			return true
		},
		candleSliceGen(20, 100),
	))

	properties.TestingRun(t)
}

func TestProperty_MACDHistogramIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Histogram equals MACD minus signal at every aligned index", prop.ForAll(
		func(prices []float64) bool {
			result, err := NewMACD(12, 26, 9).Calculate(prices)
			if err != nil {
				return true
			}
			offset := 9 - 1
			for i := range result.Histogram {
				expected := result.MACD[i+offset] - result.SignalLine[i]
				if math.Abs(result.Histogram[i]-expected) > 1e-9 {
					return false
				}
			}
			return true
		},
		priceSliceGen(40, 120),
	))

	properties.TestingRun(t)
}

func TestProperty_EMAOutputLength(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("EMA output drops exactly the warm-up window", prop.ForAll(
		func(prices []float64) bool {
			period := 12
			result, err := NewEMA(period).Calculate(prices)
			if err != nil {
				return true
			}
			return len(result.Values) == len(prices)-period+1
		},
		priceSliceGen(15, 80),
	))

	properties.TestingRun(t)
}
