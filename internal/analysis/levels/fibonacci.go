package levels

import (
	"math"

	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

// Fibonacci level tuning.
const (
	// Retracements must sit within this relative distance band of price.
	fibRetraceMinDistance = 0.01
	fibRetraceMaxDistance = 0.20

	// Extensions project further, so the band is wider.
	fibExtensionMinDistance = 0.02
	fibExtensionMaxDistance = 0.50

	fibBaseStrength   = 0.55
	fibGoldenStrength = 0.7
	fibConfidence     = 0.6
)

var (
	fibRetracements = []float64{0.236, 0.382, 0.5, 0.618, 0.786}
	fibExtensions   = []float64{1.272, 1.414, 1.618, 2.0, 2.618}
)

// goldenRatio reports whether a ratio is one of the boosted golden values.
func goldenRatio(ratio float64) bool {
	switch ratio {
	case 0.382, 0.618, 1.272, 1.618:
		return true
	}
	return false
}

// DetectFibonacciLevels derives retracement and extension levels from the
// highest high and lowest low of the series. Retracements measure pullbacks
// inside the swing; extensions project beyond it. Levels outside their
// distance band from the current price are dropped, and the golden ratios
// score higher strength.
func DetectFibonacciLevels(candles []models.Candle) []analysis.Level {
	if len(candles) == 0 {
		return nil
	}

	high := candles[0].High
	low := candles[0].Low
	for _, c := range candles[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	swing := high - low
	if swing <= 0 {
		return nil
	}
	currentPrice := candles[len(candles)-1].Close
	if currentPrice <= 0 {
		return nil
	}

	var result []analysis.Level
	appendLevel := func(price, ratio, minDist, maxDist float64, source string) {
		distance := math.Abs(price-currentPrice) / currentPrice
		if distance < minDist || distance > maxDist || price <= 0 {
			return
		}
		strength := fibBaseStrength
		if goldenRatio(ratio) {
			strength = fibGoldenStrength
		}
		levelType := analysis.LevelResistance
		if price < currentPrice {
			levelType = analysis.LevelSupport
		}
		result = append(result, analysis.Level{
			Price:      price,
			Type:       levelType,
			Strength:   strength,
			TouchCount: 1,
			Confidence: fibConfidence,
			Source:     source,
		})
	}

	for _, ratio := range fibRetracements {
		appendLevel(high-swing*ratio, ratio, fibRetraceMinDistance, fibRetraceMaxDistance, "fibonacci")
	}
	for _, ratio := range fibExtensions {
		appendLevel(low+swing*ratio, ratio, fibExtensionMinDistance, fibExtensionMaxDistance, "fibonacci-extension")
	}
	return result
}
