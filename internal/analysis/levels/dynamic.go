package levels

import (
	"math"

	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

// Dynamic clustering tuning.
const (
	// dynamicLookback bounds the bars scanned for swing points.
	dynamicLookback = 50

	// dynamicExtremaWindow is the bars on each side a swing must exceed.
	dynamicExtremaWindow = 2

	// dynamicGroupTolerance merges swings within this relative distance
	// of a cluster's mean price.
	dynamicGroupTolerance = 0.01

	// dynamicTestTolerance counts a close within this relative distance
	// as a test of the level.
	dynamicTestTolerance = 0.005

	// dynamicMinStrength discards weaker clusters.
	dynamicMinStrength = 0.3

	// Strength weights; they sum to 1.
	weightTouches = 0.4
	weightTests   = 0.2
	weightRecency = 0.2
	weightVolume  = 0.2

	// touchSaturation is the touch count that scores full weight.
	touchSaturation = 5.0

	// testSaturation is the test count that scores full weight.
	testSaturation = 10.0
)

type cluster struct {
	prices    []float64
	indexes   []int
	volumeSum float64
}

func (c *cluster) meanPrice() float64 {
	var total float64
	for _, p := range c.prices {
		total += p
	}
	return total / float64(len(c.prices))
}

func (c *cluster) lastIndex() int {
	last := c.indexes[0]
	for _, i := range c.indexes[1:] {
		if i > last {
			last = i
		}
	}
	return last
}

// DetectDynamicLevels clusters recent swing highs and lows into price
// levels and scores each cluster by touch count, close-proximity tests,
// recency of the last touch, and relative volume. Clusters scoring below
// dynamicMinStrength are dropped.
func DetectDynamicLevels(candles []models.Candle) []analysis.Level {
	if len(candles) < 2*dynamicExtremaWindow+1 {
		return nil
	}
	if len(candles) > dynamicLookback {
		candles = candles[len(candles)-dynamicLookback:]
	}

	var clusters []*cluster
	add := func(price float64, index int, volume float64) {
		for _, c := range clusters {
			m := c.meanPrice()
			if m != 0 && math.Abs(price-m)/m <= dynamicGroupTolerance {
				c.prices = append(c.prices, price)
				c.indexes = append(c.indexes, index)
				c.volumeSum += volume
				return
			}
		}
		clusters = append(clusters, &cluster{
			prices:    []float64{price},
			indexes:   []int{index},
			volumeSum: volume,
		})
	}

	for i := dynamicExtremaWindow; i < len(candles)-dynamicExtremaWindow; i++ {
		isPeak := true
		isTrough := true
		for j := 1; j <= dynamicExtremaWindow; j++ {
			if candles[i].High <= candles[i-j].High || candles[i].High <= candles[i+j].High {
				isPeak = false
			}
			if candles[i].Low >= candles[i-j].Low || candles[i].Low >= candles[i+j].Low {
				isTrough = false
			}
		}
		if isPeak {
			add(candles[i].High, i, float64(candles[i].Volume))
		}
		if isTrough {
			add(candles[i].Low, i, float64(candles[i].Volume))
		}
	}
	if len(clusters) == 0 {
		return nil
	}

	var meanVolume float64
	for _, c := range candles {
		meanVolume += float64(c.Volume)
	}
	meanVolume /= float64(len(candles))

	currentPrice := candles[len(candles)-1].Close
	var result []analysis.Level
	for _, c := range clusters {
		price := c.meanPrice()
		touches := float64(len(c.prices))

		tests := 0.0
		for _, bar := range candles {
			if price != 0 && math.Abs(bar.Close-price)/price <= dynamicTestTolerance {
				tests++
			}
		}

		recency := float64(c.lastIndex()) / float64(len(candles)-1)

		volumeScore := 0.0
		if meanVolume > 0 {
			avgClusterVol := c.volumeSum / touches
			volumeScore = math.Min(avgClusterVol/meanVolume, 1)
		}

		strength := weightTouches*math.Min(touches/touchSaturation, 1) +
			weightTests*math.Min(tests/testSaturation, 1) +
			weightRecency*recency +
			weightVolume*volumeScore
		if strength < dynamicMinStrength {
			continue
		}

		levelType := analysis.LevelResistance
		if price < currentPrice {
			levelType = analysis.LevelSupport
		}
		result = append(result, analysis.Level{
			Price:      price,
			Type:       levelType,
			Strength:   math.Min(strength, 1),
			TouchCount: len(c.prices),
			Volume:     c.volumeSum,
			Confidence: math.Min(strength, 1),
			Source:     "dynamic",
		})
	}
	return result
}
