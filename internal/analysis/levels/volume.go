package levels

import (
	"math"
	"sort"

	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

// Volume level tuning.
const (
	// volumeSpikeFactor marks a bar as high-volume relative to the mean.
	volumeSpikeFactor = 1.5

	// volumeMinBars is the minimum high-volume bars per price bucket.
	volumeMinBars = 2

	volumeBaseStrength = 0.5
	volumeConfidence   = 0.6

	// volumeStrengthSaturation is the relative volume that scores full
	// strength.
	volumeStrengthSaturation = 3.0
)

// DetectVolumeLevels finds prices where unusually heavy trading clustered.
// Bars with volume at least volumeSpikeFactor times the series mean are
// bucketed by rounded typical price; buckets with volumeMinBars or more
// bars become levels weighted by their relative volume.
func DetectVolumeLevels(candles []models.Candle) []analysis.Level {
	if len(candles) == 0 {
		return nil
	}

	var meanVolume float64
	for _, c := range candles {
		meanVolume += float64(c.Volume)
	}
	meanVolume /= float64(len(candles))
	if meanVolume == 0 {
		return nil
	}

	currentPrice := candles[len(candles)-1].Close
	interval := roundInterval(currentPrice)

	type bucket struct {
		priceSum  float64
		volumeSum float64
		bars      int
	}
	buckets := make(map[float64]*bucket)
	for _, c := range candles {
		if float64(c.Volume) < volumeSpikeFactor*meanVolume {
			continue
		}
		price := c.TypicalPrice()
		key := math.Round(price/interval) * interval
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.priceSum += price
		b.volumeSum += float64(c.Volume)
		b.bars++
	}

	keys := make([]float64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	var result []analysis.Level
	for _, k := range keys {
		b := buckets[k]
		if b.bars < volumeMinBars {
			continue
		}
		price := b.priceSum / float64(b.bars)
		relVolume := b.volumeSum / (float64(b.bars) * meanVolume)
		strength := volumeBaseStrength * math.Min(relVolume/volumeStrengthSaturation, 1)
		strength = math.Max(strength, dynamicMinStrength)

		levelType := analysis.LevelResistance
		if price < currentPrice {
			levelType = analysis.LevelSupport
		}
		result = append(result, analysis.Level{
			Price:      price,
			Type:       levelType,
			Strength:   strength,
			TouchCount: b.bars,
			Volume:     b.volumeSum,
			Confidence: volumeConfidence,
			Source:     "volume",
		})
	}
	return result
}
