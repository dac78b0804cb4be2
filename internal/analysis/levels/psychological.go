package levels

import (
	"math"

	"ta-engine/internal/analysis"
)

// Psychological level tuning.
const (
	// psychWindow bounds candidates to this relative distance from price.
	psychWindow = 0.2

	psychBaseStrength = 0.5
	psychConfidence   = 0.5
)

// roundInterval picks the round-number spacing for a price magnitude.
func roundInterval(price float64) float64 {
	switch {
	case price < 10:
		return 0.1
	case price < 100:
		return 1
	case price < 500:
		return 5
	case price < 1000:
		return 10
	default:
		return 50
	}
}

// DetectPsychologicalLevels enumerates round-number prices within ±20% of
// the current price. Strength decays linearly with distance from price.
func DetectPsychologicalLevels(currentPrice float64) []analysis.Level {
	if currentPrice <= 0 {
		return nil
	}

	interval := roundInterval(currentPrice)
	low := currentPrice * (1 - psychWindow)
	high := currentPrice * (1 + psychWindow)

	var result []analysis.Level
	for price := math.Ceil(low/interval) * interval; price <= high; price += interval {
		if price <= 0 || price == currentPrice {
			continue
		}
		distance := math.Abs(price-currentPrice) / currentPrice
		strength := psychBaseStrength * (1 - distance/psychWindow)
		if strength <= 0 {
			continue
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
			Confidence: psychConfidence,
			Source:     "psychological",
		})
	}
	return result
}
