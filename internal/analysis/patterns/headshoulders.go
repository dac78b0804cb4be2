package patterns

import (
	"fmt"
	"math"

	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

// Head-and-shoulders tuning.
const (
	// shoulderTolerance is the maximum relative difference between the
	// two shoulder peaks.
	shoulderTolerance = 0.05

	hsConfidence       = 0.75
	hsTargetConfidence = 0.7
)

// DetectHeadAndShoulders scans consecutive peak triples for a head flanked
// by two lower shoulders of comparable height. The neckline sits at the
// lower of the two shoulders; the target projects the head-to-neckline
// distance below the neckline.
func DetectHeadAndShoulders(candles []models.Candle) []analysis.PatternResult {
	points := findLocalExtrema(candles, extremaLookback)
	highs := peaks(points)
	if len(highs) < 3 {
		return nil
	}

	var results []analysis.PatternResult
	for i := 0; i+2 < len(highs); i++ {
		left, head, right := highs[i], highs[i+1], highs[i+2]
		if head.Price <= left.Price || head.Price <= right.Price {
			continue
		}
		if left.Price == 0 {
			continue
		}
		if math.Abs(left.Price-right.Price)/left.Price > shoulderTolerance {
			continue
		}

		neckline := math.Min(left.Price, right.Price)
		target := neckline - (head.Price - neckline)

		results = append(results, analysis.PatternResult{
			Type:       analysis.PatternHeadAndShoulders,
			Confidence: hsConfidence,
			Points: []analysis.ChartPoint{
				chartPoint(left),
				chartPoint(head),
				chartPoint(right),
			},
			Description: fmt.Sprintf("Head and shoulders: head %.2f over neckline %.2f", head.Price, neckline),
			Implications: []string{
				fmt.Sprintf("Neckline support near %.2f", neckline),
				"Break below the neckline signals reversal",
			},
			Targets: []analysis.PriceTarget{{
				Price:      target,
				Type:       analysis.TargetPrice,
				Confidence: hsTargetConfidence,
				Reasoning:  "Head-to-neckline distance projected below the neckline",
			}},
		})
	}
	return results
}
