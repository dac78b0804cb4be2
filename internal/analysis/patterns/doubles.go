package patterns

import (
	"fmt"
	"math"

	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

// Double top/bottom tuning.
const (
	// doublePairTolerance is the maximum relative price difference
	// between the two peaks (or troughs) of a pair.
	doublePairTolerance = 0.03

	// doubleMinSeparation is the minimum bar distance between the pair.
	doubleMinSeparation = 10

	// doubleMinRetrace is the minimum relative depth of the move between
	// the pair.
	doubleMinRetrace = 0.05

	doubleConfidence       = 0.7
	doubleTargetConfidence = 0.65
)

// DetectDoubleTops finds two peaks of near-equal height separated by a deep
// enough trough. The target projects the peak-to-trough distance below the
// intervening trough.
func DetectDoubleTops(candles []models.Candle) []analysis.PatternResult {
	points := findLocalExtrema(candles, extremaLookback)
	highs := peaks(points)
	lows := troughs(points)

	var results []analysis.PatternResult
	for i := 0; i+1 < len(highs); i++ {
		first, second := highs[i], highs[i+1]
		if second.Index-first.Index < doubleMinSeparation {
			continue
		}
		if first.Price == 0 || math.Abs(first.Price-second.Price)/first.Price > doublePairTolerance {
			continue
		}

		valley, ok := troughBetween(lows, first.Index, second.Index)
		if !ok {
			continue
		}
		higher := math.Max(first.Price, second.Price)
		if (higher-valley.Price)/higher < doubleMinRetrace {
			continue
		}

		target := valley.Price - (higher - valley.Price)
		results = append(results, analysis.PatternResult{
			Type:       analysis.PatternDoubleTop,
			Confidence: doubleConfidence,
			Points: []analysis.ChartPoint{
				chartPoint(first),
				chartPoint(valley),
				chartPoint(second),
			},
			Description: fmt.Sprintf("Double top at %.2f/%.2f over valley %.2f", first.Price, second.Price, valley.Price),
			Implications: []string{
				fmt.Sprintf("Resistance confirmed near %.2f", higher),
				fmt.Sprintf("Break below %.2f confirms reversal", valley.Price),
			},
			Targets: []analysis.PriceTarget{{
				Price:      target,
				Type:       analysis.TargetPrice,
				Confidence: doubleTargetConfidence,
				Reasoning:  "Double top measured move below the intervening valley",
			}},
		})
	}
	return results
}

// DetectDoubleBottoms mirrors DetectDoubleTops on the swing lows.
func DetectDoubleBottoms(candles []models.Candle) []analysis.PatternResult {
	points := findLocalExtrema(candles, extremaLookback)
	highs := peaks(points)
	lows := troughs(points)

	var results []analysis.PatternResult
	for i := 0; i+1 < len(lows); i++ {
		first, second := lows[i], lows[i+1]
		if second.Index-first.Index < doubleMinSeparation {
			continue
		}
		if first.Price == 0 || math.Abs(first.Price-second.Price)/first.Price > doublePairTolerance {
			continue
		}

		crest, ok := peakBetween(highs, first.Index, second.Index)
		if !ok {
			continue
		}
		lower := math.Min(first.Price, second.Price)
		if lower == 0 || (crest.Price-lower)/lower < doubleMinRetrace {
			continue
		}

		target := crest.Price + (crest.Price - lower)
		results = append(results, analysis.PatternResult{
			Type:       analysis.PatternDoubleBottom,
			Confidence: doubleConfidence,
			Points: []analysis.ChartPoint{
				chartPoint(first),
				chartPoint(crest),
				chartPoint(second),
			},
			Description: fmt.Sprintf("Double bottom at %.2f/%.2f under crest %.2f", first.Price, second.Price, crest.Price),
			Implications: []string{
				fmt.Sprintf("Support confirmed near %.2f", lower),
				fmt.Sprintf("Break above %.2f confirms reversal", crest.Price),
			},
			Targets: []analysis.PriceTarget{{
				Price:      target,
				Type:       analysis.TargetPrice,
				Confidence: doubleTargetConfidence,
				Reasoning:  "Double bottom measured move above the intervening crest",
			}},
		})
	}
	return results
}

// troughBetween returns the lowest trough strictly between two bar indexes.
func troughBetween(lows []swingPoint, start, end int) (swingPoint, bool) {
	var best swingPoint
	found := false
	for _, t := range lows {
		if t.Index <= start || t.Index >= end {
			continue
		}
		if !found || t.Price < best.Price {
			best = t
			found = true
		}
	}
	return best, found
}

// peakBetween returns the highest peak strictly between two bar indexes.
func peakBetween(highs []swingPoint, start, end int) (swingPoint, bool) {
	var best swingPoint
	found := false
	for _, p := range highs {
		if p.Index <= start || p.Index >= end {
			continue
		}
		if !found || p.Price > best.Price {
			best = p
			found = true
		}
	}
	return best, found
}
