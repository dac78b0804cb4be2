package patterns

import (
	"fmt"
	"math"

	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

// Triangle detection tuning.
const (
	// minTriangleBars is the minimum span between the first and last
	// swing point of a candidate triangle.
	minTriangleBars = 20

	// slopeEpsilon separates a flat trend line from a directional one,
	// measured as fraction of price per bar.
	slopeEpsilon = 0.001

	triangleMinPoints = 2

	ascendingConfidence   = 0.7
	descendingConfidence  = 0.7
	symmetricalConfidence = 0.6
	triangleTargetConf    = 0.6
)

// DetectTriangles classifies the converging or flat trend-line structure of
// the recent swing points. It fits one line through the swing highs and one
// through the swing lows, normalizes both slopes by the last close, and
// classifies:
//
//	flat top + rising bottom    -> ascending triangle
//	falling top + flat bottom   -> descending triangle
//	falling top + rising bottom -> symmetrical triangle
//
// At most one triangle is reported per series.
func DetectTriangles(candles []models.Candle) []analysis.PatternResult {
	if len(candles) < minTriangleBars {
		return nil
	}

	points := findLocalExtrema(candles, extremaLookback)
	highs := peaks(points)
	lows := troughs(points)
	if len(highs) < triangleMinPoints || len(lows) < triangleMinPoints {
		return nil
	}

	first := minIndex(highs[0].Index, lows[0].Index)
	last := maxIndex(highs[len(highs)-1].Index, lows[len(lows)-1].Index)
	if last-first < minTriangleBars {
		return nil
	}

	lastClose := candles[len(candles)-1].Close
	upperSlope, upperIntercept := fitLine(highs)
	lowerSlope, lowerIntercept := fitLine(lows)
	upNorm := normalizeSlope(upperSlope, lastClose)
	lowNorm := normalizeSlope(lowerSlope, lastClose)

	upperFlat := math.Abs(upNorm) < slopeEpsilon
	lowerFlat := math.Abs(lowNorm) < slopeEpsilon

	var (
		patternType analysis.PatternType
		confidence  float64
		description string
	)
	switch {
	case upperFlat && lowNorm > slopeEpsilon:
		patternType = analysis.PatternAscendingTriangle
		confidence = ascendingConfidence
		description = "Ascending triangle: flat resistance with rising support"
	case lowerFlat && upNorm < -slopeEpsilon:
		patternType = analysis.PatternDescendingTriangle
		confidence = descendingConfidence
		description = "Descending triangle: flat support with falling resistance"
	case upNorm < -slopeEpsilon && lowNorm > slopeEpsilon:
		patternType = analysis.PatternSymmetricalTriangle
		confidence = symmetricalConfidence
		description = "Symmetrical triangle: converging resistance and support"
	default:
		return nil
	}

	// Height at pattern start drives the measured-move projection.
	height := lineAt(upperSlope, upperIntercept, first) - lineAt(lowerSlope, lowerIntercept, first)
	if height < 0 {
		height = -height
	}
	resistanceNow := lineAt(upperSlope, upperIntercept, last)
	supportNow := lineAt(lowerSlope, lowerIntercept, last)

	var targets []analysis.PriceTarget
	switch patternType {
	case analysis.PatternAscendingTriangle:
		targets = append(targets, analysis.PriceTarget{
			Price:      resistanceNow + height,
			Type:       analysis.TargetPrice,
			Confidence: triangleTargetConf,
			Reasoning:  "Ascending triangle measured move above resistance",
		})
	case analysis.PatternDescendingTriangle:
		targets = append(targets, analysis.PriceTarget{
			Price:      supportNow - height,
			Type:       analysis.TargetPrice,
			Confidence: triangleTargetConf,
			Reasoning:  "Descending triangle measured move below support",
		})
	case analysis.PatternSymmetricalTriangle:
		targets = append(targets,
			analysis.PriceTarget{
				Price:      resistanceNow + height,
				Type:       analysis.TargetPrice,
				Confidence: triangleTargetConf * symmetricalConfidence,
				Reasoning:  "Symmetrical triangle measured move on upside breakout",
			},
			analysis.PriceTarget{
				Price:      supportNow - height,
				Type:       analysis.TargetPrice,
				Confidence: triangleTargetConf * symmetricalConfidence,
				Reasoning:  "Symmetrical triangle measured move on downside breakout",
			})
	}

	implications := []string{
		fmt.Sprintf("Resistance line near %.2f", resistanceNow),
		fmt.Sprintf("Support line near %.2f", supportNow),
		"Breakout direction confirms the pattern",
	}

	return []analysis.PatternResult{{
		Type:       patternType,
		Confidence: confidence,
		Points: []analysis.ChartPoint{
			chartPoint(highs[0]),
			chartPoint(highs[len(highs)-1]),
			chartPoint(lows[0]),
			chartPoint(lows[len(lows)-1]),
		},
		Description:  description,
		Implications: implications,
		Targets:      targets,
	}}
}

func minIndex(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxIndex(a, b int) int {
	if a > b {
		return a
	}
	return b
}
