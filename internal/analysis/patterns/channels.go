package patterns

import (
	"fmt"
	"math"

	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

// Channel detection tuning.
const (
	// maxChannelPivots caps the swing points sampled for the line fits.
	maxChannelPivots = 20

	// channelTouchTolerance is the relative distance within which a
	// swing point counts as touching its line.
	channelTouchTolerance = 0.02

	// channelMinTouches is required on each line.
	channelMinTouches = 2

	// channelParallelEpsilon bounds the normalized slope difference for
	// the two lines to count as parallel.
	channelParallelEpsilon = 0.001

	// channelTargetWidth and channelStopWidth size the projection and
	// stop as fractions of channel width.
	channelTargetWidth = 0.5
	channelStopWidth   = 0.3

	channelConfidence       = 0.65
	channelTargetConfidence = 0.6
)

// DetectChannels fits parallel trend lines through the recent swing highs
// and swing lows. Both lines need channelMinTouches touching points and
// near-equal normalized slopes. Rising channels project upward, falling
// channels downward; flat parallels are not reported.
func DetectChannels(candles []models.Candle) []analysis.PatternResult {
	if len(candles) < minTriangleBars {
		return nil
	}

	points := findLocalExtrema(candles, extremaLookback)
	if len(points) > maxChannelPivots {
		points = points[len(points)-maxChannelPivots:]
	}
	highs := peaks(points)
	lows := troughs(points)
	if len(highs) < channelMinTouches || len(lows) < channelMinTouches {
		return nil
	}

	upperSlope, upperIntercept := fitLine(highs)
	lowerSlope, lowerIntercept := fitLine(lows)

	lastClose := candles[len(candles)-1].Close
	upNorm := normalizeSlope(upperSlope, lastClose)
	lowNorm := normalizeSlope(lowerSlope, lastClose)
	if math.Abs(upNorm-lowNorm) >= channelParallelEpsilon {
		return nil
	}

	if countTouches(highs, upperSlope, upperIntercept) < channelMinTouches ||
		countTouches(lows, lowerSlope, lowerIntercept) < channelMinTouches {
		return nil
	}

	avgSlope := (upNorm + lowNorm) / 2
	var patternType analysis.PatternType
	var description string
	switch {
	case avgSlope > slopeEpsilon:
		patternType = analysis.PatternChannelUp
		description = "Rising channel: parallel support and resistance trending up"
	case avgSlope < -slopeEpsilon:
		patternType = analysis.PatternChannelDown
		description = "Falling channel: parallel support and resistance trending down"
	default:
		return nil
	}

	lastIdx := len(candles) - 1
	upperNow := lineAt(upperSlope, upperIntercept, lastIdx)
	lowerNow := lineAt(lowerSlope, lowerIntercept, lastIdx)
	width := upperNow - lowerNow
	if width <= 0 {
		return nil
	}

	var target, stop float64
	if patternType == analysis.PatternChannelUp {
		target = lastClose + width*channelTargetWidth
		stop = lastClose - width*channelStopWidth
	} else {
		target = lastClose - width*channelTargetWidth
		stop = lastClose + width*channelStopWidth
	}

	return []analysis.PatternResult{{
		Type:       patternType,
		Confidence: channelConfidence,
		Points: []analysis.ChartPoint{
			chartPoint(highs[0]),
			chartPoint(highs[len(highs)-1]),
			chartPoint(lows[0]),
			chartPoint(lows[len(lows)-1]),
		},
		Description: description,
		Implications: []string{
			fmt.Sprintf("Channel resistance near %.2f", upperNow),
			fmt.Sprintf("Channel support near %.2f", lowerNow),
		},
		Targets: []analysis.PriceTarget{
			{
				Price:      target,
				Type:       analysis.TargetPrice,
				Confidence: channelTargetConfidence,
				Reasoning:  "Half channel width projected in trend direction",
			},
			{
				Price:      stop,
				Type:       analysis.TargetStopLoss,
				Confidence: channelTargetConfidence,
				Reasoning:  "Stop at 30% of channel width against the trend",
			},
		},
	}}
}

// countTouches counts swing points within channelTouchTolerance of a line.
func countTouches(points []swingPoint, slope, intercept float64) int {
	count := 0
	for _, p := range points {
		lineP := lineAt(slope, intercept, p.Index)
		if lineP == 0 {
			continue
		}
		if math.Abs(p.Price-lineP)/math.Abs(lineP) <= channelTouchTolerance {
			count++
		}
	}
	return count
}
