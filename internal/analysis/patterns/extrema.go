// Package patterns detects chart formations over candle series: triangles,
// head-and-shoulders, double tops/bottoms, and price channels. Detection is
// deterministic and bounded; absence of a pattern is an empty slice, not an
// error.
package patterns

import (
	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

// Extrema detection bounds.
const (
	// extremaLookback is the number of bars on each side a bar must
	// strictly exceed to count as a swing point.
	extremaLookback = 3

	// maxExtrema caps the swing points considered by any detector.
	maxExtrema = 50
)

// swingPoint is one local extremum in the series.
type swingPoint struct {
	Index  int
	Price  float64
	IsPeak bool
}

// findLocalExtrema locates swing highs and swing lows. A swing high is a
// bar whose high is strictly greater than the highs of the lookback bars on
// both sides; swing lows mirror on the lows. Ties do not qualify. The
// result is ordered by index and capped at maxExtrema, keeping the most
// recent points.
func findLocalExtrema(candles []models.Candle, lookback int) []swingPoint {
	var points []swingPoint
	for i := lookback; i < len(candles)-lookback; i++ {
		isPeak := true
		isTrough := true
		for j := 1; j <= lookback; j++ {
			if candles[i].High <= candles[i-j].High || candles[i].High <= candles[i+j].High {
				isPeak = false
			}
			if candles[i].Low >= candles[i-j].Low || candles[i].Low >= candles[i+j].Low {
				isTrough = false
			}
			if !isPeak && !isTrough {
				break
			}
		}
		if isPeak {
			points = append(points, swingPoint{Index: i, Price: candles[i].High, IsPeak: true})
		}
		if isTrough {
			points = append(points, swingPoint{Index: i, Price: candles[i].Low, IsPeak: false})
		}
	}
	if len(points) > maxExtrema {
		points = points[len(points)-maxExtrema:]
	}
	return points
}

// peaks filters swing highs from a point list.
func peaks(points []swingPoint) []swingPoint {
	var out []swingPoint
	for _, p := range points {
		if p.IsPeak {
			out = append(out, p)
		}
	}
	return out
}

// troughs filters swing lows from a point list.
func troughs(points []swingPoint) []swingPoint {
	var out []swingPoint
	for _, p := range points {
		if !p.IsPeak {
			out = append(out, p)
		}
	}
	return out
}

func chartPoint(p swingPoint) analysis.ChartPoint {
	return analysis.ChartPoint{Index: p.Index, Price: p.Price}
}
