package patterns

import (
	"sort"

	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

// Detector runs every pattern search over one candle series.
type Detector struct{}

// NewDetector creates a pattern detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectAll runs triangle, head-and-shoulders, double top/bottom, and
// channel detection, returning the union sorted by confidence descending.
// No patterns means an empty slice.
func (d *Detector) DetectAll(candles []models.Candle) []analysis.PatternResult {
	results := make([]analysis.PatternResult, 0)
	results = append(results, DetectTriangles(candles)...)
	results = append(results, DetectHeadAndShoulders(candles)...)
	results = append(results, DetectDoubleTops(candles)...)
	results = append(results, DetectDoubleBottoms(candles)...)
	results = append(results, DetectChannels(candles)...)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	return results
}
