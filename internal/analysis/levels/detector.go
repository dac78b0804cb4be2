package levels

import (
	"math"
	"sort"

	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

// Merge tuning.
const (
	// dedupTolerance merges same-type levels within this relative
	// distance; the higher-strength one survives.
	dedupTolerance = 0.005

	// maxLevels caps the merged output.
	maxLevels = 20
)

// Detector runs every level search over one candle series.
type Detector struct{}

// NewDetector creates a level detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectAll unions pivot, dynamic, psychological, Fibonacci, and volume
// levels, removes same-type duplicates within dedupTolerance keeping the
// stronger one, and returns at most maxLevels sorted by strength
// descending.
func (d *Detector) DetectAll(candles []models.Candle) []analysis.Level {
	if len(candles) == 0 {
		return []analysis.Level{}
	}

	last := candles[len(candles)-1]
	all := make([]analysis.Level, 0)
	all = append(all, CalculatePivots(last.High, last.Low, last.Close).Levels(last.Close)...)
	all = append(all, DetectDynamicLevels(candles)...)
	all = append(all, DetectPsychologicalLevels(last.Close)...)
	all = append(all, DetectFibonacciLevels(candles)...)
	all = append(all, DetectVolumeLevels(candles)...)

	merged := Dedup(all)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Strength > merged[j].Strength
	})
	if len(merged) > maxLevels {
		merged = merged[:maxLevels]
	}
	return merged
}

// Dedup collapses same-type levels within dedupTolerance of each other,
// keeping the higher-strength one. The input is not modified.
func Dedup(levels []analysis.Level) []analysis.Level {
	var merged []analysis.Level
	for _, candidate := range levels {
		duplicate := false
		for i, kept := range merged {
			if kept.Type != candidate.Type || kept.Price == 0 {
				continue
			}
			if math.Abs(candidate.Price-kept.Price)/math.Abs(kept.Price) < dedupTolerance {
				duplicate = true
				if candidate.Strength > kept.Strength {
					merged[i] = candidate
				}
				break
			}
		}
		if !duplicate {
			merged = append(merged, candidate)
		}
	}
	if merged == nil {
		merged = []analysis.Level{}
	}
	return merged
}
