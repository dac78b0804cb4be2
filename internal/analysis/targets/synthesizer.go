// Package targets synthesizes price targets from Fibonacci swings, detected
// support/resistance levels, and pattern measured moves.
package targets

import (
	"fmt"
	"math"
	"sort"

	"ta-engine/internal/analysis"
	"ta-engine/internal/analysis/levels"
	"ta-engine/internal/models"
)

// Synthesis tuning.
const (
	// Targets must sit within this relative distance band of price.
	minTargetDistance = 0.01
	maxTargetDistance = 0.30

	// targetDedupTolerance merges same-type targets; the higher
	// confidence one survives.
	targetDedupTolerance = 0.015

	// maxTargets caps the output.
	maxTargets = 8

	// Level-derived confidence blends strength and confidence.
	levelStrengthWeight   = 0.6
	levelConfidenceWeight = 0.4

	// rankPenalty discounts each successive level by distance rank.
	rankPenalty = 0.08

	fibTargetConfidence = 0.55
)

// Synthesizer builds a ranked target list for one analysis.
type Synthesizer struct{}

// NewSynthesizer creates a target synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize unions Fibonacci, level-based, and pattern targets; keeps only
// targets within the 1-30% distance band of the last close; dedups at 1.5%
// keeping higher confidence; and returns at most maxTargets sorted by
// confidence descending.
func (s *Synthesizer) Synthesize(candles []models.Candle, detected []analysis.Level, patterns []analysis.PatternResult) []analysis.PriceTarget {
	if len(candles) == 0 {
		return []analysis.PriceTarget{}
	}
	price := candles[len(candles)-1].Close
	if price <= 0 {
		return []analysis.PriceTarget{}
	}

	all := make([]analysis.PriceTarget, 0)
	all = append(all, fibonacciTargets(candles)...)
	all = append(all, levelTargets(detected, price)...)
	for _, p := range patterns {
		all = append(all, p.Targets...)
	}

	inBand := all[:0]
	for _, t := range all {
		distance := math.Abs(t.Price-price) / price
		if distance < minTargetDistance || distance > maxTargetDistance {
			continue
		}
		inBand = append(inBand, t)
	}

	merged := dedup(inBand)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	if len(merged) > maxTargets {
		merged = merged[:maxTargets]
	}
	return merged
}

// fibonacciTargets converts the Fibonacci swing levels into targets.
func fibonacciTargets(candles []models.Candle) []analysis.PriceTarget {
	var out []analysis.PriceTarget
	for _, lvl := range levels.DetectFibonacciLevels(candles) {
		out = append(out, analysis.PriceTarget{
			Price:      lvl.Price,
			Type:       analysis.TargetPrice,
			Confidence: fibTargetConfidence * (lvl.Strength / 0.55),
			Reasoning:  fmt.Sprintf("Fibonacci level at %.2f", lvl.Price),
		})
	}
	return out
}

// levelTargets turns detected levels into targets. Confidence blends the
// level's strength and confidence, then fades with the level's distance
// rank so nearer levels outrank farther ones of equal quality.
func levelTargets(detected []analysis.Level, price float64) []analysis.PriceTarget {
	byDistance := make([]analysis.Level, len(detected))
	copy(byDistance, detected)
	sort.SliceStable(byDistance, func(i, j int) bool {
		return math.Abs(byDistance[i].Price-price) < math.Abs(byDistance[j].Price-price)
	})

	var out []analysis.PriceTarget
	for rank, lvl := range byDistance {
		confidence := lvl.Strength*levelStrengthWeight + lvl.Confidence*levelConfidenceWeight
		confidence *= 1 - rankPenalty*float64(rank)
		if confidence <= 0 {
			continue
		}
		out = append(out, analysis.PriceTarget{
			Price:      lvl.Price,
			Type:       analysis.TargetPrice,
			Confidence: math.Min(confidence, 1),
			Reasoning:  fmt.Sprintf("%s %s level at %.2f", lvl.Source, lvl.Type, lvl.Price),
		})
	}
	return out
}

// dedup collapses same-type targets within targetDedupTolerance, keeping
// the higher-confidence one.
func dedup(targets []analysis.PriceTarget) []analysis.PriceTarget {
	merged := make([]analysis.PriceTarget, 0, len(targets))
	for _, candidate := range targets {
		duplicate := false
		for i, kept := range merged {
			if kept.Type != candidate.Type || kept.Price == 0 {
				continue
			}
			if math.Abs(candidate.Price-kept.Price)/math.Abs(kept.Price) < targetDedupTolerance {
				duplicate = true
				if candidate.Confidence > kept.Confidence {
					merged[i] = candidate
				}
				break
			}
		}
		if !duplicate {
			merged = append(merged, candidate)
		}
	}
	return merged
}
