// Package levels detects support and resistance price levels: classic floor
// pivots, clustered price-action levels, psychological round numbers,
// Fibonacci retracements/extensions, and high-volume prices. Absence of
// levels is an empty slice, not an error.
package levels

import (
	"ta-engine/internal/analysis"
)

// Floor-pivot strengths fade with distance from the pivot.
const (
	pivotStrengthP  = 0.7
	pivotStrength1  = 0.8
	pivotStrength2  = 0.6
	pivotStrength3  = 0.4
	pivotConfidence = 0.7
)

// PivotPoints holds the classic floor-trader pivot set.
type PivotPoints struct {
	Pivot float64
	R1    float64
	R2    float64
	R3    float64
	S1    float64
	S2    float64
	S3    float64
}

// CalculatePivots computes floor pivots from the prior bar's high, low, and
// close:
//
//	P  = (H+L+C)/3
//	R1 = 2P-L    S1 = 2P-H
//	R2 = P+(H-L) S2 = P-(H-L)
//	R3 = H+2(P-L) S3 = L-2(H-P)
func CalculatePivots(high, low, close float64) PivotPoints {
	p := (high + low + close) / 3
	rangeHL := high - low
	return PivotPoints{
		Pivot: p,
		R1:    2*p - low,
		R2:    p + rangeHL,
		R3:    high + 2*(p-low),
		S1:    2*p - high,
		S2:    p - rangeHL,
		S3:    low - 2*(high-p),
	}
}

// Levels expands the pivot set into typed levels. The central pivot is
// support when price trades above it and resistance below.
func (p PivotPoints) Levels(currentPrice float64) []analysis.Level {
	pivotType := analysis.LevelResistance
	if currentPrice > p.Pivot {
		pivotType = analysis.LevelSupport
	}
	return []analysis.Level{
		{Price: p.Pivot, Type: pivotType, Strength: pivotStrengthP, TouchCount: 1, Confidence: pivotConfidence, Source: "pivot"},
		{Price: p.R1, Type: analysis.LevelResistance, Strength: pivotStrength1, TouchCount: 1, Confidence: pivotConfidence, Source: "pivot"},
		{Price: p.R2, Type: analysis.LevelResistance, Strength: pivotStrength2, TouchCount: 1, Confidence: pivotConfidence, Source: "pivot"},
		{Price: p.R3, Type: analysis.LevelResistance, Strength: pivotStrength3, TouchCount: 1, Confidence: pivotConfidence, Source: "pivot"},
		{Price: p.S1, Type: analysis.LevelSupport, Strength: pivotStrength1, TouchCount: 1, Confidence: pivotConfidence, Source: "pivot"},
		{Price: p.S2, Type: analysis.LevelSupport, Strength: pivotStrength2, TouchCount: 1, Confidence: pivotConfidence, Source: "pivot"},
		{Price: p.S3, Type: analysis.LevelSupport, Strength: pivotStrength3, TouchCount: 1, Confidence: pivotConfidence, Source: "pivot"},
	}
}
