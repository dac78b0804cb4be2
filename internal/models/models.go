// Package models provides domain models shared across the analysis engine.
package models

import (
	"time"
)

// Timeframe identifies the bar interval of a candle series.
type Timeframe string

const (
	Timeframe1Min  Timeframe = "1min"
	Timeframe5Min  Timeframe = "5min"
	Timeframe15Min Timeframe = "15min"
	Timeframe30Min Timeframe = "30min"
	Timeframe1Hour Timeframe = "1hour"
	Timeframe4Hour Timeframe = "4hour"
	TimeframeDay   Timeframe = "1d"
	TimeframeWeek  Timeframe = "1w"
)

// Intraday reports whether the timeframe is shorter than one hour.
func (t Timeframe) Intraday() bool {
	switch t {
	case Timeframe1Min, Timeframe5Min, Timeframe15Min, Timeframe30Min:
		return true
	}
	return false
}

// Candle represents OHLCV data for one bar. Series are ordered oldest first.
type Candle struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// Range returns the high-low span of the candle.
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// TypicalPrice returns (H+L+C)/3.
func (c Candle) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3
}

// Closes extracts close prices from a candle series.
func Closes(candles []Candle) []float64 {
	prices := make([]float64, len(candles))
	for i, c := range candles {
		prices[i] = c.Close
	}
	return prices
}

// Highs extracts high prices from a candle series.
func Highs(candles []Candle) []float64 {
	prices := make([]float64, len(candles))
	for i, c := range candles {
		prices[i] = c.High
	}
	return prices
}

// Lows extracts low prices from a candle series.
func Lows(candles []Candle) []float64 {
	prices := make([]float64, len(candles))
	for i, c := range candles {
		prices[i] = c.Low
	}
	return prices
}

// Volumes extracts volumes from a candle series.
func Volumes(candles []Candle) []int64 {
	vols := make([]int64, len(candles))
	for i, c := range candles {
		vols[i] = c.Volume
	}
	return vols
}
