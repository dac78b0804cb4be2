package engine

import (
	"fmt"

	"ta-engine/internal/analysis"
	"ta-engine/internal/models"
)

// Signal tuning.
const (
	// Confidence blends indicator consensus with trend strength.
	consensusWeight = 0.6
	trendWeight     = 0.4

	// Volatility rank cutoffs for risk grading.
	lowRiskRank    = 0.33
	mediumRiskRank = 0.66

	// atrStopMultiple sizes the fallback stop when no level is usable.
	atrStopMultiple = 2.0
)

// GenerateSignals derives a directional recommendation from one analysis.
// BUY needs a bullish indicator majority and an uptrend; SELL mirrors it.
// Anything else is HOLD. Targets and the stop come from the synthesizer and
// the detected levels; risk grades off the volatility rank.
func (e *Engine) GenerateSignals(result *analysis.Result, candles []models.Candle) (*analysis.TradingSignal, error) {
	if result == nil || len(candles) == 0 {
		return nil, fmt.Errorf("signal generation needs a prior analysis")
	}

	bullish, bearish := 0, 0
	for _, ind := range result.Indicators {
		switch ind.Signal {
		case analysis.SignalBullish:
			bullish++
		case analysis.SignalBearish:
			bearish++
		}
	}
	total := len(result.Indicators)

	action := analysis.ActionHold
	var reasoning []string
	switch {
	case total > 0 && bullish > bearish && result.Trend.Direction == analysis.TrendUp:
		action = analysis.ActionBuy
		reasoning = append(reasoning,
			fmt.Sprintf("%d of %d indicators bullish", bullish, total),
			"Uptrend confirms indicator consensus")
	case total > 0 && bearish > bullish && result.Trend.Direction == analysis.TrendDown:
		action = analysis.ActionSell
		reasoning = append(reasoning,
			fmt.Sprintf("%d of %d indicators bearish", bearish, total),
			"Downtrend confirms indicator consensus")
	default:
		reasoning = append(reasoning,
			fmt.Sprintf("No aligned majority (%d bullish, %d bearish, trend %s)",
				bullish, bearish, result.Trend.Direction))
	}

	consensus := 0.0
	if total > 0 {
		if bullish > bearish {
			consensus = float64(bullish) / float64(total)
		} else {
			consensus = float64(bearish) / float64(total)
		}
	}
	confidence := clamp01(consensus*consensusWeight + result.Trend.Strength*trendWeight)

	price := result.LastClose
	allTargets := e.synthesizer.Synthesize(candles, result.Levels, result.Patterns)
	directional := filterDirectional(allTargets, price, action)

	stop := stopFromLevels(result, price, action)
	if stop != 0 {
		reasoning = append(reasoning, fmt.Sprintf("Stop anchored at %.2f", stop))
	}
	if len(directional) > 0 && stop != 0 {
		rr := riskReward(price, directional[0].Price, stop)
		if rr > 0 {
			reasoning = append(reasoning, fmt.Sprintf("Risk/reward %.1f at first target %.2f", rr, directional[0].Price))
		}
	}

	return &analysis.TradingSignal{
		Action:      action,
		Confidence:  confidence,
		Reasoning:   reasoning,
		Targets:     directional,
		StopLoss:    stop,
		TimeHorizon: horizonFor(models.Timeframe(result.Timeframe)),
		Risk:        riskFor(result.Volatility.Rank),
	}, nil
}

// filterDirectional keeps targets on the actionable side of price: above
// for BUY, below for SELL, both for HOLD.
func filterDirectional(all []analysis.PriceTarget, price float64, action analysis.Action) []analysis.PriceTarget {
	if action == analysis.ActionHold {
		return all
	}
	out := make([]analysis.PriceTarget, 0, len(all))
	for _, t := range all {
		if t.Type == analysis.TargetStopLoss {
			continue
		}
		if action == analysis.ActionBuy && t.Price > price {
			out = append(out, t)
		}
		if action == analysis.ActionSell && t.Price < price {
			out = append(out, t)
		}
	}
	return out
}

// stopFromLevels anchors the stop at the strongest nearby level on the
// protective side, falling back to an ATR multiple.
func stopFromLevels(result *analysis.Result, price float64, action analysis.Action) float64 {
	byDistance := sortLevelsByDistance(result.Levels, price)
	switch action {
	case analysis.ActionBuy:
		for _, lvl := range byDistance {
			if lvl.Type == analysis.LevelSupport && lvl.Price < price {
				return lvl.Price
			}
		}
		if result.Volatility.ATR > 0 {
			return price - atrStopMultiple*result.Volatility.ATR
		}
	case analysis.ActionSell:
		for _, lvl := range byDistance {
			if lvl.Type == analysis.LevelResistance && lvl.Price > price {
				return lvl.Price
			}
		}
		if result.Volatility.ATR > 0 {
			return price + atrStopMultiple*result.Volatility.ATR
		}
	}
	return 0
}

// riskReward returns reward distance over risk distance, or 0 when either
// side is degenerate.
func riskReward(price, target, stop float64) float64 {
	reward := target - price
	risk := price - stop
	if reward < 0 {
		reward = -reward
	}
	if risk < 0 {
		risk = -risk
	}
	if risk == 0 {
		return 0
	}
	return reward / risk
}

func riskFor(volatilityRank float64) analysis.RiskLevel {
	switch {
	case volatilityRank < lowRiskRank:
		return analysis.RiskLow
	case volatilityRank < mediumRiskRank:
		return analysis.RiskMedium
	default:
		return analysis.RiskHigh
	}
}

func horizonFor(timeframe models.Timeframe) string {
	switch {
	case timeframe.Intraday():
		return "hours"
	case timeframe == models.Timeframe1Hour || timeframe == models.Timeframe4Hour:
		return "days"
	case timeframe == models.TimeframeDay:
		return "weeks"
	case timeframe == models.TimeframeWeek:
		return "months"
	default:
		return "days"
	}
}
