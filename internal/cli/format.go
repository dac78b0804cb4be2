package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"ta-engine/internal/analysis"
)

// signalReport bundles the analysis and its signal for JSON output.
type signalReport struct {
	Analysis *analysis.Result
	Signal   *analysis.TradingSignal
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, r *analysis.Result) {
	fmt.Fprintf(w, "Analysis: %s (%s), last close %.2f\n", r.Symbol, r.Timeframe, r.LastClose)
	fmt.Fprintf(w, "Trend: %s (strength %.2f over %d bars)\n",
		r.Trend.Direction, r.Trend.Strength, r.Trend.Duration)
	fmt.Fprintf(w, "Momentum: %s\n", r.Momentum.Interpretation)
	fmt.Fprintf(w, "  RSI %.1f  MACD %.4f/%.4f (hist %.4f)  Stoch %.1f/%.1f\n",
		r.Momentum.RSI, r.Momentum.MACD, r.Momentum.MACDSignal, r.Momentum.MACDHistogram,
		r.Momentum.StochasticK, r.Momentum.StochasticD)
	fmt.Fprintf(w, "Volatility: ATR %.2f, bands [%.2f, %.2f, %.2f], rank %.2f",
		r.Volatility.ATR, r.Volatility.BollingerLower, r.Volatility.BollingerMiddle,
		r.Volatility.BollingerUpper, r.Volatility.Rank)
	if r.Volatility.Squeeze {
		fmt.Fprint(w, " (squeeze)")
	}
	fmt.Fprintln(w)

	if len(r.Indicators) > 0 {
		fmt.Fprintln(w, "\nIndicators:")
		for _, ind := range r.Indicators {
			fmt.Fprintf(w, "  %-18s %-8s %s\n", ind.Name, ind.Signal, ind.Interpretation)
		}
	}

	if len(r.Patterns) > 0 {
		fmt.Fprintln(w, "\nPatterns:")
		for _, p := range r.Patterns {
			fmt.Fprintf(w, "  %-22s %.0f%%  %s\n", p.Type, p.Confidence*100, p.Description)
		}
	}

	if len(r.Levels) > 0 {
		fmt.Fprintln(w, "\nLevels:")
		for _, lvl := range r.Levels {
			fmt.Fprintf(w, "  %10.2f  %-10s strength %.2f  (%s, %d touches)\n",
				lvl.Price, lvl.Type, lvl.Strength, lvl.Source, lvl.TouchCount)
		}
	}
}

func printSignal(w io.Writer, s *analysis.TradingSignal) {
	fmt.Fprintf(w, "\nSignal: %s (confidence %.0f%%, risk %s, horizon %s)\n",
		s.Action, s.Confidence*100, s.Risk, s.TimeHorizon)
	for _, reason := range s.Reasoning {
		fmt.Fprintf(w, "  - %s\n", reason)
	}
	if len(s.Targets) > 0 {
		fmt.Fprintln(w, "Targets:")
		for _, t := range s.Targets {
			fmt.Fprintf(w, "  %10.2f  confidence %.2f  %s\n", t.Price, t.Confidence, t.Reasoning)
		}
	}
	if s.StopLoss != 0 {
		fmt.Fprintf(w, "Stop loss: %.2f\n", s.StopLoss)
	}
}
