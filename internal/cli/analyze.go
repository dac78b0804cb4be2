package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ta-engine/internal/analysis/engine"
	"ta-engine/internal/logging"
	"ta-engine/internal/models"
	"ta-engine/internal/store"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		csvPath   string
		timeframe string
		signals   bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Run a full technical analysis for a symbol",
		Long: `Analyze loads a candle series from a CSV file (--csv) or from the
local cache and runs indicators, pattern detection, level detection, and
optionally signal generation over it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			tf := models.Timeframe(timeframe)
			log := logging.WithOperation(logging.WithSymbol(logger, symbol), "analyze")

			var candles []models.Candle
			var err error
			if csvPath != "" {
				candles, err = store.LoadCandlesCSV(csvPath)
				if err != nil {
					return fmt.Errorf("loading candles from %s: %w", csvPath, err)
				}
			} else {
				st, err := store.NewSQLiteStore(cfg.Cache.Path)
				if err != nil {
					return fmt.Errorf("opening candle cache: %w", err)
				}
				defer st.Close()
				candles, err = st.LoadCandles(context.Background(), symbol, tf)
				if err != nil {
					return fmt.Errorf("loading cached candles: %w", err)
				}
			}
			log.Debug().Int("bars", len(candles)).Msg("Candles loaded")

			eng := engine.New()
			start := time.Now()
			result, err := eng.Analyze(symbol, tf, candles)
			if err != nil {
				return err
			}
			logging.LogAnalysis(log, symbol, timeframe, len(candles),
				len(result.Patterns), len(result.Levels), time.Since(start))

			out := cmd.OutOrStdout()
			if signals {
				signal, err := eng.GenerateSignals(result, candles)
				if err != nil {
					return err
				}
				logging.LogSignal(log, symbol, string(signal.Action), signal.Confidence, string(signal.Risk))
				if asJSON {
					return printJSON(out, signalReport{Analysis: result, Signal: signal})
				}
				printResult(out, result)
				printSignal(out, signal)
				return nil
			}

			if asJSON {
				return printJSON(out, result)
			}
			printResult(out, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file with candles (timestamp,open,high,low,close,volume)")
	cmd.Flags().StringVar(&timeframe, "timeframe", "1d", "bar interval (1min, 5min, 15min, 30min, 1hour, 4hour, 1d, 1w)")
	cmd.Flags().BoolVar(&signals, "signals", false, "also generate a trading signal")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
