package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ta-engine/internal/models"
	"ta-engine/internal/store"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local candle cache",
	}
	cmd.AddCommand(newCacheImportCmd())
	cmd.AddCommand(newCacheListCmd())
	cmd.AddCommand(newCacheDeleteCmd())
	return cmd
}

func newCacheImportCmd() *cobra.Command {
	var (
		csvPath   string
		timeframe string
	)
	cmd := &cobra.Command{
		Use:   "import SYMBOL",
		Short: "Import candles from a CSV file into the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := args[0]
			candles, err := store.LoadCandlesCSV(csvPath)
			if err != nil {
				return fmt.Errorf("loading candles from %s: %w", csvPath, err)
			}

			st, err := store.NewSQLiteStore(cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("opening candle cache: %w", err)
			}
			defer st.Close()

			tf := models.Timeframe(timeframe)
			if err := st.SaveCandles(context.Background(), symbol, tf, candles); err != nil {
				return fmt.Errorf("saving candles: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d candles for %s (%s)\n", len(candles), symbol, timeframe)
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file with candles")
	cmd.Flags().StringVar(&timeframe, "timeframe", "1d", "bar interval")
	cmd.MarkFlagRequired("csv")
	return cmd
}

func newCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached symbols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewSQLiteStore(cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("opening candle cache: %w", err)
			}
			defer st.Close()

			symbols, err := st.ListSymbols(context.Background())
			if err != nil {
				return fmt.Errorf("listing symbols: %w", err)
			}
			if len(symbols) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cache is empty")
				return nil
			}
			for _, s := range symbols {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}

func newCacheDeleteCmd() *cobra.Command {
	var timeframe string
	cmd := &cobra.Command{
		Use:   "delete SYMBOL",
		Short: "Delete cached candles for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewSQLiteStore(cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("opening candle cache: %w", err)
			}
			defer st.Close()

			tf := models.Timeframe(timeframe)
			if err := st.DeleteCandles(context.Background(), args[0], tf); err != nil {
				return fmt.Errorf("deleting candles: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted cached candles for %s (%s)\n", args[0], timeframe)
			return nil
		},
	}
	cmd.Flags().StringVar(&timeframe, "timeframe", "1d", "bar interval")
	return cmd
}
