// Package cli implements the ta command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ta-engine/internal/config"
	"ta-engine/internal/logging"
)

var (
	cfg       *config.Config
	logger    zerolog.Logger
	configDir string
	debugMode bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ta",
		Short: "Technical analysis over OHLCV candle series",
		Long: `ta runs a pure technical-analysis engine over candle data:
indicators, chart patterns, support/resistance levels, price targets,
and trading signals. Candles come from CSV files or the local cache.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			logCfg := logging.LogConfig{
				Level:      cfg.Logging.Level,
				Console:    cfg.Logging.Console,
				File:       cfg.Logging.File,
				FilePath:   cfg.Logging.FilePath,
				MaxSize:    cfg.Logging.MaxSize,
				MaxBackups: cfg.Logging.MaxBackups,
				MaxAge:     cfg.Logging.MaxAge,
			}
			logger = logging.NewLoggerWithConfig(logCfg)
			if debugMode {
				logging.SetDebugLevel()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.config/ta-engine)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newCacheCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
