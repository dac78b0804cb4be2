// Package config provides configuration management for the analysis CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration. Zero-value defaults work
// without any config file.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Logging LoggingConfig `mapstructure:"logging"`
	Cache   CacheConfig   `mapstructure:"cache"`
}

// EngineConfig holds analysis presets.
type EngineConfig struct {
	DefaultTimeframe string  `mapstructure:"default_timeframe"`
	MinBars          int     `mapstructure:"min_bars"`
	RSIPeriod        int     `mapstructure:"rsi_period"`
	MACDFast         int     `mapstructure:"macd_fast"`
	MACDSlow         int     `mapstructure:"macd_slow"`
	MACDSignal       int     `mapstructure:"macd_signal"`
	BollingerPeriod  int     `mapstructure:"bollinger_period"`
	BollingerStdDevs float64 `mapstructure:"bollinger_stddevs"`
	StochasticK      int     `mapstructure:"stochastic_k"`
	StochasticD      int     `mapstructure:"stochastic_d"`
	ATRPeriod        int     `mapstructure:"atr_period"`
	AutoOptimize     bool    `mapstructure:"auto_optimize"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// CacheConfig holds the candle cache location.
type CacheConfig struct {
	Path string `mapstructure:"path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/ta-engine"
	}
	return filepath.Join(home, ".config", "ta-engine")
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default directory is used. A missing config file yields the
// defaults.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("engine.default_timeframe", "1d")
	v.SetDefault("engine.min_bars", 20)
	v.SetDefault("engine.rsi_period", 14)
	v.SetDefault("engine.macd_fast", 12)
	v.SetDefault("engine.macd_slow", 26)
	v.SetDefault("engine.macd_signal", 9)
	v.SetDefault("engine.bollinger_period", 20)
	v.SetDefault("engine.bollinger_stddevs", 2.0)
	v.SetDefault("engine.stochastic_k", 14)
	v.SetDefault("engine.stochastic_d", 3)
	v.SetDefault("engine.atr_period", 14)
	v.SetDefault("engine.auto_optimize", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "ta.log"))
	v.SetDefault("logging.max_size", 50)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)

	v.SetDefault("cache.path", filepath.Join(configDir, "candles.db"))
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Engine.MinBars < 1 {
		return fmt.Errorf("engine.min_bars must be positive, got %d", c.Engine.MinBars)
	}
	periods := map[string]int{
		"rsi_period":       c.Engine.RSIPeriod,
		"macd_fast":        c.Engine.MACDFast,
		"macd_slow":        c.Engine.MACDSlow,
		"macd_signal":      c.Engine.MACDSignal,
		"bollinger_period": c.Engine.BollingerPeriod,
		"stochastic_k":     c.Engine.StochasticK,
		"stochastic_d":     c.Engine.StochasticD,
		"atr_period":       c.Engine.ATRPeriod,
	}
	for name, p := range periods {
		if p <= 0 {
			return fmt.Errorf("engine.%s must be positive, got %d", name, p)
		}
	}
	if c.Engine.MACDFast >= c.Engine.MACDSlow {
		return fmt.Errorf("engine.macd_fast must be shorter than engine.macd_slow")
	}
	if c.Engine.BollingerStdDevs <= 0 {
		return fmt.Errorf("engine.bollinger_stddevs must be positive")
	}
	return nil
}
