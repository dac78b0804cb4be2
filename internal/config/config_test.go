package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "1d", cfg.Engine.DefaultTimeframe)
	assert.Equal(t, 20, cfg.Engine.MinBars)
	assert.Equal(t, 14, cfg.Engine.RSIPeriod)
	assert.Equal(t, 2.0, cfg.Engine.BollingerStdDevs)
	assert.True(t, cfg.Engine.AutoOptimize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Cache.Path)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
engine:
  rsi_period: 21
  default_timeframe: 4hour
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 21, cfg.Engine.RSIPeriod)
	assert.Equal(t, "4hour", cfg.Engine.DefaultTimeframe)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, 26, cfg.Engine.MACDSlow)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
engine:
  macd_fast: 30
  macd_slow: 10
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	cfg.Engine.RSIPeriod = 0
	assert.Error(t, cfg.Validate())

	cfg.Engine.RSIPeriod = 14
	cfg.Engine.BollingerStdDevs = -1
	assert.Error(t, cfg.Validate())
}
