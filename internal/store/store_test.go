package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ta-engine/internal/models"
)

func TestLoadCandlesCSV(t *testing.T) {
	t.Run("RFC3339 timestamps", func(t *testing.T) {
		path := writeCSV(t, `timestamp,open,high,low,close,volume
2026-01-02T00:00:00Z,101,111,96,106,2000
2026-01-01T00:00:00Z,100,110,95,105,1000
`)
		candles, err := LoadCandlesCSV(path)
		require.NoError(t, err)
		require.Len(t, candles, 2)

		// Rows come back sorted oldest first regardless of file order.
		assert.True(t, candles[0].Timestamp.Before(candles[1].Timestamp))
		assert.InDelta(t, 100, candles[0].Open, 1e-9)
		assert.InDelta(t, 106, candles[1].Close, 1e-9)
		assert.Equal(t, int64(1000), candles[0].Volume)
	})

	t.Run("unix second timestamps", func(t *testing.T) {
		path := writeCSV(t, `timestamp,open,high,low,close,volume
1767225600,100,110,95,105,1000
`)
		candles, err := LoadCandlesCSV(path)
		require.NoError(t, err)
		require.Len(t, candles, 1)
		assert.Equal(t, int64(1767225600), candles[0].Timestamp.Unix())
	})

	t.Run("bad timestamp", func(t *testing.T) {
		path := writeCSV(t, `timestamp,open,high,low,close,volume
yesterday,100,110,95,105,1000
`)
		_, err := LoadCandlesCSV(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCandlesCSV(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "candles.db")
	st, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := []models.Candle{
		{Timestamp: ts, Open: 100, High: 110, Low: 95, Close: 105, Volume: 1000},
		{Timestamp: ts.Add(24 * time.Hour), Open: 105, High: 112, Low: 100, Close: 108, Volume: 1500},
	}

	require.NoError(t, st.SaveCandles(ctx, "ACME", models.TimeframeDay, candles))

	loaded, err := st.LoadCandles(ctx, "ACME", models.TimeframeDay)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.InDelta(t, 105, loaded[0].Close, 1e-9)
	assert.Equal(t, int64(1500), loaded[1].Volume)

	// Upsert replaces the existing bar instead of duplicating it.
	candles[0].Close = 106
	require.NoError(t, st.SaveCandles(ctx, "ACME", models.TimeframeDay, candles[:1]))
	loaded, err = st.LoadCandles(ctx, "ACME", models.TimeframeDay)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.InDelta(t, 106, loaded[0].Close, 1e-9)

	symbols, err := st.ListSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACME"}, symbols)

	require.NoError(t, st.DeleteCandles(ctx, "ACME", models.TimeframeDay))
	loaded, err = st.LoadCandles(ctx, "ACME", models.TimeframeDay)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
