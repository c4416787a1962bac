package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VixSentinel/internal/strategy"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLiteRecorderRecordRun(t *testing.T) {
	r := openTestRecorder(t)

	rec := &RunRecord{
		RunID:           "run-1",
		Symbol:          "VIX",
		Params:          strategy.Default(),
		StartDate:       time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		TradingDays:     124,
		TradeCount:      9,
		FinalEquity:     112345.67,
		TotalReturn:     0.1234,
		MaxDrawdown:     0.21,
		RuinProbability: 0,
	}
	require.NoError(t, r.RecordRun(rec))

	var (
		symbol      string
		params      string
		startDate   string
		tradeCount  int
		finalEquity float64
	)
	row := r.db.QueryRow(`SELECT symbol, params, start_date, trade_count, final_equity
		FROM runs WHERE run_id = ?`, "run-1")
	require.NoError(t, row.Scan(&symbol, &params, &startDate, &tradeCount, &finalEquity))

	assert.Equal(t, "VIX", symbol)
	assert.Contains(t, params, "buy_threshold_low")
	assert.Equal(t, "2024-01-02", startDate)
	assert.Equal(t, 9, tradeCount)
	assert.InDelta(t, 112345.67, finalEquity, 1e-9)
}

func TestSQLiteRecorderDuplicateRunID(t *testing.T) {
	r := openTestRecorder(t)

	rec := &RunRecord{RunID: "dup", Symbol: "VIX", Params: strategy.Default()}
	require.NoError(t, r.RecordRun(rec))
	assert.Error(t, r.RecordRun(rec))
}

func TestSQLiteRecorderRecordRecommendation(t *testing.T) {
	r := openTestRecorder(t)

	require.NoError(t, r.RecordRecommendation(&RecommendationRecord{
		Symbol:      "VIX",
		LatestValue: 11.5,
		Advice:      "BUY",
		Message:     "index at 11.50 is below the buy threshold 13.15: invest 19.4% of available cash",
	}))

	var count int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM recommendations`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLiteRecorderReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := NewSQLiteRecorder(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, first.RecordRun(&RunRecord{RunID: "keep", Symbol: "VIX", Params: strategy.Default()}))
	require.NoError(t, first.Close())

	second, err := NewSQLiteRecorder(path, zerolog.Nop())
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count))
	assert.Equal(t, 1, count)
}
