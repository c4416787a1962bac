package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VixSentinel/internal/collector"
	"VixSentinel/internal/model"
	"VixSentinel/internal/recorder"
	"VixSentinel/internal/strategy"
)

// memorySender collects sent messages. Mutex-guarded because /report runs in
// a goroutine.
type memorySender struct {
	mu       sync.Mutex
	messages []string
}

func (s *memorySender) Send(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, text)
	return nil
}

func (s *memorySender) SendWithRetry(_ context.Context, text string, _ int) error {
	return s.Send(text)
}

func (s *memorySender) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

type memoryRecorder struct {
	mu    sync.Mutex
	runs  []recorder.RunRecord
	recos []recorder.RecommendationRecord
}

func (m *memoryRecorder) RecordRun(r *recorder.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, *r)
	return nil
}

func (m *memoryRecorder) RecordRecommendation(r *recorder.RecommendationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recos = append(m.recos, *r)
	return nil
}

func (m *memoryRecorder) Close() error { return nil }

type failingFetcher struct{}

func (failingFetcher) Name() string { return "failing" }
func (failingFetcher) FetchDailyObservations(string, int) ([]model.Observation, error) {
	return nil, errors.New("boom")
}
func (failingFetcher) FetchLatestValue(string) (float64, error) {
	return 0, errors.New("boom")
}

func observations(values ...float64) []model.Observation {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := make([]model.Observation, len(values))
	for i, v := range values {
		obs[i] = model.Observation{Date: start.AddDate(0, 0, i), Value: v}
	}
	return obs
}

func testParams() strategy.Parameters {
	return strategy.Parameters{
		BuyThresholdLow:   13,
		BuyPct:            50,
		SellThresholdHigh: 20,
		Leverage:          1,
		InitialCapital:    1000,
		SellFeeRate:       0.05,
	}
}

func newTestScheduler(f collector.Fetcher) (*Scheduler, *memorySender, *memoryRecorder) {
	sender := &memorySender{}
	rec := &memoryRecorder{}
	col := collector.NewCollector(f, "VIX")
	s := NewScheduler(context.Background(), col, testParams(), 3650, sender, rec, zerolog.Nop())
	return s, sender, rec
}

func TestDailyAdviceSendsAndRecords(t *testing.T) {
	s, sender, rec := newTestScheduler(&collector.MockFetcher{Latest: 10})

	s.dailyAdvice()

	msgs := sender.all()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "BUY")

	require.Len(t, rec.recos, 1)
	assert.Equal(t, "BUY", rec.recos[0].Advice)
	assert.Equal(t, 10.0, rec.recos[0].LatestValue)
	assert.Equal(t, "VIX", rec.recos[0].Symbol)
}

func TestDailyAdviceFetchFailureRecordsNoData(t *testing.T) {
	s, sender, rec := newTestScheduler(failingFetcher{})

	s.dailyAdvice()

	msgs := sender.all()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "NO DATA")

	// The stored value must be a real number, not NaN.
	require.Len(t, rec.recos, 1)
	assert.Equal(t, "NO_DATA", rec.recos[0].Advice)
	assert.Equal(t, 0.0, rec.recos[0].LatestValue)
}

func TestWeeklyReportAlertsTradesAndRecordsRun(t *testing.T) {
	// Three consecutive days, all inside the alert window: the buy, the
	// sell-all, and the summary report each produce a message.
	s, sender, rec := newTestScheduler(&collector.MockFetcher{Observations: observations(20, 10, 25)})

	s.weeklyReport()

	msgs := sender.all()
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0], "Buy")
	assert.Contains(t, msgs[1], "Sell all")
	assert.Contains(t, msgs[2], "backtest report")

	require.Len(t, rec.runs, 1)
	run := rec.runs[0]
	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, 2, run.TradeCount)
	assert.Equal(t, 3, run.TradingDays)
	assert.InDelta(t, 1687.5, run.FinalEquity, 1e-9)
}

func TestWeeklyReportSkipsStaleTradeAlerts(t *testing.T) {
	// The only trade happens on day 1 of a ten-day window, well before the
	// alert cutoff: it stays in the run record but is not re-announced.
	s, sender, rec := newTestScheduler(&collector.MockFetcher{
		Observations: observations(10, 15, 15, 15, 15, 15, 15, 15, 15, 15),
	})

	s.weeklyReport()

	msgs := sender.all()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "backtest report")

	require.Len(t, rec.runs, 1)
	assert.Equal(t, 1, rec.runs[0].TradeCount)
}

func TestWeeklyReportFetchFailure(t *testing.T) {
	s, sender, rec := newTestScheduler(failingFetcher{})

	s.weeklyReport()

	msgs := sender.all()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "data collection failed")
	assert.Empty(t, rec.runs)
}

func TestHandleCommand(t *testing.T) {
	s, sender, _ := newTestScheduler(&collector.MockFetcher{Latest: 16})

	assert.Equal(t, "", s.HandleCommand("/advice"))
	require.Len(t, sender.all(), 1)

	assert.Contains(t, s.HandleCommand("/report"), "report started")

	help := s.HandleCommand("/unknown")
	assert.Contains(t, help, "/advice")
	assert.Contains(t, help, "/report")
}
