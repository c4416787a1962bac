package collector

import (
	"fmt"
	"time"

	"VixSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Observations []model.Observation
	Latest       float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyObservations(_ string, days int) ([]model.Observation, error) {
	if m.Observations != nil {
		return m.Observations, nil
	}
	return generateMockObservations(m.Latest, days), nil
}

func (m *MockFetcher) FetchLatestValue(_ string) (float64, error) {
	if len(m.Observations) > 0 {
		return m.Observations[len(m.Observations)-1].Value, nil
	}
	return m.Latest, nil
}

func generateMockObservations(baseValue float64, count int) []model.Observation {
	obs := make([]model.Observation, count)
	for i := 0; i < count; i++ {
		obs[i] = model.Observation{
			Date:  time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(count - i)),
			Value: baseValue * (1 + float64(i-count/2)*0.001),
		}
	}
	return obs
}

// Collector retrieves observation series for one symbol and enforces the
// simulator's input precondition before anything reaches the engine.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol}
}

// History fetches the most recent `days` daily observations, validated.
func (c *Collector) History(days int) ([]model.Observation, error) {
	obs, err := c.Fetcher.FetchDailyObservations(c.Symbol, days)
	if err != nil {
		return nil, fmt.Errorf("fetch daily observations: %w", err)
	}
	if err := ValidateObservations(obs); err != nil {
		return nil, fmt.Errorf("series from %s: %w", c.Fetcher.Name(), err)
	}
	return obs, nil
}

// Latest fetches the most recent observed value.
func (c *Collector) Latest() (float64, error) {
	v, err := c.Fetcher.FetchLatestValue(c.Symbol)
	if err != nil {
		return 0, fmt.Errorf("fetch latest value: %w", err)
	}
	return v, nil
}

// ValidateObservations checks the simulator's documented precondition:
// strictly increasing dates, no duplicates, non-negative values. The
// simulator itself does not re-validate.
func ValidateObservations(obs []model.Observation) error {
	for i, o := range obs {
		if o.Value < 0 {
			return fmt.Errorf("observation %d (%s): negative value %v", i, o.Date.Format("2006-01-02"), o.Value)
		}
		if i > 0 && !obs[i-1].Date.Before(o.Date) {
			return fmt.Errorf("observation %d (%s): dates not strictly increasing", i, o.Date.Format("2006-01-02"))
		}
	}
	return nil
}
