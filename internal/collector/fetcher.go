package collector

import "VixSentinel/internal/model"

// Fetcher defines the interface for retrieving index observations.
type Fetcher interface {
	FetchDailyObservations(symbol string, days int) ([]model.Observation, error)
	FetchLatestValue(symbol string) (float64, error)
	Name() string
}
