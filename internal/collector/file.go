package collector

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"VixSentinel/internal/model"
)

// FileFetcher reads daily closes from a local CSV file with a `date,close`
// header, for offline backtests and reproducible runs.
type FileFetcher struct {
	Path string
}

// NewFileFetcher creates a fetcher backed by the given CSV file.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{Path: path}
}

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) load() ([]model.Observation, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", f.Path, err)
	}

	obs := make([]model.Observation, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) >= 1 && row[0] == "date" {
			continue // header
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("csv row %d: expected date,close", i+1)
		}
		date, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: parse date: %w", i+1, err)
		}
		value, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: parse close: %w", i+1, err)
		}
		obs = append(obs, model.Observation{Date: date, Value: value})
	}
	return obs, nil
}

func (f *FileFetcher) FetchDailyObservations(_ string, days int) ([]model.Observation, error) {
	obs, err := f.load()
	if err != nil {
		return nil, err
	}
	if len(obs) > days {
		obs = obs[len(obs)-days:]
	}
	return obs, nil
}

func (f *FileFetcher) FetchLatestValue(_ string) (float64, error) {
	obs, err := f.load()
	if err != nil {
		return 0, err
	}
	if len(obs) == 0 {
		return 0, fmt.Errorf("%s: no observations", f.Path)
	}
	return obs[len(obs)-1].Value, nil
}
