package model

import "time"

// Observation is a single daily closing value of the tracked index.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// SyntheticPoint pairs an observation with its daily-rebalanced levered price.
type SyntheticPoint struct {
	Date         time.Time `json:"date"`
	Value        float64   `json:"value"`
	LeveredPrice float64   `json:"levered_price"`
}
