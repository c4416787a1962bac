// Package series derives synthetic daily-rebalanced leveraged price series
// from a raw index series.
package series

import "VixSentinel/internal/model"

// DefaultStartPrice is the levered price assigned to the first observation.
const DefaultStartPrice = 100.0

// Synthesize models a leveraged instrument that tracks the daily percentage
// moves of the underlying index, rebalanced every day. Compounding happens
// per day, not over the full horizon, which is what produces volatility decay
// on long holds. A zero previous value carries the levered price forward
// unchanged instead of dividing by zero; the synthetic series flattens for
// that step.
func Synthesize(obs []model.Observation, leverage, startPrice float64) []model.SyntheticPoint {
	if len(obs) == 0 {
		return nil
	}
	out := make([]model.SyntheticPoint, len(obs))
	out[0] = model.SyntheticPoint{Date: obs[0].Date, Value: obs[0].Value, LeveredPrice: startPrice}
	for i := 1; i < len(obs); i++ {
		prev := out[i-1].LeveredPrice
		lp := prev
		if obs[i-1].Value != 0 {
			pctChange := (obs[i].Value - obs[i-1].Value) / obs[i-1].Value
			lp = prev * (1 + leverage*pctChange)
		}
		out[i] = model.SyntheticPoint{Date: obs[i].Date, Value: obs[i].Value, LeveredPrice: lp}
	}
	return out
}

// SynthesizeDefault is Synthesize with the standard start price of 100.
func SynthesizeDefault(obs []model.Observation, leverage float64) []model.SyntheticPoint {
	return Synthesize(obs, leverage, DefaultStartPrice)
}
