// Package analytics computes risk statistics over simulated equity curves.
package analytics

import (
	"gonum.org/v1/gonum/stat"
)

// MaxDrawdown returns the largest fractional decline from a running peak,
// as a value in [0,1]. A non-decreasing curve yields 0. If equity falls to
// zero or below after being positive the drawdown is clamped to 1.
func MaxDrawdown(curve []float64) float64 {
	peak := 0.0
	maxDD := 0.0
	for _, v := range curve {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (peak - v) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	if maxDD > 1 {
		maxDD = 1
	}
	return maxDD
}

// ProbabilityOfRuin returns 1 if the curve ever touches zero or below, else 0.
// It is a deterministic historical indicator, not a forecast; the binary
// semantics are part of the contract.
func ProbabilityOfRuin(curve []float64) float64 {
	for _, v := range curve {
		if v <= 0 {
			return 1
		}
	}
	return 0
}

// Report summarizes one equity curve.
type Report struct {
	FinalEquity     float64 `json:"final_equity"`
	TotalReturn     float64 `json:"total_return"`
	MaxDrawdown     float64 `json:"max_drawdown"`
	RuinProbability float64 `json:"ruin_probability"`
	DailyVolatility float64 `json:"daily_volatility"`
	BestDay         float64 `json:"best_day"`
	WorstDay        float64 `json:"worst_day"`
	TradingDays     int     `json:"trading_days"`
}

// Summarize computes the full report for an equity curve started from
// initialCapital. An empty curve yields a report with FinalEquity equal to
// the initial capital and zero everywhere else.
func Summarize(curve []float64, initialCapital float64) Report {
	r := Report{
		FinalEquity: initialCapital,
		TradingDays: len(curve),
	}
	if len(curve) == 0 {
		return r
	}

	r.FinalEquity = curve[len(curve)-1]
	if initialCapital > 0 {
		r.TotalReturn = r.FinalEquity/initialCapital - 1
	}
	r.MaxDrawdown = MaxDrawdown(curve)
	r.RuinProbability = ProbabilityOfRuin(curve)

	rets := dailyReturns(curve)
	if len(rets) > 0 {
		r.BestDay = rets[0]
		r.WorstDay = rets[0]
		for _, x := range rets {
			if x > r.BestDay {
				r.BestDay = x
			}
			if x < r.WorstDay {
				r.WorstDay = x
			}
		}
	}
	if len(rets) > 1 {
		r.DailyVolatility = stat.StdDev(rets, nil)
	}
	return r
}

// dailyReturns converts an equity curve into simple day-over-day returns,
// skipping steps whose base is non-positive.
func dailyReturns(curve []float64) []float64 {
	if len(curve) < 2 {
		return nil
	}
	rets := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		if curve[i-1] > 0 {
			rets = append(rets, curve[i]/curve[i-1]-1)
		}
	}
	return rets
}
