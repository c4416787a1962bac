package engine

import (
	"fmt"

	"VixSentinel/internal/analytics"
	"VixSentinel/internal/model"
	"VixSentinel/internal/strategy"
)

// RunResult is the combined output of one simulation run.
type RunResult struct {
	Days            []model.DayRecord `json:"days"`
	MaxDrawdown     float64           `json:"max_drawdown"`
	RuinProbability float64           `json:"ruin_probability"`
	Report          analytics.Report  `json:"report"`
}

// Run validates the parameters, then sequences synthesis, simulation, and
// analysis. Stateless across invocations and free of clock or randomness:
// identical inputs produce identical results, so independent runs (for
// example a leverage comparison) may execute in parallel without
// coordination. The only error source is parameter validation; the
// simulation itself never fails for finite input.
func Run(p strategy.Parameters, obs []model.Observation, l TradeListener) (RunResult, error) {
	if err := p.Validate(); err != nil {
		return RunResult{}, fmt.Errorf("invalid strategy parameters: %w", err)
	}

	days := Simulate(p, obs, l)
	curve := model.EquityCurve(days)

	return RunResult{
		Days:            days,
		MaxDrawdown:     analytics.MaxDrawdown(curve),
		RuinProbability: analytics.ProbabilityOfRuin(curve),
		Report:          analytics.Summarize(curve, p.InitialCapital),
	}, nil
}
