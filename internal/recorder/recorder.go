package recorder

import (
	"time"

	"VixSentinel/internal/strategy"
)

// RunRecord summarizes one completed simulation run. It stores reporting
// output only, never simulation state; every run remains independently
// reproducible from its inputs.
type RunRecord struct {
	RunID           string
	Symbol          string
	Params          strategy.Parameters
	StartDate       time.Time
	EndDate         time.Time
	TradingDays     int
	TradeCount      int
	FinalEquity     float64
	TotalReturn     float64
	MaxDrawdown     float64
	RuinProbability float64
}

// RecommendationRecord captures one daily recommendation outcome.
type RecommendationRecord struct {
	Symbol      string
	LatestValue float64
	Advice      string
	Message     string
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecordRecommendation(rec *RecommendationRecord) error
	Close() error
}
