package strategy

import (
	"fmt"
	"math"
)

// Advice is the current-day action derived from the latest observed value.
type Advice string

const (
	AdviceBuy     Advice = "BUY"
	AdviceSellAll Advice = "SELL_ALL"
	AdviceHold    Advice = "HOLD"
	AdviceNoData  Advice = "NO_DATA"
)

// Recommendation is the outcome of the decision table plus a human-readable
// message for the notification layer.
type Recommendation struct {
	Advice      Advice  `json:"advice"`
	LatestValue float64 `json:"latest_value"`
	Message     string  `json:"message"`
}

// Recommend evaluates the strategy thresholds against the latest observed
// value, in fixed priority order: buy, then sell-all, then hold. A NaN input
// (no data available) short-circuits to AdviceNoData before any comparison,
// since NaN would otherwise fall through every branch silently.
func Recommend(p Parameters, latestValue float64) Recommendation {
	if math.IsNaN(latestValue) {
		return Recommendation{
			Advice:      AdviceNoData,
			LatestValue: latestValue,
			Message:     "no observation available, no recommendation",
		}
	}
	switch {
	case latestValue < p.BuyThresholdLow:
		return Recommendation{
			Advice:      AdviceBuy,
			LatestValue: latestValue,
			Message: fmt.Sprintf("index at %.2f is below the buy threshold %.2f: invest %.1f%% of available cash",
				latestValue, p.BuyThresholdLow, p.BuyPct),
		}
	case latestValue > p.SellThresholdHigh:
		return Recommendation{
			Advice:      AdviceSellAll,
			LatestValue: latestValue,
			Message: fmt.Sprintf("index at %.2f is above the sell threshold %.2f: liquidate the full position",
				latestValue, p.SellThresholdHigh),
		}
	default:
		return Recommendation{
			Advice:      AdviceHold,
			LatestValue: latestValue,
			Message:     fmt.Sprintf("index at %.2f is inside the hold band, no action", latestValue),
		}
	}
}
