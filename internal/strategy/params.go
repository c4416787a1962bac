package strategy

import (
	"fmt"
	"math"
)

// Threshold sentinels for disabled rules. A buy rule at -Inf and a sell rule
// at +Inf can never fire for a non-negative index value.
var (
	NeverBuy  = math.Inf(-1)
	NeverSell = math.Inf(1)
)

// DefaultScaleInRatio is the position/cash ratio below which the same-day
// scale-in buy re-fires.
const DefaultScaleInRatio = 0.25

// Parameters is the full rule set for one simulation run. It covers every
// threshold the historical strategy variants used; tiers a given strategy
// does not need stay at their sentinel values. Immutable for the duration
// of a run.
type Parameters struct {
	// Primary buy rule: first entry and scale-in both commit BuyPct percent
	// of available cash when the index drops below BuyThresholdLow.
	BuyThresholdLow float64 `json:"buy_threshold_low"`
	BuyPct          float64 `json:"buy_pct"`

	// Deep buy tier: an additional buy of BuyDeepPct percent of cash when
	// the index drops below BuyThresholdDeep. Disabled by NeverBuy.
	BuyThresholdDeep float64 `json:"buy_threshold_deep"`
	BuyDeepPct       float64 `json:"buy_deep_pct"`

	// Partial liquidation tiers: sell the given percent of shares when the
	// index rises above the tier threshold. Disabled by NeverSell.
	SellThresholdTier1 float64 `json:"sell_threshold_tier1"`
	SellTier1Pct       float64 `json:"sell_tier1_pct"`
	SellThresholdTier2 float64 `json:"sell_threshold_tier2"`
	SellTier2Pct       float64 `json:"sell_tier2_pct"`

	// Full liquidation above this value.
	SellThresholdHigh float64 `json:"sell_threshold_high"`

	// ScaleInRatio gates the same-day re-buy: it fires only while
	// positionValue/cash is below this ratio. Zero means DefaultScaleInRatio.
	ScaleInRatio float64 `json:"scale_in_ratio,omitempty"`

	Leverage            float64 `json:"leverage"`
	InitialCapital      float64 `json:"initial_capital"`
	SellFeeRate         float64 `json:"sell_fee_rate"`
	DailyHoldingFeeRate float64 `json:"daily_holding_fee_rate"`
}

// Default returns the GP-optimized production parameter set.
func Default() Parameters {
	return Parameters{
		BuyThresholdLow:     13.147202,
		BuyPct:              82.93481,
		BuyThresholdDeep:    10.477527,
		BuyDeepPct:          19.436844,
		SellThresholdTier1:  22.163723,
		SellTier1Pct:        44.975998,
		SellThresholdTier2:  23.466296,
		SellTier2Pct:        21.186408,
		SellThresholdHigh:   19.855963,
		Leverage:            1,
		InitialCapital:      100000,
		SellFeeRate:         0.05,
		DailyHoldingFeeRate: 0.0002,
	}
}

// Normalized returns a copy with unset optional tiers mapped to their
// "never triggers" sentinels. A zero tier threshold would otherwise compare
// against real index values (a sell tier at 0 fires on every positive day).
func (p Parameters) Normalized() Parameters {
	q := p
	if q.BuyThresholdDeep == 0 || q.BuyDeepPct == 0 {
		q.BuyThresholdDeep = NeverBuy
		q.BuyDeepPct = 0
	}
	if q.SellThresholdTier1 == 0 || q.SellTier1Pct == 0 {
		q.SellThresholdTier1 = NeverSell
		q.SellTier1Pct = 0
	}
	if q.SellThresholdTier2 == 0 || q.SellTier2Pct == 0 {
		q.SellThresholdTier2 = NeverSell
		q.SellTier2Pct = 0
	}
	if q.ScaleInRatio == 0 {
		q.ScaleInRatio = DefaultScaleInRatio
	}
	return q
}

// Validate rejects configurations the simulator is not defined for. A
// degenerate ordering (BuyThresholdLow >= SellThresholdHigh) is a bad
// strategy, not an invalid one, and passes.
func (p Parameters) Validate() error {
	if p.Leverage < 0 {
		return fmt.Errorf("leverage must be >= 0, got %v", p.Leverage)
	}
	if p.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive, got %v", p.InitialCapital)
	}
	if p.SellFeeRate < 0 || p.SellFeeRate >= 1 {
		return fmt.Errorf("sell_fee_rate must be in [0,1), got %v", p.SellFeeRate)
	}
	if p.DailyHoldingFeeRate < 0 || p.DailyHoldingFeeRate >= 1 {
		return fmt.Errorf("daily_holding_fee_rate must be in [0,1), got %v", p.DailyHoldingFeeRate)
	}
	if p.BuyPct < 0 || p.BuyPct > 100 {
		return fmt.Errorf("buy_pct must be in [0,100], got %v", p.BuyPct)
	}
	if p.BuyDeepPct < 0 || p.BuyDeepPct > 100 {
		return fmt.Errorf("buy_deep_pct must be in [0,100], got %v", p.BuyDeepPct)
	}
	if p.SellTier1Pct < 0 || p.SellTier1Pct > 100 {
		return fmt.Errorf("sell_tier1_pct must be in [0,100], got %v", p.SellTier1Pct)
	}
	if p.SellTier2Pct < 0 || p.SellTier2Pct > 100 {
		return fmt.Errorf("sell_tier2_pct must be in [0,100], got %v", p.SellTier2Pct)
	}
	if p.ScaleInRatio < 0 {
		return fmt.Errorf("scale_in_ratio must be >= 0, got %v", p.ScaleInRatio)
	}
	return nil
}
