// Package engine contains the strategy simulator and the run orchestrator:
// a deterministic, path-dependent walk over a daily index series that applies
// threshold-triggered trading rules and produces a per-day event log.
package engine

import (
	"VixSentinel/internal/model"
	"VixSentinel/internal/series"
	"VixSentinel/internal/strategy"
)

// portfolio is the mutable per-run state. It exists only for the duration of
// one Simulate call; the day log is the durable output.
type portfolio struct {
	cash   float64
	shares float64
}

// Simulate walks the index series day by day at the configured leverage and
// returns one DayRecord per observation: action events in firing order plus
// the closing snapshot. The input series must have strictly increasing,
// de-duplicated dates; callers validate, the simulator does not.
//
// The simulator is total over finite input: degenerate data (zero values,
// zero levered prices) is absorbed by guards, an empty series yields an
// empty log, and equity sinking to or below zero flows through to the
// analyzer instead of stopping the run.
func Simulate(p strategy.Parameters, obs []model.Observation, l TradeListener) []model.DayRecord {
	if len(obs) == 0 {
		return nil
	}
	p = p.Normalized()
	synth := series.SynthesizeDefault(obs, p.Leverage)

	pf := portfolio{cash: p.InitialCapital}
	days := make([]model.DayRecord, 0, len(obs))

	for i, pt := range synth {
		day := model.DayRecord{Date: obs[i].Date}
		value := obs[i].Value
		lp := pt.LeveredPrice

		// Holding fee, taken multiplicatively against the open position.
		// With a zero levered price the share count cannot be recomputed,
		// so it is left unchanged.
		if posValue := pf.shares * lp; posValue > 0 {
			posValue *= 1 - p.DailyHoldingFeeRate
			if lp != 0 {
				pf.shares = posValue / lp
			}
		}

		// First entry. A non-positive levered price makes shares unpriceable,
		// so the rule cannot fire on such a day.
		if value < p.BuyThresholdLow && pf.cash > 0 && pf.shares == 0 && lp > 0 {
			appendEvent(&day, pf.buy(p.BuyPct, value, lp, model.ActionBuy), l)
		}

		// Scale-in, re-evaluated against post-trade state: a fresh entry that
		// immediately satisfies the ratio triggers a second buy the same day.
		if posValue := pf.shares * lp; value < p.BuyThresholdLow && pf.cash > 0 &&
			posValue > 0 && posValue/pf.cash < p.ScaleInRatio {
			appendEvent(&day, pf.buy(p.BuyPct, value, lp, model.ActionBuyAgain), l)
		}

		// Deep buy tier.
		if value < p.BuyThresholdDeep && pf.cash > 0 && lp > 0 {
			action := model.ActionBuyAgain
			if pf.shares == 0 {
				action = model.ActionBuy
			}
			appendEvent(&day, pf.buy(p.BuyDeepPct, value, lp, action), l)
		}

		// Partial liquidation tiers.
		if value > p.SellThresholdTier1 && pf.shares > 0 {
			appendEvent(&day, pf.sell(p.SellTier1Pct, value, lp, p.SellFeeRate), l)
		}
		if value > p.SellThresholdTier2 && pf.shares > 0 {
			appendEvent(&day, pf.sell(p.SellTier2Pct, value, lp, p.SellFeeRate), l)
		}

		// Full liquidation.
		if value > p.SellThresholdHigh && pf.shares > 0 {
			appendEvent(&day, pf.sell(100, value, lp, p.SellFeeRate), l)
		}

		// Daily snapshot: the only row carrying the cumulative total.
		posValue := pf.shares * lp
		day.Snapshot = model.TradeEvent{
			Date:                 obs[i].Date,
			Action:               model.ActionNone,
			ObservedValue:        value,
			CashAfter:            pf.cash,
			PositionValueAfter:   posValue,
			CumulativeValueAfter: pf.cash + posValue,
		}
		days = append(days, day)
	}
	return days
}

// buy commits pct percent of available cash to new shares at the levered
// price and returns the resulting event. Callers guarantee lp > 0; the
// scale-in precondition (positionValue > 0) implies it.
func (pf *portfolio) buy(pct, value, lp float64, action model.Action) model.TradeEvent {
	invest := pf.cash * pct / 100
	pf.shares += invest / lp
	pf.cash -= invest
	return model.TradeEvent{
		Action:             action,
		ObservedValue:      value,
		CashAfter:          pf.cash,
		PositionValueAfter: pf.shares * lp,
	}
}

// sell liquidates pct percent of the held shares at the levered price,
// deducting the sell fee from the proceeds.
func (pf *portfolio) sell(pct, value, lp, feeRate float64) model.TradeEvent {
	action := model.ActionSellPartial
	if pct >= 100 {
		pct = 100
		action = model.ActionSellAll
	}
	sold := pf.shares * pct / 100
	pf.cash += sold * lp * (1 - feeRate)
	pf.shares -= sold
	if action == model.ActionSellAll {
		pf.shares = 0
	}
	return model.TradeEvent{
		Action:             action,
		ObservedValue:      value,
		CashAfter:          pf.cash,
		PositionValueAfter: pf.shares * lp,
	}
}

// appendEvent stamps the day's date on the event, records it, and announces
// it to the listener.
func appendEvent(day *model.DayRecord, e model.TradeEvent, l TradeListener) {
	e.Date = day.Date
	day.Events = append(day.Events, e)
	notify(l, e)
}
