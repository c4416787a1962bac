package model

import "time"

// Action identifies what the simulator did on a given day.
type Action string

const (
	ActionBuy         Action = "BUY"
	ActionBuyAgain    Action = "BUY_AGAIN"
	ActionSellPartial Action = "SELL_PARTIAL"
	ActionSellAll     Action = "SELL_ALL"
	ActionNone        Action = "NONE"
)

// TradeEvent is one row of the simulation log. CumulativeValueAfter is only
// set on the daily snapshot row (Action == ActionNone); equity-curve consumers
// must read that row, not the action rows.
type TradeEvent struct {
	Date                 time.Time `json:"date"`
	Action               Action    `json:"action"`
	ObservedValue        float64   `json:"observed_value"`
	CashAfter            float64   `json:"cash_after"`
	PositionValueAfter   float64   `json:"position_value_after"`
	CumulativeValueAfter float64   `json:"cumulative_value_after,omitempty"`
}

// DayRecord groups one trading day's log: zero or more action events in firing
// order, followed by exactly one snapshot. Keeping the snapshot structurally
// separate makes "latest state per day" a guarantee instead of a group-by.
type DayRecord struct {
	Date     time.Time    `json:"date"`
	Events   []TradeEvent `json:"events,omitempty"`
	Snapshot TradeEvent   `json:"snapshot"`
}

// EquityCurve extracts the end-of-day portfolio values from a day log.
func EquityCurve(days []DayRecord) []float64 {
	curve := make([]float64, len(days))
	for i, d := range days {
		curve[i] = d.Snapshot.CumulativeValueAfter
	}
	return curve
}
