package engine

import "VixSentinel/internal/model"

// TradeListener receives trade events synchronously as the simulator appends
// them, one callback per event kind. Delivery concerns (formatting, retries,
// credentials) belong entirely to the implementation; the simulator only
// calls and moves on. Daily snapshots are not announced.
type TradeListener interface {
	OnBuy(e model.TradeEvent)
	OnBuyAgain(e model.TradeEvent)
	OnSellPartial(e model.TradeEvent)
	OnSellAll(e model.TradeEvent)
}

// NoopListener discards all events. Used when no caller is subscribed.
type NoopListener struct{}

func (NoopListener) OnBuy(_ model.TradeEvent)         {}
func (NoopListener) OnBuyAgain(_ model.TradeEvent)    {}
func (NoopListener) OnSellPartial(_ model.TradeEvent) {}
func (NoopListener) OnSellAll(_ model.TradeEvent)     {}

func notify(l TradeListener, e model.TradeEvent) {
	if l == nil {
		return
	}
	switch e.Action {
	case model.ActionBuy:
		l.OnBuy(e)
	case model.ActionBuyAgain:
		l.OnBuyAgain(e)
	case model.ActionSellPartial:
		l.OnSellPartial(e)
	case model.ActionSellAll:
		l.OnSellAll(e)
	}
}
