package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"VixSentinel/internal/model"
)

// TradeAlerter adapts a Sender to the engine's TradeListener interface, so
// the simulation core stays free of delivery concerns. Each hook sends
// synchronously with retry; a failed delivery is logged and dropped, never
// surfaced back into the simulation.
type TradeAlerter struct {
	Sender Sender
	Ctx    context.Context
	log    zerolog.Logger
}

// NewTradeAlerter creates a listener that pushes trade events to the sender.
func NewTradeAlerter(ctx context.Context, sender Sender, log zerolog.Logger) *TradeAlerter {
	return &TradeAlerter{
		Sender: sender,
		Ctx:    ctx,
		log:    log.With().Str("component", "alerter").Logger(),
	}
}

func (a *TradeAlerter) OnBuy(e model.TradeEvent)         { a.deliver(e) }
func (a *TradeAlerter) OnBuyAgain(e model.TradeEvent)    { a.deliver(e) }
func (a *TradeAlerter) OnSellPartial(e model.TradeEvent) { a.deliver(e) }
func (a *TradeAlerter) OnSellAll(e model.TradeEvent)     { a.deliver(e) }

func (a *TradeAlerter) deliver(e model.TradeEvent) {
	if err := a.Sender.SendWithRetry(a.Ctx, FormatTradeEvent(e), 3); err != nil {
		a.log.Error().Err(err).Str("action", string(e.Action)).Msg("deliver trade alert")
	}
}
