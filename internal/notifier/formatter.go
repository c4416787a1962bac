package notifier

import (
	"fmt"
	"strings"
	"time"

	"VixSentinel/internal/engine"
	"VixSentinel/internal/model"
	"VixSentinel/internal/strategy"
)

var actionLabels = map[model.Action]string{
	model.ActionBuy:         "🟢 Buy",
	model.ActionBuyAgain:    "🟢 Buy (scale-in)",
	model.ActionSellPartial: "🟡 Partial sell",
	model.ActionSellAll:     "🔴 Sell all",
}

// FormatTradeEvent formats a single trade event into a Telegram message.
func FormatTradeEvent(e model.TradeEvent) string {
	label, ok := actionLabels[e.Action]
	if !ok {
		label = string(e.Action)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s | %s\n\n", label, e.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Index: %.2f\n", e.ObservedValue))
	b.WriteString(fmt.Sprintf("Cash: %.2f\n", e.CashAfter))
	b.WriteString(fmt.Sprintf("Position: %.2f\n", e.PositionValueAfter))
	return b.String()
}

// FormatRecommendation formats the daily recommendation message.
func FormatRecommendation(rec strategy.Recommendation) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>Daily recommendation</b> | %s\n\n", time.Now().Format("2006-01-02")))
	switch rec.Advice {
	case strategy.AdviceBuy:
		b.WriteString("🟢 <b>BUY</b>\n")
	case strategy.AdviceSellAll:
		b.WriteString("🔴 <b>SELL ALL</b>\n")
	case strategy.AdviceHold:
		b.WriteString("⚪ <b>HOLD</b>\n")
	case strategy.AdviceNoData:
		b.WriteString("❔ <b>NO DATA</b>\n")
	}
	b.WriteString(rec.Message)
	return b.String()
}

// FormatRunReport formats a backtest summary into a Telegram message.
func FormatRunReport(symbol string, res engine.RunResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>%s backtest report</b> | %s\n\n", symbol, time.Now().Format("2006-01-02")))
	r := res.Report
	b.WriteString(fmt.Sprintf("Trading days: %d\n", r.TradingDays))
	b.WriteString(fmt.Sprintf("Final equity: %.2f\n", r.FinalEquity))
	b.WriteString(fmt.Sprintf("Total return: %+.1f%%\n", r.TotalReturn*100))
	b.WriteString(fmt.Sprintf("Max drawdown: %.1f%%\n", r.MaxDrawdown*100))
	b.WriteString(fmt.Sprintf("Daily volatility: %.2f%%\n", r.DailyVolatility*100))
	b.WriteString(fmt.Sprintf("Best/worst day: %+.1f%% / %+.1f%%\n", r.BestDay*100, r.WorstDay*100))
	if r.RuinProbability > 0 {
		b.WriteString("\n⚠️ equity touched zero during this run\n")
	}
	return b.String()
}
