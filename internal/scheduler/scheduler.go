package scheduler

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"VixSentinel/internal/collector"
	"VixSentinel/internal/engine"
	"VixSentinel/internal/model"
	"VixSentinel/internal/notifier"
	"VixSentinel/internal/recorder"
	"VixSentinel/internal/strategy"
)

// tradeAlertWindowDays bounds trade alerts to the tail of the weekly backtest
// so a full-history replay does not re-announce years of past trades.
const tradeAlertWindowDays = 7

// Scheduler manages the recurring daily-advice and weekly-report tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Params    strategy.Parameters
	History   int // trading days per weekly backtest
	Notifier  notifier.Sender
	Recorder  recorder.Recorder
	Ctx       context.Context
	log       zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, params strategy.Parameters,
	historyDays int, tn notifier.Sender, rec recorder.Recorder, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Params:    params,
		History:   historyDays,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the daily and weekly tasks.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyAdvice); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyReport); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunWeeklyNow executes the weekly report immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunWeeklyNow() {
	s.weeklyReport()
}

// dailyAdvice fetches the latest observed value and pushes the decision-table
// recommendation. A fetch failure degrades to the explicit no-data outcome
// instead of matching a threshold branch by accident.
func (s *Scheduler) dailyAdvice() {
	s.log.Info().Msg("running daily advice task")

	latest, err := s.Collector.Latest()
	if err != nil {
		s.log.Error().Err(err).Msg("daily fetch")
		latest = math.NaN()
	}

	rec := strategy.Recommend(s.Params, latest)
	s.trySend(notifier.FormatRecommendation(rec))

	latestValue := rec.LatestValue
	if math.IsNaN(latestValue) {
		// NaN is not a storable value; the NO_DATA advice carries the meaning.
		latestValue = 0
	}
	if err := s.Recorder.RecordRecommendation(&recorder.RecommendationRecord{
		Symbol:      s.Collector.Symbol,
		LatestValue: latestValue,
		Advice:      string(rec.Advice),
		Message:     rec.Message,
	}); err != nil {
		s.log.Error().Err(err).Msg("record recommendation")
	}
}

// weeklyReport backtests the configured strategy over the full history
// window and pushes the summary.
func (s *Scheduler) weeklyReport() {
	s.log.Info().Msg("running weekly report task")

	obs, err := s.Collector.History(s.History)
	if err != nil {
		s.log.Error().Err(err).Msg("weekly fetch")
		s.trySend(fmt.Sprintf("❌ weekly report: data collection failed: %v", err))
		return
	}
	if len(obs) == 0 {
		s.log.Warn().Msg("weekly report: empty series")
		return
	}

	res, err := engine.Run(s.Params, obs, s.tradeListener(obs[len(obs)-1].Date))
	if err != nil {
		s.log.Error().Err(err).Msg("weekly run")
		return
	}

	s.trySend(notifier.FormatRunReport(s.Collector.Symbol, res))

	tradeCount := 0
	for _, d := range res.Days {
		tradeCount += len(d.Events)
	}
	if err := s.Recorder.RecordRun(&recorder.RunRecord{
		RunID:           uuid.NewString(),
		Symbol:          s.Collector.Symbol,
		Params:          s.Params,
		StartDate:       obs[0].Date,
		EndDate:         obs[len(obs)-1].Date,
		TradingDays:     res.Report.TradingDays,
		TradeCount:      tradeCount,
		FinalEquity:     res.Report.FinalEquity,
		TotalReturn:     res.Report.TotalReturn,
		MaxDrawdown:     res.MaxDrawdown,
		RuinProbability: res.RuinProbability,
	}); err != nil {
		s.log.Error().Err(err).Msg("record run")
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/advice":
		s.dailyAdvice()
		return ""
	case "/report":
		go s.weeklyReport()
		return "report started, results will follow"
	default:
		return "available commands:\n/advice - today's recommendation\n/report - full backtest report"
	}
}

// tradeListener builds the alert chain for one backtest ending at the given
// date: a Telegram alerter behind a filter that drops trades older than the
// alert window.
func (s *Scheduler) tradeListener(end time.Time) engine.TradeListener {
	return recentTradeFilter{
		cutoff: end.AddDate(0, 0, -tradeAlertWindowDays),
		next:   notifier.NewTradeAlerter(s.Ctx, s.Notifier, s.log),
	}
}

// recentTradeFilter forwards events dated at or after the cutoff and drops
// the rest.
type recentTradeFilter struct {
	cutoff time.Time
	next   engine.TradeListener
}

func (f recentTradeFilter) OnBuy(e model.TradeEvent) {
	if !e.Date.Before(f.cutoff) {
		f.next.OnBuy(e)
	}
}

func (f recentTradeFilter) OnBuyAgain(e model.TradeEvent) {
	if !e.Date.Before(f.cutoff) {
		f.next.OnBuyAgain(e)
	}
}

func (f recentTradeFilter) OnSellPartial(e model.TradeEvent) {
	if !e.Date.Before(f.cutoff) {
		f.next.OnSellPartial(e)
	}
}

func (f recentTradeFilter) OnSellAll(e model.TradeEvent) {
	if !e.Date.Before(f.cutoff) {
		f.next.OnSellAll(e)
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
