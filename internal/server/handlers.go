package server

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"VixSentinel/internal/analytics"
	"VixSentinel/internal/collector"
	"VixSentinel/internal/engine"
	"VixSentinel/internal/recorder"
	"VixSentinel/internal/strategy"
)

// tradingDaysPerMonth approximates a calendar month of daily observations.
const tradingDaysPerMonth = 21

// Handlers serves the simulation and recommendation endpoints.
type Handlers struct {
	Collector   *collector.Collector
	Params      strategy.Parameters
	HistoryDays int
	Recorder    recorder.Recorder
	log         zerolog.Logger
}

// NewHandlers creates the API handlers.
func NewHandlers(col *collector.Collector, params strategy.Parameters, historyDays int,
	rec recorder.Recorder, log zerolog.Logger) *Handlers {
	return &Handlers{
		Collector:   col,
		Params:      params,
		HistoryDays: historyDays,
		Recorder:    rec,
		log:         log.With().Str("component", "handlers").Logger(),
	}
}

// RegisterRoutes registers all API routes.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.HandleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/simulation", h.HandleSimulation)
		r.Get("/simulation/leverage", h.HandleLeverageSweep)
		r.Get("/recommendation", h.HandleRecommendation)
	})
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// simulationResponse is the payload for one full run.
type simulationResponse struct {
	RunID  string              `json:"run_id"`
	Symbol string              `json:"symbol"`
	Params strategy.Parameters `json:"params"`
	Result engine.RunResult    `json:"result"`
}

// HandleSimulation runs the configured strategy over the historical window.
// Query parameters: months (restricts the window), leverage (overrides the
// configured multiplier).
func (h *Handlers) HandleSimulation(w http.ResponseWriter, r *http.Request) {
	params := h.Params
	days := h.HistoryDays

	if v := r.URL.Query().Get("months"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil || months <= 0 {
			writeError(w, http.StatusBadRequest, "months must be a positive integer")
			return
		}
		days = months * tradingDaysPerMonth
	}
	if v := r.URL.Query().Get("leverage"); v != "" {
		lev, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "leverage must be a number")
			return
		}
		params.Leverage = lev
	}

	obs, err := h.Collector.History(days)
	if err != nil {
		h.log.Error().Err(err).Msg("fetch history")
		writeError(w, http.StatusBadGateway, "market data unavailable")
		return
	}

	res, err := engine.Run(params, obs, engine.NoopListener{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := simulationResponse{
		RunID:  uuid.NewString(),
		Symbol: h.Collector.Symbol,
		Params: params,
		Result: res,
	}
	h.recordRun(resp, obs != nil)
	writeJSON(w, http.StatusOK, resp)
}

// leverageResult is one entry of the sweep response.
type leverageResult struct {
	Leverage        float64          `json:"leverage"`
	MaxDrawdown     float64          `json:"max_drawdown"`
	RuinProbability float64          `json:"ruin_probability"`
	Report          analytics.Report `json:"report"`
}

// HandleLeverageSweep runs the same window at several leverage multipliers.
// Runs are independent and deterministic, so they execute in parallel.
func (h *Handlers) HandleLeverageSweep(w http.ResponseWriter, r *http.Request) {
	levels := []float64{0.5, 1, 2, 3}
	if v := r.URL.Query().Get("levels"); v != "" {
		levels = levels[:0]
		for _, part := range strings.Split(v, ",") {
			lev, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil || lev < 0 {
				writeError(w, http.StatusBadRequest, "levels must be non-negative numbers")
				return
			}
			levels = append(levels, lev)
		}
	}
	sort.Float64s(levels)

	obs, err := h.Collector.History(h.HistoryDays)
	if err != nil {
		h.log.Error().Err(err).Msg("fetch history")
		writeError(w, http.StatusBadGateway, "market data unavailable")
		return
	}

	results := make([]leverageResult, len(levels))
	var wg sync.WaitGroup
	for i, lev := range levels {
		wg.Add(1)
		go func(i int, lev float64) {
			defer wg.Done()
			params := h.Params
			params.Leverage = lev
			res, err := engine.Run(params, obs, engine.NoopListener{})
			if err != nil {
				h.log.Error().Err(err).Float64("leverage", lev).Msg("sweep run")
				return
			}
			results[i] = leverageResult{
				Leverage:        lev,
				MaxDrawdown:     res.MaxDrawdown,
				RuinProbability: res.RuinProbability,
				Report:          res.Report,
			}
		}(i, lev)
	}
	wg.Wait()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  h.Collector.Symbol,
		"results": results,
	})
}

// HandleRecommendation returns the current-day action for the latest value.
func (h *Handlers) HandleRecommendation(w http.ResponseWriter, _ *http.Request) {
	latest, err := h.Collector.Latest()
	if err != nil {
		h.log.Warn().Err(err).Msg("fetch latest value")
		latest = math.NaN()
	}
	rec := strategy.Recommend(h.Params, latest)
	if math.IsNaN(rec.LatestValue) {
		// NaN is not representable in JSON; the NO_DATA advice already
		// carries the meaning.
		rec.LatestValue = 0
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":         h.Collector.Symbol,
		"recommendation": rec,
	})
}

func (h *Handlers) recordRun(resp simulationResponse, hasData bool) {
	if !hasData {
		return
	}
	days := resp.Result.Days
	if len(days) == 0 {
		return
	}
	tradeCount := 0
	for _, d := range days {
		tradeCount += len(d.Events)
	}
	if err := h.Recorder.RecordRun(&recorder.RunRecord{
		RunID:           resp.RunID,
		Symbol:          resp.Symbol,
		Params:          resp.Params,
		StartDate:       days[0].Date,
		EndDate:         days[len(days)-1].Date,
		TradingDays:     resp.Result.Report.TradingDays,
		TradeCount:      tradeCount,
		FinalEquity:     resp.Result.Report.FinalEquity,
		TotalReturn:     resp.Result.Report.TotalReturn,
		MaxDrawdown:     resp.Result.MaxDrawdown,
		RuinProbability: resp.Result.RuinProbability,
	}); err != nil {
		h.log.Error().Err(err).Msg("record run")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
