package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"VixSentinel/internal/collector"
	"VixSentinel/internal/config"
	"VixSentinel/internal/notifier"
	"VixSentinel/internal/recorder"
	"VixSentinel/internal/scheduler"
	"VixSentinel/internal/server"
)

func newLogger(level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		lg := newLogger("info", true)
		lg.Fatal().Err(err).Msg("load config")
	}

	log := newLogger(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Msg("VixSentinel starting")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	// Data source: local CSV for offline runs, Yahoo otherwise.
	var fetcher collector.Fetcher
	if cfg.DataSource.CSVPath != "" {
		fetcher = collector.NewFileFetcher(cfg.DataSource.CSVPath)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Str("symbol", cfg.DataSource.Symbol).Msg("data source selected")

	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	params := cfg.Parameters()

	// Telegram is optional; without credentials the scheduler and polling
	// stay off and the service is API-only.
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		sched := scheduler.NewScheduler(ctx, col, params, cfg.DataSource.HistoryDays, tn, rec, log)
		if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron); err != nil {
			log.Fatal().Err(err).Msg("register cron tasks")
		}
		sched.Start()
		defer sched.Stop()

		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")

		if os.Getenv("RUN_ON_START") == "true" {
			log.Info().Msg("RUN_ON_START enabled, executing weekly report now")
			go sched.RunWeeklyNow()
		}
	} else {
		log.Info().Msg("telegram not configured, running API-only")
	}

	handlers := server.NewHandlers(col, params, cfg.DataSource.HistoryDays, rec, log)
	srv := server.New(cfg.Server.Port, handlers, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
		}
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("VixSentinel stopped")
}
