package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"VixSentinel/internal/strategy"
)

// StrategyConfig mirrors strategy.Parameters in YAML form.
type StrategyConfig struct {
	BuyThresholdLow     float64 `yaml:"buy_threshold_low"`
	BuyPct              float64 `yaml:"buy_pct"`
	BuyThresholdDeep    float64 `yaml:"buy_threshold_deep"`
	BuyDeepPct          float64 `yaml:"buy_deep_pct"`
	SellThresholdTier1  float64 `yaml:"sell_threshold_tier1"`
	SellTier1Pct        float64 `yaml:"sell_tier1_pct"`
	SellThresholdTier2  float64 `yaml:"sell_threshold_tier2"`
	SellTier2Pct        float64 `yaml:"sell_tier2_pct"`
	SellThresholdHigh   float64 `yaml:"sell_threshold_high"`
	Leverage            float64 `yaml:"leverage"`
	InitialCapital      float64 `yaml:"initial_capital"`
	SellFeeRate         float64 `yaml:"sell_fee_rate"`
	DailyHoldingFeeRate float64 `yaml:"daily_holding_fee_rate"`
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	DataSource struct {
		Symbol      string `yaml:"symbol"`
		HistoryDays int    `yaml:"history_days"`
		CSVPath     string `yaml:"csv_path"` // offline data file; empty means Yahoo
	} `yaml:"data_source"`
	Strategy StrategyConfig `yaml:"strategy"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATA_CSV_PATH"); v != "" {
		cfg.DataSource.CSVPath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "VIX"
	}
	if cfg.DataSource.HistoryDays == 0 {
		cfg.DataSource.HistoryDays = 3650
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 22 * * 1-5"
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 8 * * 6"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	// An entirely absent strategy block falls back to the tuned defaults.
	if (cfg.Strategy == StrategyConfig{}) {
		cfg.Strategy = fromParameters(strategy.Default())
	}

	return cfg, nil
}

func fromParameters(p strategy.Parameters) StrategyConfig {
	return StrategyConfig{
		BuyThresholdLow:     p.BuyThresholdLow,
		BuyPct:              p.BuyPct,
		BuyThresholdDeep:    p.BuyThresholdDeep,
		BuyDeepPct:          p.BuyDeepPct,
		SellThresholdTier1:  p.SellThresholdTier1,
		SellTier1Pct:        p.SellTier1Pct,
		SellThresholdTier2:  p.SellThresholdTier2,
		SellTier2Pct:        p.SellTier2Pct,
		SellThresholdHigh:   p.SellThresholdHigh,
		Leverage:            p.Leverage,
		InitialCapital:      p.InitialCapital,
		SellFeeRate:         p.SellFeeRate,
		DailyHoldingFeeRate: p.DailyHoldingFeeRate,
	}
}

// Parameters maps the strategy block onto an engine parameter record.
func (c *Config) Parameters() strategy.Parameters {
	s := c.Strategy
	return strategy.Parameters{
		BuyThresholdLow:     s.BuyThresholdLow,
		BuyPct:              s.BuyPct,
		BuyThresholdDeep:    s.BuyThresholdDeep,
		BuyDeepPct:          s.BuyDeepPct,
		SellThresholdTier1:  s.SellThresholdTier1,
		SellTier1Pct:        s.SellTier1Pct,
		SellThresholdTier2:  s.SellThresholdTier2,
		SellTier2Pct:        s.SellTier2Pct,
		SellThresholdHigh:   s.SellThresholdHigh,
		Leverage:            s.Leverage,
		InitialCapital:      s.InitialCapital,
		SellFeeRate:         s.SellFeeRate,
		DailyHoldingFeeRate: s.DailyHoldingFeeRate,
	}
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535")
	}
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if c.DataSource.HistoryDays <= 0 {
		return fmt.Errorf("data_source.history_days must be positive")
	}
	if err := c.Parameters().Validate(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	return nil
}
