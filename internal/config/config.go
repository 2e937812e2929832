package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo" or "alphavantage"
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
		Symbol   string `yaml:"symbol"`
	} `yaml:"data_source"`
	Simulation struct {
		HorizonDays     int     `yaml:"horizon_days"`
		PathCount       int     `yaml:"path_count"`
		HistoryDays     int     `yaml:"history_days"`
		MinHistory      int     `yaml:"min_history"`
		LowerPercentile float64 `yaml:"lower_percentile"`
		UpperPercentile float64 `yaml:"upper_percentile"`
		HistogramBins   int     `yaml:"histogram_bins"`
		Seed            int64   `yaml:"seed"`
	} `yaml:"simulation"`
	Schedule struct {
		ForecastCron string `yaml:"forecast_cron"`
		CheckCron    string `yaml:"check_cron"`
		MonthlyCron  string `yaml:"monthly_cron"`
	} `yaml:"schedule"`
	Tracker struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"tracker"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
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
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("HORIZON_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.HorizonDays = n
		}
	}
	if v := os.Getenv("PATH_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.PathCount = n
		}
	}
	if v := os.Getenv("CRON_FORECAST"); v != "" {
		cfg.Schedule.ForecastCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "SPX500"
	}
	if cfg.Simulation.HorizonDays == 0 {
		cfg.Simulation.HorizonDays = 30
	}
	if cfg.Simulation.PathCount == 0 {
		cfg.Simulation.PathCount = 15000
	}
	if cfg.Simulation.HistoryDays == 0 {
		cfg.Simulation.HistoryDays = 180
	}
	if cfg.Simulation.MinHistory == 0 {
		cfg.Simulation.MinHistory = 30
	}
	if cfg.Simulation.LowerPercentile == 0 {
		cfg.Simulation.LowerPercentile = 0.05
	}
	if cfg.Simulation.UpperPercentile == 0 {
		cfg.Simulation.UpperPercentile = 0.95
	}
	if cfg.Simulation.HistogramBins == 0 {
		cfg.Simulation.HistogramBins = 20
	}
	if cfg.Schedule.ForecastCron == "" {
		cfg.Schedule.ForecastCron = "0 0 8 * * 1"
	}
	if cfg.Schedule.CheckCron == "" {
		cfg.Schedule.CheckCron = "0 0 22 * * 1-5"
	}
	if cfg.Schedule.MonthlyCron == "" {
		cfg.Schedule.MonthlyCron = "0 0 9 1 * *"
	}
	if cfg.Tracker.StateFile == "" {
		cfg.Tracker.StateFile = "data/tracker_state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/market_oracle.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.DataSource.Provider == "alphavantage" && c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required for alphavantage")
	}
	if c.Simulation.HorizonDays <= 0 {
		return fmt.Errorf("simulation.horizon_days must be positive")
	}
	if c.Simulation.PathCount <= 0 {
		return fmt.Errorf("simulation.path_count must be positive")
	}
	if c.Simulation.MinHistory < 2 {
		return fmt.Errorf("simulation.min_history must be at least 2")
	}
	if c.Simulation.LowerPercentile < 0 || c.Simulation.LowerPercentile >= 1 {
		return fmt.Errorf("simulation.lower_percentile must be in [0, 1)")
	}
	if c.Simulation.UpperPercentile < 0 || c.Simulation.UpperPercentile >= 1 {
		return fmt.Errorf("simulation.upper_percentile must be in [0, 1)")
	}
	if c.Simulation.LowerPercentile >= c.Simulation.UpperPercentile {
		return fmt.Errorf("simulation.lower_percentile must be below upper_percentile")
	}
	if c.Simulation.HistogramBins <= 0 {
		return fmt.Errorf("simulation.histogram_bins must be positive")
	}
	return nil
}
