package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MarketOracle/internal/collector"
	"MarketOracle/internal/config"
	"MarketOracle/internal/forecast"
	"MarketOracle/internal/model"
	"MarketOracle/internal/notifier"
	"MarketOracle/internal/recorder"
	"MarketOracle/internal/scheduler"
	"MarketOracle/internal/tracker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketOracle starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.Provider == "alphavantage" {
		fetcher = collector.NewAlphaVantageFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.Simulation.HistoryDays, cfg.Simulation.MinHistory)

	// Init accuracy tracker
	tr, err := tracker.NewTracker(cfg.Tracker.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init tracker: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	params := forecast.Params{
		Sim: model.SimulationParams{
			HorizonDays: cfg.Simulation.HorizonDays,
			PathCount:   cfg.Simulation.PathCount,
		},
		LowerPercentile: cfg.Simulation.LowerPercentile,
		UpperPercentile: cfg.Simulation.UpperPercentile,
		HistogramBins:   cfg.Simulation.HistogramBins,
		Seed:            cfg.Simulation.Seed,
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, params, tr, tn, rec)
	if err := sched.RegisterAll(cfg.Schedule.ForecastCron, cfg.Schedule.CheckCron, cfg.Schedule.MonthlyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing forecast now")
		go sched.RunForecastNow()
	}

	log.Println("[INFO] MarketOracle is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MarketOracle stopped")
}
