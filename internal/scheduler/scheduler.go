package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"MarketOracle/internal/collector"
	"MarketOracle/internal/forecast"
	"MarketOracle/internal/notifier"
	"MarketOracle/internal/recorder"
	"MarketOracle/internal/tracker"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Params    forecast.Params
	Tracker   *tracker.Tracker
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, params forecast.Params, tr *tracker.Tracker, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Params:    params,
		Tracker:   tr,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// RegisterAll registers the forecast, maturity-check, and monthly tasks.
func (s *Scheduler) RegisterAll(forecastCron, checkCron, monthlyCron string) error {
	if _, err := s.Cron.AddFunc(forecastCron, s.forecastTask); err != nil {
		return fmt.Errorf("register forecast task: %w", err)
	}
	if _, err := s.Cron.AddFunc(checkCron, s.checkTask); err != nil {
		return fmt.Errorf("register check task: %w", err)
	}
	if _, err := s.Cron.AddFunc(monthlyCron, s.monthlyTask); err != nil {
		return fmt.Errorf("register monthly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunForecastNow executes the forecast task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunForecastNow() {
	s.forecastTask()
}

func (s *Scheduler) forecastTask() {
	log.Println("[INFO] running forecast task")
	series, err := s.Collector.Collect()
	if err != nil {
		log.Printf("[ERROR] forecast collect: %v", err)
		s.trySend(fmt.Sprintf("❌ Forecast data collection failed: %v", err))
		return
	}

	report, err := forecast.Run(series, s.Params)
	if err != nil {
		log.Printf("[ERROR] forecast run: %v", err)
		s.trySend(fmt.Sprintf("❌ Forecast failed: %v", err))
		return
	}

	s.Tracker.Track(report)
	s.trySend(notifier.FormatForecastReport(report))

	if err := s.Recorder.RecordForecast(report); err != nil {
		log.Printf("[ERROR] record forecast: %v", err)
	}
}

func (s *Scheduler) checkTask() {
	log.Println("[INFO] running maturity check")
	due := s.Tracker.DueForecasts(time.Now())
	if len(due) == 0 {
		return
	}

	// Cache quotes so several matured runs of the same symbol cost one request.
	prices := map[string]float64{}
	for _, p := range due {
		realized, ok := prices[p.Symbol]
		if !ok {
			var err error
			realized, err = s.Collector.Fetcher.FetchCurrentPrice(p.Symbol)
			if err != nil {
				log.Printf("[ERROR] fetch realized price for %s: %v", p.Symbol, err)
				continue
			}
			prices[p.Symbol] = realized
		}

		outcome, ok := s.Tracker.Resolve(p.RunID, realized, time.Now())
		if !ok {
			continue
		}
		s.trySend(notifier.FormatOutcome(outcome))
		if err := s.Recorder.RecordOutcome(outcome); err != nil {
			log.Printf("[ERROR] record outcome: %v", err)
		}
	}
}

func (s *Scheduler) monthlyTask() {
	log.Println("[INFO] running monthly summary")
	state := s.Tracker.GetState()
	s.trySend(notifier.FormatMonthlySummary(&state))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/forecast":
		s.forecastTask()
		return ""
	case "/accuracy":
		state := s.Tracker.GetState()
		return notifier.FormatAccuracyStatus(&state)
	case "/pending":
		state := s.Tracker.GetState()
		return notifier.FormatPendingForecasts(state.Pending)
	default:
		return "Available commands:\n• /forecast\n• /accuracy\n• /pending"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
