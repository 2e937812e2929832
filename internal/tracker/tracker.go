package tracker

import (
	"log"
	"sync"
	"time"

	"MarketOracle/internal/model"
)

// Tracker scores matured forecasts against realized prices, with
// concurrency safety and JSON persistence.
type Tracker struct {
	mu       sync.Mutex
	state    *model.TrackerState
	filePath string
}

// NewTracker creates a Tracker, loading or initializing state from disk.
func NewTracker(filePath string) (*Tracker, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	t := &Tracker{state: state, filePath: filePath}
	if err := t.save(); err != nil {
		return nil, err
	}
	return t, nil
}

// GetState returns a copy of the current tracker state.
func (t *Tracker) GetState() model.TrackerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := *t.state
	state.Pending = append([]model.PendingForecast(nil), t.state.Pending...)
	return state
}

// Track queues a fresh forecast for evaluation on its target date.
func (t *Tracker) Track(report *model.ForecastReport) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Pending = append(t.state.Pending, model.PendingForecast{
		RunID:         report.RunID,
		Symbol:        report.Symbol,
		StartPrice:    report.StartPrice,
		ExpectedPrice: report.Summary.ExpectedPrice,
		LowerBound:    report.Summary.LowerBound,
		UpperBound:    report.Summary.UpperBound,
		GeneratedAt:   report.GeneratedAt,
		TargetDate:    report.TargetDate,
	})

	if err := t.save(); err != nil {
		log.Printf("[ERROR] failed to save tracker state: %v", err)
	}
}

// DueForecasts returns the pending forecasts whose target date has passed.
func (t *Tracker) DueForecasts(now time.Time) []model.PendingForecast {
	t.mu.Lock()
	defer t.mu.Unlock()

	var due []model.PendingForecast
	for _, p := range t.state.Pending {
		if !p.TargetDate.After(now) {
			due = append(due, p)
		}
	}
	return due
}

// Resolve scores a pending forecast against the realized price, removes
// it from the queue, and updates the accuracy counters. The second
// return is false when the run id is not pending.
func (t *Tracker) Resolve(runID string, realizedPrice float64, now time.Time) (*model.ForecastOutcome, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i, p := range t.state.Pending {
		if p.RunID == runID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, false
	}
	p := t.state.Pending[idx]
	t.state.Pending = append(t.state.Pending[:idx], t.state.Pending[idx+1:]...)

	outcome := &model.ForecastOutcome{
		RunID:         p.RunID,
		Symbol:        p.Symbol,
		RealizedPrice: realizedPrice,
		ExpectedPrice: p.ExpectedPrice,
		LowerBound:    p.LowerBound,
		UpperBound:    p.UpperBound,
		EvaluatedAt:   now,
	}
	if p.ExpectedPrice != 0 {
		outcome.ErrorPct = (realizedPrice - p.ExpectedPrice) / p.ExpectedPrice * 100
	}
	switch {
	case realizedPrice > p.UpperBound:
		outcome.Verdict = model.VerdictAboveUpper
		t.state.AboveUpper++
	case realizedPrice < p.LowerBound:
		outcome.Verdict = model.VerdictBelowLower
		t.state.BelowLower++
	default:
		outcome.Verdict = model.VerdictWithinBand
		t.state.WithinBand++
	}
	t.state.TotalEvaluated++
	t.state.LastOutcomeAt = now

	if err := t.save(); err != nil {
		log.Printf("[ERROR] failed to save tracker state: %v", err)
	}

	return outcome, true
}

// HitRate returns the fraction of evaluated forecasts that landed
// within the band, or 0 before any evaluation.
func (t *Tracker) HitRate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.TotalEvaluated == 0 {
		return 0
	}
	return float64(t.state.WithinBand) / float64(t.state.TotalEvaluated)
}

func (t *Tracker) save() error {
	return SaveState(t.filePath, t.state)
}
