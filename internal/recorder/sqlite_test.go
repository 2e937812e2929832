package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"MarketOracle/internal/model"
)

func testRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordForecast_RoundTrip(t *testing.T) {
	r := testRecorder(t)
	now := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	report := &model.ForecastReport{
		RunID:      "run-abc",
		Symbol:     "SPX500",
		StartPrice: 500,
		Model:      model.ReturnModel{MeanReturn: 0.001, Volatility: 0.02},
		Params:     model.SimulationParams{HorizonDays: 30, PathCount: 1000},
		Summary: model.DistributionSummary{
			ExpectedPrice:   510,
			LowerBound:      480,
			UpperBound:      545,
			LowerPercentile: 0.05,
			UpperPercentile: 0.95,
		},
		Bins: []model.HistogramBin{
			{LowerBound: 470, UpperBound: 500, Count: 300},
			{LowerBound: 500, UpperBound: 530, Count: 500},
			{LowerBound: 530, UpperBound: 560, Count: 200},
		},
		GeneratedAt: now,
		TargetDate:  now.AddDate(0, 0, 30),
	}

	if err := r.RecordForecast(report); err != nil {
		t.Fatalf("record forecast: %v", err)
	}

	var symbol string
	var expected float64
	err := r.db.QueryRow(
		`SELECT symbol, expected_price FROM forecast_runs WHERE run_id = ?`,
		"run-abc").Scan(&symbol, &expected)
	if err != nil {
		t.Fatalf("query run: %v", err)
	}
	if symbol != "SPX500" || expected != 510 {
		t.Errorf("stored run = %s/%v, want SPX500/510", symbol, expected)
	}

	var binCount int
	if err := r.db.QueryRow(
		`SELECT COUNT(*) FROM histogram_bins WHERE run_id = ?`,
		"run-abc").Scan(&binCount); err != nil {
		t.Fatalf("query bins: %v", err)
	}
	if binCount != 3 {
		t.Errorf("stored bin count = %d, want 3", binCount)
	}
}

func TestRecordForecast_DuplicateRunIDFails(t *testing.T) {
	r := testRecorder(t)
	report := &model.ForecastReport{
		RunID:       "dup",
		Symbol:      "SPX500",
		GeneratedAt: time.Now(),
		TargetDate:  time.Now().AddDate(0, 0, 30),
	}
	if err := r.RecordForecast(report); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := r.RecordForecast(report); err == nil {
		t.Error("duplicate run id must be rejected")
	}
}

func TestRecordOutcome(t *testing.T) {
	r := testRecorder(t)
	outcome := &model.ForecastOutcome{
		RunID:         "run-abc",
		Symbol:        "SPX500",
		RealizedPrice: 520,
		ExpectedPrice: 510,
		LowerBound:    480,
		UpperBound:    545,
		ErrorPct:      1.96,
		Verdict:       model.VerdictWithinBand,
		EvaluatedAt:   time.Now(),
	}
	if err := r.RecordOutcome(outcome); err != nil {
		t.Fatalf("record outcome: %v", err)
	}

	var verdict string
	var realized float64
	err := r.db.QueryRow(
		`SELECT verdict, realized_price FROM forecast_outcomes WHERE run_id = ?`,
		"run-abc").Scan(&verdict, &realized)
	if err != nil {
		t.Fatalf("query outcome: %v", err)
	}
	if verdict != "WITHIN_BAND" || realized != 520 {
		t.Errorf("stored outcome = %s/%v, want WITHIN_BAND/520", verdict, realized)
	}
}
