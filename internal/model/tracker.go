package model

import "time"

// BandVerdict classifies where a realized price landed relative to the
// forecast's percentile band.
type BandVerdict string

const (
	VerdictWithinBand BandVerdict = "WITHIN_BAND"
	VerdictAboveUpper BandVerdict = "ABOVE_UPPER"
	VerdictBelowLower BandVerdict = "BELOW_LOWER"
)

// PendingForecast is a forecast waiting for its target date so it can be
// scored against the realized price.
type PendingForecast struct {
	RunID         string    `json:"run_id"`
	Symbol        string    `json:"symbol"`
	StartPrice    float64   `json:"start_price"`
	ExpectedPrice float64   `json:"expected_price"`
	LowerBound    float64   `json:"lower_bound"`
	UpperBound    float64   `json:"upper_bound"`
	GeneratedAt   time.Time `json:"generated_at"`
	TargetDate    time.Time `json:"target_date"`
}

// ForecastOutcome records how a matured forecast compared to reality.
type ForecastOutcome struct {
	RunID         string
	Symbol        string
	RealizedPrice float64
	ExpectedPrice float64
	LowerBound    float64
	UpperBound    float64
	ErrorPct      float64 // (realized - expected) / expected * 100
	Verdict       BandVerdict
	EvaluatedAt   time.Time
}

// TrackerState is the persisted accuracy-tracking state.
type TrackerState struct {
	Pending        []PendingForecast `json:"pending"`
	TotalEvaluated int               `json:"total_evaluated"`
	WithinBand     int               `json:"within_band"`
	AboveUpper     int               `json:"above_upper"`
	BelowLower     int               `json:"below_lower"`
	LastOutcomeAt  time.Time         `json:"last_outcome_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
