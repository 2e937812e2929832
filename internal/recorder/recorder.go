package recorder

import "MarketOracle/internal/model"

// Recorder persists forecast runs and their eventual outcomes for analysis.
type Recorder interface {
	RecordForecast(report *model.ForecastReport) error
	RecordOutcome(outcome *model.ForecastOutcome) error
	Close() error
}
