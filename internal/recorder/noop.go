package recorder

import "MarketOracle/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordForecast(_ *model.ForecastReport) error { return nil }
func (n *NoopRecorder) RecordOutcome(_ *model.ForecastOutcome) error { return nil }
func (n *NoopRecorder) Close() error                                 { return nil }
