package model

import "time"

// ReturnModel captures the distribution of day-over-day relative price
// changes fitted to a price history. Immutable once computed.
type ReturnModel struct {
	MeanReturn float64
	Volatility float64 // population standard deviation of the returns, >= 0
}

// SimulationParams configures a single simulation run.
type SimulationParams struct {
	HorizonDays int // forward steps per path
	PathCount   int // simulated paths, statistical resolution of the output
}

// SimulationResult is the raw output of a simulation run. TerminalPrices
// holds one terminal price per path, sorted ascending.
type SimulationResult struct {
	StartPrice     float64
	TerminalPrices []float64
}

// DistributionSummary condenses a terminal-price distribution into an
// expectation and a percentile band.
type DistributionSummary struct {
	ExpectedPrice   float64
	LowerBound      float64
	UpperBound      float64
	LowerPercentile float64 // fraction in [0,1) that produced LowerBound
	UpperPercentile float64 // fraction in [0,1) that produced UpperBound
}

// HistogramBin is one equal-width bucket of the terminal-price distribution.
type HistogramBin struct {
	LowerBound float64
	UpperBound float64
	Count      int
}

// ForecastReport is the full output of one forecast run, consumed by the
// recorder, the tracker and the notifier.
type ForecastReport struct {
	RunID       string
	Symbol      string
	StartPrice  float64
	Model       ReturnModel
	Params      SimulationParams
	Summary     DistributionSummary
	Bins        []HistogramBin
	GeneratedAt time.Time
	TargetDate  time.Time // GeneratedAt + HorizonDays calendar days
}
