package forecast

import (
	"fmt"
	"math/rand"
	"time"

	"MarketOracle/internal/model"
	"MarketOracle/internal/montecarlo"

	"github.com/google/uuid"
)

// Params bundles everything one forecast run needs beyond the price series.
type Params struct {
	Sim             model.SimulationParams
	LowerPercentile float64
	UpperPercentile float64
	HistogramBins   int
	// Seed fixes the random source for reproducible runs; 0 means
	// seed from the wall clock.
	Seed int64
}

// Run executes the full forecast pipeline on a price series: fit a
// return model from daily closes, simulate forward paths, summarize
// the terminal distribution, and bin it into a histogram.
func Run(series *model.PriceSeries, params Params) (*model.ForecastReport, error) {
	closes := closePrices(series.DailyBars)
	rm, err := montecarlo.FitReturnModel(closes)
	if err != nil {
		return nil, fmt.Errorf("fit return model for %s: %w", series.Symbol, err)
	}

	startPrice := series.CurrentPrice
	if startPrice == 0 && len(closes) > 0 {
		startPrice = closes[len(closes)-1]
	}

	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := rand.New(rand.NewSource(seed))

	res, err := montecarlo.Simulate(rm, startPrice, params.Sim, src)
	if err != nil {
		return nil, fmt.Errorf("simulate %s: %w", series.Symbol, err)
	}

	summary, err := montecarlo.Summarize(res, params.LowerPercentile, params.UpperPercentile)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", series.Symbol, err)
	}

	bins, err := montecarlo.Histogram(res, params.HistogramBins)
	if err != nil {
		return nil, fmt.Errorf("bin %s: %w", series.Symbol, err)
	}

	now := time.Now()
	return &model.ForecastReport{
		RunID:       uuid.NewString(),
		Symbol:      series.Symbol,
		StartPrice:  startPrice,
		Model:       rm,
		Params:      params.Sim,
		Summary:     summary,
		Bins:        bins,
		GeneratedAt: now,
		TargetDate:  now.AddDate(0, 0, params.Sim.HorizonDays),
	}, nil
}

func closePrices(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
