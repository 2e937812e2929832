package montecarlo

import (
	"math"

	"MarketOracle/internal/model"
)

// FitReturnModel derives the mean and spread of the day-over-day relative
// returns of a chronological price history. A history of n points yields
// n-1 returns r_i = (p_i - p_{i-1}) / p_{i-1}. Volatility is the population
// standard deviation over those n-1 returns (no sample correction).
// Callers are expected to supply 30+ points; anything below 2 fails with
// ErrInsufficientData.
func FitReturnModel(prices []float64) (model.ReturnModel, error) {
	if len(prices) < 2 {
		return model.ReturnModel{}, ErrInsufficientData
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	return model.ReturnModel{MeanReturn: mean, Volatility: math.Sqrt(variance)}, nil
}
