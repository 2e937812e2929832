package montecarlo

import (
	"sort"

	"MarketOracle/internal/model"
)

// Summarize computes the expectation and nearest-rank percentile bounds of a
// terminal-price distribution. lower and upper are fractions in [0,1), e.g.
// 0.05 and 0.95; the bound for fraction q is TerminalPrices[floor(q*n)], no
// interpolation. TerminalPrices is expected sorted ascending (the contract
// Simulate establishes) and is re-sorted here if that precondition was
// broken.
func Summarize(res *model.SimulationResult, lower, upper float64) (model.DistributionSummary, error) {
	if lower < 0 || lower >= 1 || upper < 0 || upper >= 1 {
		return model.DistributionSummary{}, ErrInvalidParameters
	}
	prices := res.TerminalPrices
	n := len(prices)
	if n == 0 {
		return model.DistributionSummary{}, ErrInvalidParameters
	}
	if !sort.Float64sAreSorted(prices) {
		sort.Float64s(prices)
	}

	var sum float64
	for _, p := range prices {
		sum += p
	}

	return model.DistributionSummary{
		ExpectedPrice:   sum / float64(n),
		LowerBound:      prices[int(lower*float64(n))],
		UpperBound:      prices[int(upper*float64(n))],
		LowerPercentile: lower,
		UpperPercentile: upper,
	}, nil
}
