package montecarlo

import "MarketOracle/internal/model"

// Histogram partitions the terminal prices into binCount equal-width buckets
// that together span exactly [min, max]. A price equal to the maximum lands
// in the last bucket instead of overflowing past it. When every terminal
// price is identical the span is zero and all prices go to bucket 0 rather
// than dividing by zero. Pure function of its inputs: identical calls yield
// identical bins.
func Histogram(res *model.SimulationResult, binCount int) ([]model.HistogramBin, error) {
	if binCount <= 0 {
		return nil, ErrInvalidParameters
	}
	prices := res.TerminalPrices
	if len(prices) == 0 {
		return nil, ErrInvalidParameters
	}

	minPrice, maxPrice := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < minPrice {
			minPrice = p
		}
		if p > maxPrice {
			maxPrice = p
		}
	}
	width := (maxPrice - minPrice) / float64(binCount)

	bins := make([]model.HistogramBin, binCount)
	for i := range bins {
		bins[i].LowerBound = minPrice + float64(i)*width
		bins[i].UpperBound = minPrice + float64(i+1)*width
	}
	bins[binCount-1].UpperBound = maxPrice // exact span regardless of float rounding

	for _, p := range prices {
		idx := 0
		if width > 0 {
			idx = int((p - minPrice) / width)
			if idx > binCount-1 {
				idx = binCount - 1 // p == maxPrice
			}
		}
		bins[idx].Count++
	}

	return bins, nil
}
