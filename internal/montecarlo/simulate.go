package montecarlo

import (
	"sort"

	"MarketOracle/internal/model"
)

// Simulate projects startPrice forward params.HorizonDays steps along
// params.PathCount independent paths. Each step draws one return from
// N(MeanReturn, Volatility^2) and applies it multiplicatively:
// price = price * (1 + r). Returns are simple, not log-compounded, so a
// drawn return below -100% pushes a path non-positive; such prices are
// kept as-is rather than clamped. The terminal prices come back sorted
// ascending, which Summarize and Histogram rely on.
//
// Paths carry no cross-dependencies; the loop stays sequential so a fixed
// uniform source reproduces the exact same output.
func Simulate(rm model.ReturnModel, startPrice float64, params model.SimulationParams, u UniformSource) (*model.SimulationResult, error) {
	if params.HorizonDays <= 0 || params.PathCount <= 0 {
		return nil, ErrInvalidParameters
	}

	src := NewNormalSource(u)
	terminal := make([]float64, params.PathCount)
	for i := 0; i < params.PathCount; i++ {
		price := startPrice
		for d := 0; d < params.HorizonDays; d++ {
			price *= 1 + src.Sample(rm.MeanReturn, rm.Volatility)
		}
		terminal[i] = price
	}
	sort.Float64s(terminal)

	return &model.SimulationResult{StartPrice: startPrice, TerminalPrices: terminal}, nil
}
