package montecarlo

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"MarketOracle/internal/model"
)

func TestSimulate_PathCountAndOrder(t *testing.T) {
	rm := model.ReturnModel{MeanReturn: 0.001, Volatility: 0.02}
	params := model.SimulationParams{HorizonDays: 30, PathCount: 500}

	res, err := Simulate(rm, 100, params, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.TerminalPrices) != params.PathCount {
		t.Fatalf("expected %d terminal prices, got %d", params.PathCount, len(res.TerminalPrices))
	}
	if !sort.Float64sAreSorted(res.TerminalPrices) {
		t.Error("terminal prices must be sorted ascending")
	}
	for i, p := range res.TerminalPrices {
		if p <= 0 {
			t.Errorf("path %d: terminal price %.4f not positive at 2%% volatility", i, p)
		}
	}
	if res.StartPrice != 100 {
		t.Errorf("start price = %.2f, want 100", res.StartPrice)
	}
}

func TestSimulate_DeterministicForFixedSeed(t *testing.T) {
	rm := model.ReturnModel{MeanReturn: 0.0005, Volatility: 0.015}
	params := model.SimulationParams{HorizonDays: 20, PathCount: 200}

	a, err := Simulate(rm, 250, params, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Simulate(rm, 250, params, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a.TerminalPrices {
		if a.TerminalPrices[i] != b.TerminalPrices[i] {
			t.Fatalf("path %d: same seed produced different prices: %v != %v", i, a.TerminalPrices[i], b.TerminalPrices[i])
		}
	}

	c, err := Simulate(rm, 250, params, rand.New(rand.NewSource(100)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	same := true
	for i := range a.TerminalPrices {
		if a.TerminalPrices[i] != c.TerminalPrices[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical terminal prices")
	}
}

func TestSimulate_ZeroVolatilityCollapses(t *testing.T) {
	rm := model.ReturnModel{MeanReturn: 0.01, Volatility: 0}
	params := model.SimulationParams{HorizonDays: 10, PathCount: 50}

	res, err := Simulate(rm, 200, params, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 200 * math.Pow(1.01, 10)
	for i, p := range res.TerminalPrices {
		if p != res.TerminalPrices[0] {
			t.Fatalf("path %d: zero volatility must collapse all paths, got %v and %v", i, p, res.TerminalPrices[0])
		}
		if math.Abs(p-want)/want > 1e-12 {
			t.Fatalf("path %d: terminal price %.10f, want %.10f", i, p, want)
		}
	}
}

func TestSimulate_InvalidParameters(t *testing.T) {
	rm := model.ReturnModel{MeanReturn: 0.001, Volatility: 0.01}
	tests := []struct {
		horizon int
		paths   int
	}{
		{0, 100},
		{-5, 100},
		{30, 0},
		{30, -1},
	}
	for _, tt := range tests {
		params := model.SimulationParams{HorizonDays: tt.horizon, PathCount: tt.paths}
		res, err := Simulate(rm, 100, params, rand.New(rand.NewSource(1)))
		if !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("horizon=%d paths=%d: expected ErrInvalidParameters, got %v", tt.horizon, tt.paths, err)
		}
		if res != nil {
			t.Errorf("horizon=%d paths=%d: expected nil result on error", tt.horizon, tt.paths)
		}
	}
}

// A drawn return below -100% flips the price negative; the simulator keeps
// it rather than clamping at zero.
func TestSimulate_SevereShockTurnsPriceNegative(t *testing.T) {
	// u1=0.01, u2=0.5 gives z = -sqrt(-2*ln(0.01)) ~= -3.035, so at
	// volatility 0.5 the drawn return is ~-1.52.
	u := &fixedUniform{vals: []float64{0.01, 0.5}}
	rm := model.ReturnModel{MeanReturn: 0, Volatility: 0.5}
	params := model.SimulationParams{HorizonDays: 1, PathCount: 1}

	res, err := Simulate(rm, 100, params, u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TerminalPrices[0] >= 0 {
		t.Errorf("expected a negative terminal price, got %.4f", res.TerminalPrices[0])
	}
}
