package montecarlo

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"MarketOracle/internal/model"
)

func TestHistogram_CountsSumToPathCount(t *testing.T) {
	rm := model.ReturnModel{MeanReturn: 0.0005, Volatility: 0.015}
	params := model.SimulationParams{HorizonDays: 20, PathCount: 1500}
	res, err := Simulate(rm, 50, params, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bins, err := Histogram(res, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bins) != 20 {
		t.Fatalf("bin count = %d, want 20", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != params.PathCount {
		t.Errorf("counts sum to %d, want %d", total, params.PathCount)
	}
	if bins[0].LowerBound != res.TerminalPrices[0] {
		t.Errorf("first bin lower = %v, want min price %v", bins[0].LowerBound, res.TerminalPrices[0])
	}
	last := len(res.TerminalPrices) - 1
	if bins[19].UpperBound != res.TerminalPrices[last] {
		t.Errorf("last bin upper = %v, want max price %v", bins[19].UpperBound, res.TerminalPrices[last])
	}
	for i := 1; i < len(bins); i++ {
		if bins[i].LowerBound != bins[i-1].UpperBound {
			t.Errorf("bin %d lower %v does not meet bin %d upper %v", i, bins[i].LowerBound, i-1, bins[i-1].UpperBound)
		}
	}
}

func TestHistogram_MaxPriceLandsInLastBin(t *testing.T) {
	res := &model.SimulationResult{StartPrice: 1, TerminalPrices: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}}
	bins, err := Histogram(res, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bins[9].Count != 2 {
		t.Errorf("last bin count = %d, want 2 (values 9 and 10)", bins[9].Count)
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 11 {
		t.Errorf("counts sum to %d, want 11", total)
	}
}

func TestHistogram_SplitsEvenValues(t *testing.T) {
	res := &model.SimulationResult{StartPrice: 1, TerminalPrices: []float64{1, 2, 3, 4}}
	bins, err := Histogram(res, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bins[0].Count != 2 || bins[1].Count != 2 {
		t.Errorf("counts = (%d, %d), want (2, 2)", bins[0].Count, bins[1].Count)
	}
	if bins[0].LowerBound != 1 || bins[0].UpperBound != 2.5 {
		t.Errorf("first bin = [%v, %v), want [1, 2.5)", bins[0].LowerBound, bins[0].UpperBound)
	}
	if bins[1].LowerBound != 2.5 || bins[1].UpperBound != 4 {
		t.Errorf("second bin = [%v, %v], want [2.5, 4]", bins[1].LowerBound, bins[1].UpperBound)
	}
}

func TestHistogram_DegenerateDistribution(t *testing.T) {
	res := &model.SimulationResult{StartPrice: 7, TerminalPrices: []float64{7, 7, 7, 7}}
	bins, err := Histogram(res, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bins) != 5 {
		t.Fatalf("bin count = %d, want 5", len(bins))
	}
	if bins[0].Count != 4 {
		t.Errorf("first bin count = %d, want all 4 values", bins[0].Count)
	}
	for i, b := range bins {
		if b.LowerBound != 7 || b.UpperBound != 7 {
			t.Errorf("bin %d bounds = [%v, %v], want [7, 7]", i, b.LowerBound, b.UpperBound)
		}
		if i > 0 && b.Count != 0 {
			t.Errorf("bin %d count = %d, want 0", i, b.Count)
		}
	}
}

func TestHistogram_SinglePrice(t *testing.T) {
	res := &model.SimulationResult{StartPrice: 1, TerminalPrices: []float64{12.5}}
	bins, err := Histogram(res, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bins[0].Count != 1 {
		t.Errorf("first bin count = %d, want 1", bins[0].Count)
	}
}

func TestHistogram_Idempotent(t *testing.T) {
	rm := model.ReturnModel{MeanReturn: 0.001, Volatility: 0.02}
	params := model.SimulationParams{HorizonDays: 10, PathCount: 300}
	res, err := Simulate(rm, 80, params, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := Histogram(res, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Histogram(res, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated binning of the same result must produce identical bins")
	}
}

func TestHistogram_InvalidInput(t *testing.T) {
	valid := &model.SimulationResult{StartPrice: 1, TerminalPrices: []float64{1, 2, 3}}
	tests := []struct {
		name     string
		res      *model.SimulationResult
		binCount int
	}{
		{"zero bins", valid, 0},
		{"negative bins", valid, -2},
		{"empty result", &model.SimulationResult{}, 10},
	}
	for _, tt := range tests {
		if _, err := Histogram(tt.res, tt.binCount); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("%s: expected ErrInvalidParameters, got %v", tt.name, err)
		}
	}
}
