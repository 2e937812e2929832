package montecarlo

import (
	"math"
	"math/rand"
	"testing"
)

// fixedUniform replays a fixed sequence of uniform draws, cycling when
// exhausted.
type fixedUniform struct {
	vals []float64
	i    int
}

func (f *fixedUniform) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func TestSample_BoxMullerTransform(t *testing.T) {
	// z = sqrt(-2*ln(u1)) * cos(2*pi*u2), sample = mean + z*stdDev
	sqrt2ln2 := math.Sqrt(2 * math.Ln2)
	tests := []struct {
		name   string
		u1, u2 float64
		mean   float64
		stdDev float64
		want   float64
	}{
		{"unit normal, cos(0)=1", 0.5, 0, 0, 1, sqrt2ln2},
		{"scaled and shifted", 0.5, 0, 10, 2, 10 + 2*sqrt2ln2},
		{"cos(pi)=-1 flips sign", 0.5, 0.5, 0, 1, -sqrt2ln2},
		{"cos(pi/2)=0 collapses to mean", 0.5, 0.25, 5, 3, 5},
		{"zero stdDev is the mean", 0.123, 0.789, 42, 0, 42},
	}
	for _, tt := range tests {
		s := NewNormalSource(&fixedUniform{vals: []float64{tt.u1, tt.u2}})
		got := s.Sample(tt.mean, tt.stdDev)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: Sample = %.12f, want %.12f", tt.name, got, tt.want)
		}
	}
}

func TestSample_RedrawsOnZeroU1(t *testing.T) {
	u := &fixedUniform{vals: []float64{0, 0, 0.5, 0}}
	s := NewNormalSource(u)
	got := s.Sample(0, 1)
	want := math.Sqrt(2 * math.Ln2) // u1 settles on 0.5, u2 = 0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Sample = %.12f, want %.12f", got, want)
	}
	if u.i != 4 {
		t.Errorf("expected 4 uniform draws (two redraws + u1 + u2), got %d", u.i)
	}
}

func TestSample_DeterministicForFixedSeed(t *testing.T) {
	a := NewNormalSource(rand.New(rand.NewSource(7)))
	b := NewNormalSource(rand.New(rand.NewSource(7)))
	for i := 0; i < 50; i++ {
		va, vb := a.Sample(0.01, 0.2), b.Sample(0.01, 0.2)
		if va != vb {
			t.Fatalf("draw %d: sources with the same seed diverged: %v != %v", i, va, vb)
		}
	}
}

func TestSample_MomentsSanity(t *testing.T) {
	s := NewNormalSource(rand.New(rand.NewSource(1)))
	const n = 20000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := s.Sample(0, 1)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)
	if math.Abs(mean) > 0.05 {
		t.Errorf("empirical mean = %.4f, want ~0", mean)
	}
	if math.Abs(std-1) > 0.05 {
		t.Errorf("empirical std = %.4f, want ~1", std)
	}
}
