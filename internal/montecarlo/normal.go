package montecarlo

import "math"

// UniformSource supplies independent uniform samples in [0,1). *rand.Rand
// satisfies it; inject a source built from a fixed seed for reproducible
// simulations.
type UniformSource interface {
	Float64() float64
}

// NormalSource converts uniform samples into normally distributed ones via
// the Box-Muller transform. Each Sample consumes two uniform draws and
// discards the second Box-Muller output; producing one normal sample per
// pair is an accepted statistical simplification, not a bug.
type NormalSource struct {
	u UniformSource
}

// NewNormalSource wraps a uniform generator. The source carries no state of
// its own beyond the generator's.
func NewNormalSource(u UniformSource) *NormalSource {
	return &NormalSource{u: u}
}

// Sample returns one draw from N(mean, stdDev^2).
func (s *NormalSource) Sample(mean, stdDev float64) float64 {
	u1 := s.u.Float64()
	for u1 == 0 {
		u1 = s.u.Float64() // log(0) is undefined
	}
	u2 := s.u.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*stdDev
}
