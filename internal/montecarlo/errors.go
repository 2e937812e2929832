package montecarlo

import "errors"

var (
	// ErrInsufficientData indicates the price history is too short to derive
	// a return model (fewer than 2 points).
	ErrInsufficientData = errors.New("montecarlo: price history must contain at least 2 points")
	// ErrInvalidParameters indicates a non-positive horizon, path count or
	// bin count, a percentile fraction outside [0,1), or an empty result.
	ErrInvalidParameters = errors.New("montecarlo: invalid simulation parameters")
)
