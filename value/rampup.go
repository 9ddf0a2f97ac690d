package value

import (
	"errors"
	"fmt"
)

// ErrInvalidRampUp is the sentinel wrapped by out-of-range RampUp construction.
var ErrInvalidRampUp = errors.New("invalid ramp-up")

// RampUp is a fraction in the closed interval [0.0, 100.0].
type RampUp struct {
	percent float64
}

// NewRampUp validates f is within [0, 100] before constructing a RampUp.
func NewRampUp(f float64) (RampUp, error) {
	if f < 0 || f > 100 {
		return RampUp{}, fmt.Errorf("%w: %v must be in [0, 100]", ErrInvalidRampUp, f)
	}
	return RampUp{percent: f}, nil
}

// Percent returns the raw [0, 100] fraction.
func (r RampUp) Percent() float64 { return r.percent }

// Threshold returns floor(percent * 100), the bucket threshold used by the
// deterministic bucketing gate (so 50.0% -> 5000, 100.0% -> 10000).
func (r RampUp) Threshold() int {
	return int(r.percent * 100)
}
