package lagrangian

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned when the transform parameters cannot
// produce a meaningful result.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Parameters configures the signal transform and the event thresholds.
// The constants that were process-wide globals in the original strategy
// write-up (the mass `m` and mean-reversion strength `k`) live here so a
// run never depends on shared state.
type Parameters struct {
	Mass              float64 // momentum sensitivity scale, must be > 0
	ReversionStrength float64 // pull-to-mean scale, must be > 0
	Window            int     // rolling-mean lookback in bars, must be >= 1
	SignalThreshold   float64
	VelocityThreshold float64
}

// DefaultParameters are the reference values used by the original strategy.
func DefaultParameters() Parameters {
	return Parameters{
		Mass:              1.0,
		ReversionStrength: 10.0,
		Window:            20,
		SignalThreshold:   -500.0,
		VelocityThreshold: 0.1,
	}
}

func (p Parameters) Validate() error {
	if p.Window < 1 {
		return fmt.Errorf("%w: window must be at least 1, got %d", ErrInvalidConfiguration, p.Window)
	}
	if p.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %v", ErrInvalidConfiguration, p.Mass)
	}
	if p.ReversionStrength <= 0 {
		return fmt.Errorf("%w: reversion strength must be positive, got %v", ErrInvalidConfiguration, p.ReversionStrength)
	}
	return nil
}
