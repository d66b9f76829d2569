package lagrangian

import (
	"fmt"

	"lagrangescan/pkg/series"
)

// DerivedSeries holds the columns computed from a price series. Every
// slice is indexed identically to the input series.
type DerivedSeries struct {
	Series          *series.PriceSeries
	Mean            []float64
	Velocity        []float64
	PotentialEnergy []float64
	KineticEnergy   []float64
	Signal          []float64
}

// Transform maps a validated price series and parameters to the derived
// columns. It is a pure computation: the input series is never modified
// and no state survives the call.
//
// Per bar i:
//
//	velocity[i]  = (close[i] - close[i-1]) / dt   (0 at i = 0)
//	mean[i]      = trailing mean over the last `window` closes
//	potential[i] = reversionStrength * (close[i] - mean[i])^2
//	kinetic[i]   = 0.5 * mass * velocity[i]^2
//	signal[i]    = kinetic[i] - potential[i]
func Transform(s *series.PriceSeries, params Parameters) (*DerivedSeries, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if s == nil || s.Len() < 1 {
		return nil, fmt.Errorf("%w: transform needs at least one sample", series.ErrInvalidInput)
	}

	closes := s.Closes()
	n := len(closes)
	d := &DerivedSeries{
		Series:          s,
		Mean:            rollingMean(closes, params.Window),
		Velocity:        make([]float64, n),
		PotentialEnergy: make([]float64, n),
		KineticEnergy:   make([]float64, n),
		Signal:          make([]float64, n),
	}

	for i := 1; i < n; i++ {
		d.Velocity[i] = stepVelocity(closes[i], closes[i-1], 1)
	}
	for i := 0; i < n; i++ {
		dev := closes[i] - d.Mean[i]
		d.PotentialEnergy[i] = params.ReversionStrength * dev * dev
		d.KineticEnergy[i] = 0.5 * params.Mass * d.Velocity[i] * d.Velocity[i]
		d.Signal[i] = d.KineticEnergy[i] - d.PotentialEnergy[i]
	}
	return d, nil
}

// stepVelocity is the per-bar rate of change. The transform always feeds a
// unit time step: calendar gaps between bars (weekends, holidays) are
// deliberately ignored, matching the reference policy. A zero elapsed time
// saturates to 0 instead of dividing.
func stepVelocity(current, previous, elapsed float64) float64 {
	if elapsed == 0 {
		return 0
	}
	return (current - previous) / elapsed
}

// rollingMean is a trailing mean whose window shrinks at the start of the
// series, so every index has a value even before `window` bars exist.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
			out[i] = sum / float64(window)
		} else {
			out[i] = sum / float64(i+1)
		}
	}
	return out
}
