package report

import (
	"testing"
	"time"

	"lagrangescan/pkg/lagrangian"
	"lagrangescan/pkg/series"
)

var fixtureParams = lagrangian.Parameters{
	Mass:              1,
	ReversionStrength: 10,
	Window:            3,
	SignalThreshold:   -500,
	VelocityThreshold: 0.1,
}

// derivedFixture builds a small derived series with a couple of rising
// bars so permissive thresholds yield events.
func derivedFixture(t *testing.T) *lagrangian.DerivedSeries {
	t.Helper()
	closes := []float64{100, 101, 103, 104, 90}
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]series.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = series.PricePoint{Time: start.AddDate(0, 0, i), Close: c}
	}
	s, err := series.New(points)
	if err != nil {
		t.Fatalf("build series: %v", err)
	}
	d, err := lagrangian.Transform(s, fixtureParams)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	return d
}
