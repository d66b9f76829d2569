package series

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput is returned when a price series cannot be built from the
// supplied samples.
var ErrInvalidInput = errors.New("invalid price series")

// PricePoint is one daily bar reduced to its closing price.
type PricePoint struct {
	Time  time.Time
	Close float64
}

// PriceSeries is an ordered run of daily closes for a single symbol.
// It is validated on construction and read-only afterwards.
type PriceSeries struct {
	points []PricePoint
}

// New validates the samples and builds a series. Timestamps must be
// strictly increasing, so duplicates are rejected along with reordering.
func New(points []PricePoint) (*PriceSeries, error) {
	if len(points) < 1 {
		return nil, fmt.Errorf("%w: need at least one sample", ErrInvalidInput)
	}
	for i := 1; i < len(points); i++ {
		if !points[i].Time.After(points[i-1].Time) {
			return nil, fmt.Errorf("%w: timestamps must be strictly increasing (sample %d)", ErrInvalidInput, i)
		}
	}
	cp := make([]PricePoint, len(points))
	copy(cp, points)
	return &PriceSeries{points: cp}, nil
}

func (s *PriceSeries) Len() int {
	return len(s.points)
}

func (s *PriceSeries) Time(i int) time.Time {
	return s.points[i].Time
}

func (s *PriceSeries) Close(i int) float64 {
	return s.points[i].Close
}

// Closes returns a copy of the closing prices in chronological order.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Close
	}
	return out
}
