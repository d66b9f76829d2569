package series

import (
	"errors"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	_, err = New([]PricePoint{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNew_RejectsDuplicateTimestamps(t *testing.T) {
	_, err := New([]PricePoint{
		{Time: day(0), Close: 10},
		{Time: day(0), Close: 11},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNew_RejectsUnorderedTimestamps(t *testing.T) {
	_, err := New([]PricePoint{
		{Time: day(1), Close: 10},
		{Time: day(0), Close: 11},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	points := []PricePoint{
		{Time: day(0), Close: 10},
		{Time: day(1), Close: 11},
	}
	s, err := New(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	points[0].Close = 999
	if s.Close(0) != 10 {
		t.Errorf("series must not alias the caller's slice, got %f", s.Close(0))
	}
}

func TestAccessors(t *testing.T) {
	s, err := New([]PricePoint{
		{Time: day(0), Close: 10},
		{Time: day(1), Close: 11.5},
		{Time: day(2), Close: 9},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("expected Len 3, got %d", s.Len())
	}
	if !s.Time(1).Equal(day(1)) {
		t.Errorf("expected %v, got %v", day(1), s.Time(1))
	}

	closes := s.Closes()
	if len(closes) != 3 || closes[0] != 10 || closes[1] != 11.5 || closes[2] != 9 {
		t.Errorf("unexpected closes: %v", closes)
	}

	closes[2] = 0
	if s.Close(2) != 9 {
		t.Errorf("Closes must return a copy")
	}
}
