package lagrangian

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func derivedFixture(t *testing.T) (*DerivedSeries, Parameters) {
	t.Helper()
	// Rising then crashing prices: early bars have positive velocity and a
	// small deviation from the mean, so they clear permissive thresholds.
	s := daily(t, []float64{100, 101, 103, 104, 90, 89, 88})
	params := Parameters{Mass: 1, ReversionStrength: 10, Window: 3, SignalThreshold: -500, VelocityThreshold: 0.1}
	d, err := Transform(s, params)
	require.NoError(t, err)
	return d, params
}

func TestExtractEvents_MatchesThresholdSetExactly(t *testing.T) {
	d, params := derivedFixture(t)

	events := ExtractEvents(d, params)

	want := make(map[int]bool)
	for i := 0; i < d.Series.Len(); i++ {
		if d.Signal[i] > params.SignalThreshold && d.Velocity[i] > params.VelocityThreshold {
			want[i] = true
		}
	}
	require.Len(t, events, len(want))
	for _, e := range events {
		assert.True(t, want[e.Index], "unexpected event at %d", e.Index)
		assert.Equal(t, d.Series.Time(e.Index), e.Time)
		assert.Equal(t, d.Series.Close(e.Index), e.Close)
	}
}

func TestExtractEvents_ChronologicalOrder(t *testing.T) {
	d, params := derivedFixture(t)
	events := ExtractEvents(d, params)
	require.NotEmpty(t, events)
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i-1].Time.Before(events[i].Time))
	}
}

func TestExtractEvents_BothConditionsRequired(t *testing.T) {
	d, params := derivedFixture(t)

	// Velocity alone qualifying must not fire: push the signal threshold
	// above every signal value.
	params.SignalThreshold = math.Inf(1)
	assert.Empty(t, ExtractEvents(d, params))

	// Signal alone qualifying must not fire either.
	params.SignalThreshold = -500
	params.VelocityThreshold = math.Inf(1)
	assert.Empty(t, ExtractEvents(d, params))
}

func TestExtractEvents_MonotonicInThresholds(t *testing.T) {
	d, params := derivedFixture(t)

	base := len(ExtractEvents(d, params))
	for _, bump := range []float64{0.5, 2, 100, 10000} {
		raisedSignal := params
		raisedSignal.SignalThreshold += bump
		assert.LessOrEqual(t, len(ExtractEvents(d, raisedSignal)), base,
			"raising the signal threshold by %v grew the event set", bump)

		raisedVelocity := params
		raisedVelocity.VelocityThreshold += bump
		assert.LessOrEqual(t, len(ExtractEvents(d, raisedVelocity)), base,
			"raising the velocity threshold by %v grew the event set", bump)
	}
}

func TestExtractEvents_SingleSampleFiresOnPermissiveThresholds(t *testing.T) {
	s := daily(t, []float64{42})
	params := DefaultParameters()
	params.SignalThreshold = -1
	params.VelocityThreshold = -1

	d, err := Transform(s, params)
	require.NoError(t, err)

	events := ExtractEvents(d, params)
	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].Index)
	assert.Zero(t, events[0].Signal)
	assert.Zero(t, events[0].Velocity)
}

func TestExtractEvents_StrictInequality(t *testing.T) {
	s := daily(t, []float64{42})
	params := DefaultParameters()
	// signal and velocity are exactly 0 for a single sample; thresholds at
	// 0 must not fire.
	params.SignalThreshold = 0
	params.VelocityThreshold = 0

	d, err := Transform(s, params)
	require.NoError(t, err)
	assert.Empty(t, ExtractEvents(d, params))
}
