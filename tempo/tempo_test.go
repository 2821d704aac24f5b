package tempo

import (
	"errors"
	"math"
	"testing"

	"github.com/jsphweid/musicmodel/duration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTempo(t *testing.T, bpm float64, subdivision int) Tempo {
	t.Helper()
	tempo, err := New(bpm, subdivision)
	require.NoError(t, err)
	return tempo
}

func TestNewRejectsInvalid(t *testing.T) {
	for _, tc := range []struct {
		bpm float64
		sub int
	}{{0, 4}, {-10, 4}, {60, 0}, {math.NaN(), 4}} {
		_, err := New(tc.bpm, tc.sub)
		assert.True(t, errors.Is(err, ErrInvalidTempo))
	}
}

func TestSecondsAndRespelling(t *testing.T) {
	assert := assert.New(t)
	quarter60 := mustTempo(t, 60, 4)
	assert.InDelta(1.0, quarter60.Seconds(duration.New(1, 4)), 1e-12)
	assert.InDelta(4.0, quarter60.Seconds(duration.New(1, 1)), 1e-12)
	assert.Equal(duration.New(1, 4), quarter60.DurationOfBeat())

	eighth := quarter60.Respelled(8)
	assert.Equal(120.0, eighth.BeatsPerMinute)
	assert.Equal(8, eighth.Subdivision)
	assert.InDelta(1.0, eighth.Seconds(duration.New(1, 4)), 1e-12)
	assert.Equal("1/4 = 60", quarter60.String())
}

func TestInterpolation(t *testing.T) {
	assert := assert.New(t)
	accel := Interpolation{Start: mustTempo(t, 60, 4), End: mustTempo(t, 120, 4), Length: duration.New(1, 1)}

	assert.False(accel.IsStatic())
	assert.InDelta(90.0, accel.TempoAt(duration.New(1, 2)).BeatsPerMinute, 1e-12)
	assert.InDelta(120.0, accel.TempoAt(duration.New(2, 1)).BeatsPerMinute, 1e-12)
	assert.InDelta(60.0, accel.TempoAt(duration.Zero).BeatsPerMinute, 1e-12)

	assert.InDelta(4*math.Ln2, accel.SecondsOffset(duration.New(1, 1)), 1e-9)
	assert.InDelta(4*math.Ln2+0.5, accel.SecondsOffset(duration.New(5, 4)), 1e-9)
	assert.Equal(0.0, accel.SecondsOffset(duration.Zero))
}

func TestInterpolationAcrossSubdivisions(t *testing.T) {
	// 60 quarters per minute is the same speed as 120 eighths
	same := Interpolation{Start: mustTempo(t, 60, 4), End: mustTempo(t, 120, 8), Length: duration.New(1, 1)}
	assert.True(t, same.IsStatic())
	assert.InDelta(t, 2.0, same.SecondsOffset(duration.New(1, 2)), 1e-12)
}

func TestSecondsAcrossInterpolations(t *testing.T) {
	steady := Interpolation{Start: mustTempo(t, 60, 4), End: mustTempo(t, 60, 4), Length: duration.New(1, 1)}
	accel := Interpolation{Start: mustTempo(t, 60, 4), End: mustTempo(t, 120, 4), Length: duration.New(1, 1)}
	timeline := []Interpolation{steady, accel}

	assert.InDelta(t, 2.0, Seconds(timeline, duration.New(1, 2)), 1e-12)
	assert.InDelta(t, 4+4*math.Ln2, Seconds(timeline, duration.New(2, 1)), 1e-9)
	assert.InDelta(t, 4+4*math.Ln2+0.5, Seconds(timeline, duration.New(9, 4)), 1e-9)
	assert.Equal(t, 0.0, Seconds(nil, duration.New(1, 1)))
}
