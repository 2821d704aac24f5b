package model

import (
	"testing"

	"github.com/jsphweid/musicmodel/duration"
	"github.com/jsphweid/musicmodel/meter"
	"github.com/jsphweid/musicmodel/tempo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricalOffset(t *testing.T) {
	assert := assert.New(t)
	full, err := meter.New(4, 4)
	require.NoError(t, err)
	pickup, err := full.Fragment(duration.New(1, 4), duration.New(1, 1))
	require.NoError(t, err)

	contexts := meter.Contexts([]meter.Meter{pickup, full})
	steady := tempo.Static(tempo.Tempo{BeatsPerMinute: 60, Subdivision: 4})

	var offsets []duration.MetricalDuration
	for _, ctx := range contexts {
		for _, beat := range BeatContexts(ctx, steady) {
			offsets = append(offsets, beat.MetricalOffset())
		}
	}
	assert.Equal([]duration.MetricalDuration{
		duration.Zero, duration.New(1, 4), duration.New(1, 2),
		duration.New(3, 4), duration.New(1, 1), duration.New(5, 4), duration.New(3, 2),
	}, offsets)
}

func TestBeatTempo(t *testing.T) {
	full, err := meter.New(4, 4)
	require.NoError(t, err)
	accel := tempo.Interpolation{
		Start:  tempo.Tempo{BeatsPerMinute: 60, Subdivision: 4},
		End:    tempo.Tempo{BeatsPerMinute: 120, Subdivision: 4},
		Length: duration.New(1, 1),
	}

	beats := BeatContexts(meter.Contexts([]meter.Meter{full})[0], accel)
	require.Len(t, beats, 4)
	assert.InDelta(t, 60.0, beats[0].Tempo().BeatsPerMinute, 1e-12)
	assert.InDelta(t, 90.0, beats[2].Tempo().BeatsPerMinute, 1e-12)
}
