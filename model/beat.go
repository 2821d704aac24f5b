package model

import (
	"github.com/jsphweid/musicmodel/duration"
	"github.com/jsphweid/musicmodel/meter"
	"github.com/jsphweid/musicmodel/tempo"
)

// BeatContext locates a single beat within a meter on a timeline.
type BeatContext struct {
	MeterContext  meter.Context
	Offset        duration.MetricalDuration
	Interpolation tempo.Interpolation
}

// MetricalOffset is the beat's position on the timeline. Offset is measured
// from the start of the full measure, so a fragment's lower bound is removed.
func (b BeatContext) MetricalOffset() duration.MetricalDuration {
	lower, _ := b.MeterContext.Meter.Range()
	return duration.FromFraction(
		b.MeterContext.Offset.Add(b.Offset.Fraction()).Sub(lower.Fraction()),
	)
}

// Tempo reads the interpolation at the beat. The interpolation starts where
// the meter context starts.
func (b BeatContext) Tempo() tempo.Tempo {
	lower, _ := b.MeterContext.Meter.Range()
	return b.Interpolation.TempoAt(b.Offset.Sub(lower))
}

// BeatContexts returns one context per beat inside the meter's range.
func BeatContexts(ctx meter.Context, interpolation tempo.Interpolation) []BeatContext {
	offsets := ctx.Meter.BeatOffsets()
	beats := make([]BeatContext, len(offsets))
	for i, offset := range offsets {
		beats[i] = BeatContext{MeterContext: ctx, Offset: offset, Interpolation: interpolation}
	}
	return beats
}
