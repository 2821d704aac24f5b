package tempo

import (
	"errors"
	"fmt"
	"math"

	"github.com/jsphweid/musicmodel/duration"
)

// ErrInvalidTempo is returned for a non-positive beats per minute or
// subdivision.
var ErrInvalidTempo = errors.New("invalid tempo")

// Tempo counts BeatsPerMinute beats of 1/Subdivision of a whole note.
type Tempo struct {
	BeatsPerMinute float64
	Subdivision    int
}

func New(bpm float64, subdivision int) (Tempo, error) {
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return Tempo{}, fmt.Errorf("%w: %v bpm", ErrInvalidTempo, bpm)
	}
	if subdivision <= 0 {
		return Tempo{}, fmt.Errorf("%w: subdivision %d", ErrInvalidTempo, subdivision)
	}
	return Tempo{BeatsPerMinute: bpm, Subdivision: subdivision}, nil
}

// Respelled returns the same speed counted in beats of 1/subdivision.
func (t Tempo) Respelled(subdivision int) Tempo {
	return Tempo{
		BeatsPerMinute: t.BeatsPerMinute * float64(subdivision) / float64(t.Subdivision),
		Subdivision:    subdivision,
	}
}

func (t Tempo) DurationOfBeat() duration.MetricalDuration {
	return duration.New(1, int64(t.Subdivision))
}

func (t Tempo) Beats(d duration.MetricalDuration) float64 {
	return d.Fraction().MulInt(int64(t.Subdivision)).Float64()
}

func (t Tempo) Seconds(d duration.MetricalDuration) float64 {
	return t.Beats(d) * 60 / t.BeatsPerMinute
}

func (t Tempo) String() string {
	return fmt.Sprintf("1/%d = %v", t.Subdivision, t.BeatsPerMinute)
}

// Interpolation moves linearly (in beats) from Start to End over Length.
type Interpolation struct {
	Start  Tempo
	End    Tempo
	Length duration.MetricalDuration
}

func Static(t Tempo) Interpolation {
	return Interpolation{Start: t, End: t}
}

func (i Interpolation) IsStatic() bool {
	return i.Length.IsZero() || i.Start.BeatsPerMinute == i.End.Respelled(i.Start.Subdivision).BeatsPerMinute
}

// progress is the clamped position of offset within the interpolation.
func (i Interpolation) progress(offset duration.MetricalDuration) float64 {
	if i.Length.IsZero() || offset.Fraction().Sign() <= 0 {
		return 0
	}
	if offset.Cmp(i.Length) >= 0 {
		return 1
	}
	return offset.Fraction().Div(i.Length.Fraction()).Float64()
}

// TempoAt is spelled in the Start subdivision. Offsets past Length hold the
// End tempo.
func (i Interpolation) TempoAt(offset duration.MetricalDuration) Tempo {
	if i.Length.IsZero() {
		return i.Start
	}
	s := i.Start.BeatsPerMinute
	e := i.End.Respelled(i.Start.Subdivision).BeatsPerMinute
	return Tempo{BeatsPerMinute: s + (e-s)*i.progress(offset), Subdivision: i.Start.Subdivision}
}

// SecondsOffset is the elapsed time from the start of the interpolation to
// offset.
func (i Interpolation) SecondsOffset(offset duration.MetricalDuration) float64 {
	if offset.Fraction().Sign() <= 0 {
		return 0
	}
	if i.IsStatic() {
		return i.Start.Seconds(offset)
	}
	if offset.Cmp(i.Length) > 0 {
		tail := duration.FromFraction(offset.Fraction().Sub(i.Length.Fraction()))
		return i.SecondsOffset(i.Length) + i.End.Seconds(tail)
	}
	s := i.Start.BeatsPerMinute
	e := i.End.Respelled(i.Start.Subdivision).BeatsPerMinute
	total := i.Start.Beats(i.Length)
	bpm := i.TempoAt(offset).BeatsPerMinute
	return 60 * total / (e - s) * math.Log(bpm/s)
}

// Seconds converts a whole-note offset into seconds across a sequence of
// interpolations laid end to end.
func Seconds(interpolations []Interpolation, offset duration.MetricalDuration) float64 {
	var elapsed float64
	remaining := offset.Fraction()
	for idx, i := range interpolations {
		if remaining.Sign() <= 0 {
			break
		}
		last := idx == len(interpolations)-1
		if last || remaining.Cmp(i.Length.Fraction()) <= 0 {
			return elapsed + i.SecondsOffset(duration.FromFraction(remaining))
		}
		elapsed += i.SecondsOffset(i.Length)
		remaining = remaining.Sub(i.Length.Fraction())
	}
	return elapsed
}
