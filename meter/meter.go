// Package meter models time signatures and their placement on a timeline.
package meter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/musicmodel/duration"
	"github.com/jsphweid/musicmodel/fraction"
)

var (
	// ErrInvalidMeter is returned for a non-positive beat count or a
	// subdivision that is not a power of two.
	ErrInvalidMeter = errors.New("invalid meter")

	// ErrInvalidRange is returned when a fragment does not lie within its meter.
	ErrInvalidRange = errors.New("invalid meter range")
)

// Meter is Beats beats of 1/Subdivision. A fragment covers only part of
// the measure.
type Meter struct {
	Beats       int
	Subdivision int

	// a zero upper bound means the range is the whole measure
	lower duration.MetricalDuration
	upper duration.MetricalDuration
}

func New(beats, subdivision int) (Meter, error) {
	if beats <= 0 {
		return Meter{}, fmt.Errorf("%w: %d beats", ErrInvalidMeter, beats)
	}
	if subdivision <= 0 || subdivision&(subdivision-1) != 0 {
		return Meter{}, fmt.Errorf("%w: subdivision %d", ErrInvalidMeter, subdivision)
	}
	return Meter{Beats: beats, Subdivision: subdivision}, nil
}

// Parse reads "3/4" style signatures.
func Parse(s string) (Meter, error) {
	num, den, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return Meter{}, fmt.Errorf("%w: %q", ErrInvalidMeter, s)
	}
	beats, err := strconv.Atoi(num)
	if err != nil {
		return Meter{}, fmt.Errorf("%w: %q", ErrInvalidMeter, s)
	}
	subdivision, err := strconv.Atoi(den)
	if err != nil {
		return Meter{}, fmt.Errorf("%w: %q", ErrInvalidMeter, s)
	}
	return New(beats, subdivision)
}

// Duration is the length of the whole measure, regardless of fragment. The
// zero Meter has zero duration.
func (m Meter) Duration() duration.MetricalDuration {
	if m.Subdivision == 0 {
		return duration.Zero
	}
	return duration.New(int64(m.Beats), int64(m.Subdivision))
}

func (m Meter) Range() (lower, upper duration.MetricalDuration) {
	if m.upper.IsZero() {
		return duration.Zero, m.Duration()
	}
	return m.lower, m.upper
}

// Span is the length actually covered by the range.
func (m Meter) Span() duration.MetricalDuration {
	lower, upper := m.Range()
	return upper.Sub(lower)
}

func (m Meter) IsFragment() bool {
	lower, upper := m.Range()
	return !lower.IsZero() || upper != m.Duration()
}

// Fragment restricts m to [lower, upper).
func (m Meter) Fragment(lower, upper duration.MetricalDuration) (Meter, error) {
	if lower.Fraction().Sign() < 0 || lower.Cmp(upper) >= 0 || upper.Cmp(m.Duration()) > 0 {
		return Meter{}, fmt.Errorf("%w: [%v, %v) of %v", ErrInvalidRange, lower, upper, m)
	}
	m.lower, m.upper = lower, upper
	return m, nil
}

// BeatOffsets lists the beat onsets inside the range, measured from the
// start of the measure.
func (m Meter) BeatOffsets() []duration.MetricalDuration {
	lower, upper := m.Range()
	offsets := make([]duration.MetricalDuration, 0, max(m.Beats, 0))
	for b := 0; b < m.Beats; b++ {
		offset := duration.New(int64(b), int64(m.Subdivision))
		if offset.Cmp(lower) >= 0 && offset.Cmp(upper) < 0 {
			offsets = append(offsets, offset)
		}
	}
	return offsets
}

func (m Meter) String() string {
	s := fmt.Sprintf("%d/%d", m.Beats, m.Subdivision)
	if m.IsFragment() {
		lower, upper := m.Range()
		s += fmt.Sprintf("[%v, %v)", lower, upper)
	}
	return s
}

// Context places a meter at an offset (in whole notes) on a timeline.
type Context struct {
	Meter  Meter
	Offset fraction.Fraction
}

// Contexts lays meters end to end starting at zero.
func Contexts(meters []Meter) []Context {
	contexts := make([]Context, len(meters))
	offset := fraction.Zero
	for i, m := range meters {
		contexts[i] = Context{Meter: m, Offset: offset}
		offset = offset.Add(m.Span().Fraction())
	}
	return contexts
}
