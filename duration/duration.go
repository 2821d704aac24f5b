// Package duration models metrical durations and their hierarchical
// subdivision into duration trees.
package duration

import (
	"errors"
	"fmt"

	"github.com/jsphweid/musicmodel/fraction"
)

// ErrNegativeDuration is returned when a duration tree is rooted at a negative duration.
var ErrNegativeDuration = errors.New("duration cannot be negative")

// MetricalDuration is a duration expressed as a fraction of a whole note.
// Values are always reduced, so == is exact equality.
type MetricalDuration fraction.Fraction

var Zero = MetricalDuration(fraction.Zero)

// New panics if denominator is zero.
func New(numerator, denominator int64) MetricalDuration {
	return MetricalDuration(fraction.New(numerator, denominator))
}

func FromFraction(f fraction.Fraction) MetricalDuration {
	return MetricalDuration(f)
}

// Parse reads "3/8" style durations. Negative durations are rejected.
func Parse(s string) (MetricalDuration, error) {
	f, err := fraction.Parse(s)
	if err != nil {
		return Zero, err
	}
	if f.Sign() < 0 {
		return Zero, fmt.Errorf("%w: %s", ErrNegativeDuration, s)
	}
	return MetricalDuration(f), nil
}

func (d MetricalDuration) Fraction() fraction.Fraction {
	return fraction.Fraction(d)
}

func (d MetricalDuration) Numerator() int64 {
	return d.Fraction().Numerator()
}

func (d MetricalDuration) Denominator() int64 {
	return d.Fraction().Denominator()
}

func (d MetricalDuration) Add(o MetricalDuration) MetricalDuration {
	return MetricalDuration(d.Fraction().Add(o.Fraction()))
}

func (d MetricalDuration) Sub(o MetricalDuration) MetricalDuration {
	return MetricalDuration(d.Fraction().Sub(o.Fraction()))
}

// Scale returns d * weight / total. It panics if total is zero.
func (d MetricalDuration) Scale(weight, total int64) MetricalDuration {
	return MetricalDuration(d.Fraction().Mul(fraction.New(weight, total)))
}

func (d MetricalDuration) Cmp(o MetricalDuration) int {
	return d.Fraction().Cmp(o.Fraction())
}

func (d MetricalDuration) Equal(o MetricalDuration) bool {
	return d.Fraction().Equal(o.Fraction())
}

func (d MetricalDuration) IsZero() bool {
	return d.Fraction().IsZero()
}

func (d MetricalDuration) String() string {
	return fmt.Sprintf("%d/%d", d.Numerator(), d.Denominator())
}

// Sum adds ds exactly.
func Sum(ds []MetricalDuration) MetricalDuration {
	total := Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}
