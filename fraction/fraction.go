// Package fraction implements exact rational numbers used for every metrical
// computation in the module. Values are immutable and always kept in lowest
// terms with a positive denominator, so two equal fractions compare equal with
// ==.
package fraction

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/jsphweid/musicmodel/util"
)

var (
	// ErrZeroDenominator is returned when a fraction is parsed with a zero denominator.
	ErrZeroDenominator = errors.New("zero denominator")

	// ErrInvalidFormat is returned when a string is not of the form "n" or "n/d".
	ErrInvalidFormat = errors.New("invalid fraction format")

	// ErrOverflow is the panic value raised when a result does not fit in int64.
	ErrOverflow = errors.New("fraction overflows int64")
)

// Fraction is an exact rational number. The zero value is 0.
type Fraction struct {
	numerator int64
	// denominator minus one, so that Fraction{} is 0/1
	denom int64
}

var (
	Zero = Fraction{}
	One  = Fraction{1, 0}
)

// New returns numerator/denominator in lowest terms. It panics if denominator
// is zero, like big.NewRat.
func New(numerator, denominator int64) Fraction {
	if denominator == 0 {
		panic(ErrZeroDenominator)
	}
	if denominator < 0 {
		if numerator == math.MinInt64 || denominator == math.MinInt64 {
			panic(ErrOverflow)
		}
		numerator, denominator = -numerator, -denominator
	}
	if numerator == 0 {
		return Zero
	}
	g := util.GCD(numerator, denominator)
	return Fraction{numerator / g, denominator/g - 1}
}

// FromInt returns n/1.
func FromInt(n int64) Fraction {
	return Fraction{n, 0}
}

// Parse reads "n" or "n/d".
func Parse(s string) (_ Fraction, err error) {
	defer Recover(&err)

	s = strings.TrimSpace(s)
	numStr, denStr, hasSlash := strings.Cut(s, "/")
	n, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if !hasSlash {
		return FromInt(n), nil
	}
	d, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if d == 0 {
		return Zero, fmt.Errorf("%w: %q", ErrZeroDenominator, s)
	}
	return New(n, d), nil
}

func fromRat(r *big.Rat) Fraction {
	num, den := r.Num(), r.Denom()
	if !num.IsInt64() || !den.IsInt64() {
		panic(ErrOverflow)
	}
	return New(num.Int64(), den.Int64())
}

// Recover turns a deferred ErrOverflow panic into an error stored in err.
// Other panics are re-raised. It must be deferred directly:
//
//	defer fraction.Recover(&err)
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok && errors.Is(e, ErrOverflow) {
		*err = e
		return
	}
	panic(r)
}

func (f Fraction) Numerator() int64 {
	return f.numerator
}

func (f Fraction) Denominator() int64 {
	return f.denom + 1
}

// Rat returns a new big.Rat holding f.
func (f Fraction) Rat() *big.Rat {
	return big.NewRat(f.Numerator(), f.Denominator())
}

func (f Fraction) Add(o Fraction) Fraction {
	return fromRat(new(big.Rat).Add(f.Rat(), o.Rat()))
}

func (f Fraction) Sub(o Fraction) Fraction {
	return fromRat(new(big.Rat).Sub(f.Rat(), o.Rat()))
}

func (f Fraction) Mul(o Fraction) Fraction {
	return fromRat(new(big.Rat).Mul(f.Rat(), o.Rat()))
}

// Div panics if o is zero.
func (f Fraction) Div(o Fraction) Fraction {
	if o.IsZero() {
		panic(ErrZeroDenominator)
	}
	return fromRat(new(big.Rat).Quo(f.Rat(), o.Rat()))
}

func (f Fraction) MulInt(n int64) Fraction {
	return f.Mul(FromInt(n))
}

// DivInt panics if n is zero.
func (f Fraction) DivInt(n int64) Fraction {
	return f.Div(FromInt(n))
}

func (f Fraction) Neg() Fraction {
	if f.numerator == math.MinInt64 {
		panic(ErrOverflow)
	}
	return Fraction{-f.numerator, f.denom}
}

// Cmp returns -1, 0 or +1 as f is less than, equal to or greater than o.
func (f Fraction) Cmp(o Fraction) int {
	return f.Rat().Cmp(o.Rat())
}

func (f Fraction) Equal(o Fraction) bool {
	return f == o
}

func (f Fraction) Less(o Fraction) bool {
	return f.Cmp(o) < 0
}

func (f Fraction) IsZero() bool {
	return f.numerator == 0
}

func (f Fraction) Sign() int {
	switch {
	case f.numerator < 0:
		return -1
	case f.numerator > 0:
		return 1
	}
	return 0
}

func (f Fraction) Float64() float64 {
	v, _ := f.Rat().Float64()
	return v
}

func (f Fraction) String() string {
	if f.Denominator() == 1 {
		return strconv.FormatInt(f.numerator, 10)
	}
	return fmt.Sprintf("%d/%d", f.numerator, f.Denominator())
}

// Sum adds fs left to right.
func Sum(fs []Fraction) Fraction {
	total := new(big.Rat)
	for _, f := range fs {
		total.Add(total, f.Rat())
	}
	return fromRat(total)
}
