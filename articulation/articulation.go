package articulation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/musicmodel/fraction"
)

// ErrUnknownArticulation is returned when a name cannot be parsed.
var ErrUnknownArticulation = errors.New("unknown articulation")

type Articulation int

const (
	Tenuto Articulation = iota + 1
	Staccato
	Staccatissimo
	Accent
	Marcato
)

var names = map[Articulation]string{
	Tenuto:        "tenuto",
	Staccato:      "staccato",
	Staccatissimo: "staccatissimo",
	Accent:        "accent",
	Marcato:       "marcato",
}

func Parse(s string) (Articulation, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for a, n := range names {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArticulation, s)
}

func (a Articulation) String() string {
	if n, ok := names[a]; ok {
		return n
	}
	return "unknown"
}

// GateRatio is the share of the written duration that actually sounds.
func (a Articulation) GateRatio() fraction.Fraction {
	switch a {
	case Staccato:
		return fraction.New(1, 2)
	case Staccatissimo:
		return fraction.New(1, 4)
	case Marcato:
		return fraction.New(3, 4)
	default:
		return fraction.One
	}
}

// VelocityBoost is added to the dynamic's velocity.
func (a Articulation) VelocityBoost() int {
	switch a {
	case Accent:
		return 16
	case Marcato:
		return 24
	default:
		return 0
	}
}
