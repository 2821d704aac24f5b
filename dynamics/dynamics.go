package dynamics

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDynamic is returned when a marking cannot be parsed.
var ErrUnknownDynamic = errors.New("unknown dynamic marking")

// Dynamic is a loudness marking, ordered from softest to loudest.
type Dynamic int

const (
	PPP Dynamic = iota + 1
	PP
	P
	MP
	MF
	F
	FF
	FFF
)

var markings = map[Dynamic]string{
	PPP: "ppp",
	PP:  "pp",
	P:   "p",
	MP:  "mp",
	MF:  "mf",
	F:   "f",
	FF:  "ff",
	FFF: "fff",
}

// velocities follow the usual notation-software defaults
var velocities = map[Dynamic]uint8{
	PPP: 16,
	PP:  33,
	P:   49,
	MP:  64,
	MF:  80,
	F:   96,
	FF:  112,
	FFF: 127,
}

func Parse(s string) (Dynamic, error) {
	marking := strings.ToLower(strings.TrimSpace(s))
	for d, m := range markings {
		if m == marking {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDynamic, s)
}

func (d Dynamic) String() string {
	if m, ok := markings[d]; ok {
		return m
	}
	return "unknown"
}

// Velocity maps d to a MIDI velocity. An unset dynamic plays as mf.
func (d Dynamic) Velocity() uint8 {
	if v, ok := velocities[d]; ok {
		return v
	}
	return velocities[MF]
}
