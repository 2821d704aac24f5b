// Package pitch models pitches on the MIDI note number scale and their
// pitch classes.
package pitch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrOutOfRange is returned when a pitch cannot be sent as a MIDI key.
	ErrOutOfRange = errors.New("pitch outside MIDI key range")

	// ErrInvalidName is returned when a pitch name cannot be parsed.
	ErrInvalidName = errors.New("invalid pitch name")
)

// NoteNumber is a position on the MIDI scale. 60 is middle C; fractional
// values are microtones.
type NoteNumber float64

const referenceFrequency = 440.0

var letterOffsets = map[byte]NoteNumber{
	'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11,
}

var sharpNames = []string{"c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b"}

type Pitch struct {
	NoteNumber NoteNumber
}

func New(nn NoteNumber) Pitch {
	return Pitch{NoteNumber: nn}
}

func FromFrequency(hz float64) Pitch {
	return Pitch{NoteNumber: NoteNumber(69 + 12*math.Log2(hz/referenceFrequency))}
}

func (p Pitch) Frequency() float64 {
	return referenceFrequency * math.Pow(2, (float64(p.NoteNumber)-69)/12)
}

func (p Pitch) Class() Class {
	return NewClass(p.NoteNumber)
}

// MIDIKey rounds p to the nearest key.
func (p Pitch) MIDIKey() (uint8, error) {
	key := math.Round(float64(p.NoteNumber))
	if key < 0 || key > 127 {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, p.NoteNumber)
	}
	return uint8(key), nil
}

// String spells whole note numbers with sharps, e.g. "c#4". Microtones fall
// back to "n60.5".
func (p Pitch) String() string {
	nn := float64(p.NoteNumber)
	if nn != math.Trunc(nn) || nn < 0 {
		return "n" + strconv.FormatFloat(nn, 'f', -1, 64)
	}
	n := int(nn)
	return fmt.Sprintf("%s%d", sharpNames[n%12], n/12-1)
}

// Parse reads either a name like "c4", "f#3" or "bb5" or an explicit
// note number like "n60" or "n60.5".
func Parse(s string) (Pitch, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return Pitch{}, fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if in[0] == 'n' {
		v, err := strconv.ParseFloat(in[1:], 64)
		if err != nil {
			return Pitch{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
		}
		return New(NoteNumber(v)), nil
	}

	base, ok := letterOffsets[in[0]]
	if !ok {
		return Pitch{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
	}
	i, shift := 1, NoteNumber(0)
	for i < len(in) {
		switch in[i] {
		case '#', '+':
			shift++
		case 'b':
			shift--
		default:
			goto done
		}
		i++
	}
done:
	octave, err := strconv.Atoi(in[i:])
	if err != nil {
		return Pitch{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
	}
	return New(NoteNumber((octave+1)*12) + base + shift), nil
}

// Class is a pitch with octave equivalence, in [0, 12).
type Class struct {
	noteNumber NoteNumber
}

func NewClass(nn NoteNumber) Class {
	v := math.Mod(float64(nn), 12)
	if v < 0 {
		v += 12
	}
	return Class{noteNumber: NoteNumber(v)}
}

func (c Class) NoteNumber() NoteNumber {
	return c.noteNumber
}

func (c Class) Add(o Class) Class {
	return NewClass(c.noteNumber + o.noteNumber)
}

func (c Class) Sub(o Class) Class {
	return NewClass(c.noteNumber - o.noteNumber)
}

func (c Class) Inversion() Class {
	return NewClass(12 - c.noteNumber)
}

func (c Class) String() string {
	return strconv.FormatFloat(float64(c.noteNumber), 'f', -1, 64)
}
