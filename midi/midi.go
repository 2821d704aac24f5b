package midi

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/musicmodel/constants"
	"github.com/jsphweid/musicmodel/duration"
	"github.com/jsphweid/musicmodel/fraction"
	"github.com/jsphweid/musicmodel/meter"
	"github.com/jsphweid/musicmodel/model"
	"github.com/jsphweid/musicmodel/pitch"
	"github.com/jsphweid/musicmodel/rhythm"
	"github.com/jsphweid/musicmodel/tempo"
	"github.com/jsphweid/musicmodel/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	// ErrUnsupportedTimeFormat is returned for files not timed in metric ticks.
	ErrUnsupportedTimeFormat = errors.New("only metric ticks time format is supported")

	// ErrInvalidOptions is returned when export options cannot produce a file.
	ErrInvalidOptions = errors.New("invalid export options")
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// gomidi can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, e = &blank, fmt.Errorf("parsing midi file %s: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("parsing midi file %s: %w", filepath, err)
	}
	return res, nil
}

type Options struct {
	// Resolution is in ticks per quarter note.
	Resolution uint16
	Tempo      tempo.Tempo
	// Meter is written as a time signature unless it is the zero value.
	Meter   meter.Meter
	Channel uint8
	// Velocity is used for notes without a dynamic.
	Velocity uint8
}

func DefaultOptions() Options {
	return Options{
		Resolution: constants.DefaultResolution,
		Tempo:      tempo.Tempo{BeatsPerMinute: constants.DefaultTempo, Subdivision: constants.DefaultTempoBeat},
		Channel:    constants.DefaultChannel,
		Velocity:   constants.DefaultVelocity,
	}
}

func (o Options) validate() error {
	switch {
	case o.Resolution == 0:
		return fmt.Errorf("%w: resolution must be positive", ErrInvalidOptions)
	case o.Channel > 15:
		return fmt.Errorf("%w: channel %d", ErrInvalidOptions, o.Channel)
	case o.Velocity > 127:
		return fmt.Errorf("%w: velocity %d", ErrInvalidOptions, o.Velocity)
	}
	if _, err := tempo.New(o.Tempo.BeatsPerMinute, o.Tempo.Subdivision); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

// ticks converts a whole-note offset to the nearest tick.
func ticks(d duration.MetricalDuration, resolution uint16) uint32 {
	whole := d.Fraction().MulInt(4 * int64(resolution))
	return uint32(math.Round(whole.Float64()))
}

// Export writes one track holding a note per event span. Rests only
// advance time. A note whose rounded onset falls before the previous note
// off is delayed to it.
func Export(spans []rhythm.Span[model.Note], opts Options) (_ *smf.SMF, err error) {
	defer fraction.Recover(&err)

	if err := opts.validate(); err != nil {
		return nil, err
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(opts.Resolution)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(opts.Tempo.Respelled(4).BeatsPerMinute))
	if opts.Meter.Beats > 0 {
		tr.Add(0, smf.MetaMeter(uint8(opts.Meter.Beats), uint8(opts.Meter.Subdivision)))
	}

	var last uint32
	var written int
	for i, span := range spans {
		note, ok := span.Instance.Value()
		if !ok {
			continue
		}
		key, err := note.Pitch.MIDIKey()
		if err != nil {
			return nil, fmt.Errorf("span %d: %w", i, err)
		}
		sounding := duration.FromFraction(span.Duration.Fraction().Mul(note.Gate()))
		start := util.Max(ticks(span.Offset, opts.Resolution), last)
		end := ticks(span.Offset.Add(sounding), opts.Resolution)
		if end <= start {
			slog.Debug("skipping zero length note", "span", i, "pitch", note.Pitch.String())
			continue
		}

		velocity := note.Velocity()
		if note.Dynamic == 0 && opts.Velocity > 0 {
			velocity = opts.Velocity
		}
		tr.Add(start-last, gomidi.NoteOn(opts.Channel, key, velocity))
		tr.Add(end-start, gomidi.NoteOff(opts.Channel, key))
		last = end
		written++
	}

	var total uint32
	if len(spans) > 0 {
		total = ticks(spans[len(spans)-1].End(), opts.Resolution)
	}
	total = util.Max(total, last)
	tr.Close(total - last)

	s.Add(tr)
	slog.Debug("exported midi", "spans", len(spans), "notes", written, "ticks", total)
	return s, nil
}

// ExportPitches exports bare pitches at the options' velocity.
func ExportPitches(spans []rhythm.Span[pitch.Pitch], opts Options) (*smf.SMF, error) {
	notes := make([]rhythm.Span[model.Note], len(spans))
	for i, span := range spans {
		notes[i] = rhythm.Span[model.Note]{
			Offset:   span.Offset,
			Duration: span.Duration,
			Instance: rhythm.MapInstance(span.Instance, func(p pitch.Pitch) model.Note {
				return model.Note{Pitch: p}
			}),
		}
	}
	return Export(notes, opts)
}

// NoteSpan is a sounding note recovered from a file.
type NoteSpan struct {
	Channel  uint8
	Key      uint8
	Offset   duration.MetricalDuration
	Duration duration.MetricalDuration
}

type pressKey struct {
	channel, key uint8
}

// NoteLengths pairs note on and off events across all tracks and measures
// them in whole notes, ordered by onset.
func NoteLengths(s *smf.SMF) ([]NoteSpan, error) {
	tf, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, ErrUnsupportedTimeFormat
	}
	whole := 4 * int64(tf)

	var notes []NoteSpan
	for _, track := range s.Tracks {
		pressed := make(map[pressKey]int64)
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
				pressed[pressKey{channel, key}] = absTicks
			case event.Message.GetNoteOn(&channel, &key, &velocity),
				event.Message.GetNoteOff(&channel, &key, &velocity):
				pk := pressKey{channel, key}
				start, ok := pressed[pk]
				if !ok {
					continue
				}
				delete(pressed, pk)
				notes = append(notes, NoteSpan{
					Channel:  channel,
					Key:      key,
					Offset:   duration.New(start, whole),
					Duration: duration.New(absTicks-start, whole),
				})
			}
		}
		if len(pressed) > 0 {
			slog.Warn("unterminated notes", "count", len(pressed))
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Offset.Cmp(notes[j].Offset) < 0
	})
	return notes, nil
}
