package rhythm

import (
	"errors"
	"fmt"

	"github.com/jsphweid/musicmodel/duration"
	"github.com/jsphweid/musicmodel/fraction"
)

// ErrLeadingContinuation is returned under RejectOrphanContinuation when a
// continuation has no sounding event to extend, i.e. it opens the sequence or
// follows a rest.
var ErrLeadingContinuation = errors.New("continuation has no preceding event")

// ContinuationPolicy decides what happens to a continuation with nothing to tie to.
type ContinuationPolicy int

const (
	// TieToSilence starts the run from zero as if an implicit zero-length rest
	// preceded it. The run becomes its own entry and is reported as an absence.
	TieToSilence ContinuationPolicy = iota
	// RejectOrphanContinuation fails the merge with ErrLeadingContinuation.
	RejectOrphanContinuation
)

type mergeConfig struct {
	policy ContinuationPolicy
}

type MergeOption func(*mergeConfig)

func WithContinuationPolicy(policy ContinuationPolicy) MergeOption {
	return func(c *mergeConfig) {
		c.policy = policy
	}
}

// WithStrictTies is WithContinuationPolicy(RejectOrphanContinuation).
func WithStrictTies() MergeOption {
	return WithContinuationPolicy(RejectOrphanContinuation)
}

// Span is one merged entry: an event with its tied continuations, or a rest.
type Span[T any] struct {
	Offset   duration.MetricalDuration
	Duration duration.MetricalDuration
	Instance AbsenceOrEvent[T]
}

func (s Span[T]) End() duration.MetricalDuration {
	return s.Offset.Add(s.Duration)
}

// Merge walks the leaves of rhythms in order, treating them as one sequence,
// and folds every continuation into the entry before it. Ties across rhythm
// boundaries merge like any other. Offsets that leave the int64 fraction
// range fail with an error wrapping fraction.ErrOverflow.
func Merge[T any](rhythms []Rhythm[T], opts ...MergeOption) (_ []Span[T], err error) {
	defer fraction.Recover(&err)

	cfg := mergeConfig{policy: TieToSilence}
	for _, opt := range opts {
		opt(&cfg)
	}

	count := 0
	for _, r := range rhythms {
		count += len(r.leaves)
	}
	spans := make([]Span[T], 0, count)

	// carry is the entry still open to ties; tied is false when there is none.
	var carry Span[T]
	tied := false
	offset := duration.Zero

	flush := func() {
		if tied {
			spans = append(spans, carry)
			offset = carry.End()
		}
		tied = false
	}

	index := 0
	for _, r := range rhythms {
		for _, leaf := range r.leaves {
			switch leaf.Context.Kind() {
			case KindContinuation:
				if !tied {
					if cfg.policy == RejectOrphanContinuation {
						return nil, fmt.Errorf("%w: leaf %d", ErrLeadingContinuation, index)
					}
					carry = Span[T]{Offset: offset, Duration: duration.Zero, Instance: Absence[T]()}
					tied = true
				}
				carry.Duration = carry.Duration.Add(leaf.MetricalDuration)
			case KindAbsence:
				flush()
				spans = append(spans, Span[T]{Offset: offset, Duration: leaf.MetricalDuration, Instance: Absence[T]()})
				offset = offset.Add(leaf.MetricalDuration)
			case KindEvent:
				flush()
				carry = Span[T]{Offset: offset, Duration: leaf.MetricalDuration, Instance: leaf.Context.instance}
				tied = true
			}
			index++
		}
	}
	flush()
	return spans, nil
}

// Lengths returns the sounding durations of rhythms: each event extended by
// the continuations tied to it, and each rest on its own.
func Lengths[T any](rhythms []Rhythm[T], opts ...MergeOption) ([]duration.MetricalDuration, error) {
	spans, err := Merge(rhythms, opts...)
	if err != nil {
		return nil, err
	}
	res := make([]duration.MetricalDuration, len(spans))
	for i, s := range spans {
		res[i] = s.Duration
	}
	return res, nil
}
