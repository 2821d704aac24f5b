package rhythm

import (
	"errors"
	"testing"

	"github.com/jsphweid/musicmodel/duration"
	"github.com/jsphweid/musicmodel/fraction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quarters(t *testing.T, contexts ...MetricalContext[string]) Rhythm[string] {
	t.Helper()
	r, err := Isochronous(duration.New(int64(len(contexts)), 4), contexts)
	require.NoError(t, err)
	return r
}

func TestLengthsMergesTies(t *testing.T) {
	r := quarters(t, Event("A"), Continuation[string](), Rest[string](), Event("B"))

	lengths, err := Lengths([]Rhythm[string]{r})
	require.NoError(t, err)
	assert.Equal(t, []duration.MetricalDuration{
		duration.New(1, 2),
		duration.New(1, 4),
		duration.New(1, 4),
	}, lengths)
}

func TestLengthsMergesAcrossRhythmBoundary(t *testing.T) {
	first := quarters(t, Event("A"), Event("B"))
	second := quarters(t, Continuation[string](), Continuation[string](), Event("C"))

	lengths, err := Lengths([]Rhythm[string]{first, second})
	require.NoError(t, err)
	assert.Equal(t, []duration.MetricalDuration{
		duration.New(1, 4),
		duration.New(3, 4),
		duration.New(1, 4),
	}, lengths)
}

func TestLengthsLeadingContinuation(t *testing.T) {
	eighth := duration.New(1, 8)
	r, err := FromWeights(duration.New(3, 8), []WeightedContext[string]{
		{Weight: 1, Context: Continuation[string]()},
		{Weight: 1, Context: Continuation[string]()},
		{Weight: 1, Context: Continuation[string]()},
	})
	require.NoError(t, err)
	require.Equal(t, eighth, r.Leaves()[0].MetricalDuration)

	lengths, err := Lengths([]Rhythm[string]{r})
	require.NoError(t, err)
	assert.Equal(t, []duration.MetricalDuration{duration.New(3, 8)}, lengths)

	spans, err := Merge([]Rhythm[string]{r})
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.False(t, spans[0].Instance.IsEvent())

	_, err = Lengths([]Rhythm[string]{r}, WithStrictTies())
	assert.True(t, errors.Is(err, ErrLeadingContinuation))
	assert.Contains(t, err.Error(), "leaf 0")
}

func TestStrictTiesRejectsContinuationAfterRest(t *testing.T) {
	r := quarters(t, Event("A"), Rest[string](), Continuation[string]())

	_, err := Lengths([]Rhythm[string]{r}, WithContinuationPolicy(RejectOrphanContinuation))
	assert.True(t, errors.Is(err, ErrLeadingContinuation))
	assert.Contains(t, err.Error(), "leaf 2")

	lengths, err := Lengths([]Rhythm[string]{r})
	require.NoError(t, err)
	assert.Equal(t, []duration.MetricalDuration{duration.New(1, 4), duration.New(1, 4), duration.New(1, 4)}, lengths)
}

func TestStrictTiesAcceptsWellFormedInput(t *testing.T) {
	r := quarters(t, Event("A"), Continuation[string](), Event("B"))
	lengths, err := Lengths([]Rhythm[string]{r}, WithStrictTies())
	require.NoError(t, err)
	assert.Equal(t, []duration.MetricalDuration{duration.New(1, 2), duration.New(1, 4)}, lengths)
}

func TestLengthsEmpty(t *testing.T) {
	lengths, err := Lengths[string](nil)
	require.NoError(t, err)
	assert.Empty(t, lengths)
	assert.NotNil(t, lengths)
}

func TestMergeOffsetOverflow(t *testing.T) {
	leaf := func(d duration.MetricalDuration, c MetricalContext[string]) Rhythm[string] {
		r, err := New(duration.Leaf(d), []MetricalContext[string]{c})
		require.NoError(t, err)
		return r
	}
	tiny := duration.New(1, 1<<62)
	third := duration.New(1, 3)

	cases := map[string][]Rhythm[string]{
		"event after event":     {leaf(tiny, Event("A")), leaf(third, Event("B"))},
		"continuation of event": {leaf(tiny, Event("A")), leaf(third, Continuation[string]())},
		"rest after event":      {leaf(tiny, Event("A")), leaf(third, Rest[string]()), leaf(third, Rest[string]())},
	}
	for name, rhythms := range cases {
		t.Run(name, func(t *testing.T) {
			spans, err := Merge(rhythms)
			require.Error(t, err)
			assert.True(t, errors.Is(err, fraction.ErrOverflow), "got %v", err)
			assert.Nil(t, spans)

			_, err = Lengths(rhythms)
			assert.True(t, errors.Is(err, fraction.ErrOverflow), "got %v", err)
		})
	}
}

func TestMergeSpans(t *testing.T) {
	r := quarters(t, Rest[string](), Event("A"), Continuation[string](), Event("B"))

	spans, err := Merge([]Rhythm[string]{r})
	require.NoError(t, err)
	require.Len(t, spans, 3)

	assert := assert.New(t)
	assert.Equal(duration.Zero, spans[0].Offset)
	assert.False(spans[0].Instance.IsEvent())

	assert.Equal(duration.New(1, 4), spans[1].Offset)
	assert.Equal(duration.New(1, 2), spans[1].Duration)
	v, ok := spans[1].Instance.Value()
	assert.True(ok)
	assert.Equal("A", v)

	assert.Equal(duration.New(3, 4), spans[2].Offset)
	assert.Equal(duration.New(1, 1), spans[2].End())
}

func TestMergeProperties(t *testing.T) {
	// every pattern over {event, continuation, rest} of length 5
	kinds := []MetricalContext[string]{Event("x"), Continuation[string](), Rest[string]()}
	weights := []int{1, 2, 3, 1, 5}
	total := 1
	for range weights {
		total *= len(kinds)
	}

	for p := 0; p < total; p++ {
		items := make([]WeightedContext[string], len(weights))
		n, continuations := p, 0
		for i := range items {
			ctx := kinds[n%len(kinds)]
			n /= len(kinds)
			if ctx.IsContinuation() {
				continuations++
			}
			items[i] = WeightedContext[string]{Weight: weights[i], Context: ctx}
		}
		r, err := FromWeights(duration.New(5, 4), items)
		require.NoError(t, err)

		lengths, err := Lengths([]Rhythm[string]{r})
		require.NoError(t, err)

		assert.LessOrEqual(t, len(lengths), len(items))
		if continuations == 0 {
			assert.Len(t, lengths, len(items))
		} else if _, err := Lengths([]Rhythm[string]{r}, WithStrictTies()); err == nil {
			// every continuation extends an event
			assert.Less(t, len(lengths), len(items))
		}
		assert.Equal(t, duration.New(5, 4), duration.Sum(lengths))
	}
}
