// Package rhythm pairs metrical duration trees with per-leaf contexts and
// merges tied leaves into the durations that actually sound.
package rhythm

import (
	"errors"
	"fmt"

	"github.com/jsphweid/musicmodel/duration"
)

// ErrStructuralMismatch is returned when the number of contexts does not match
// the number of leaves in the duration tree.
var ErrStructuralMismatch = errors.New("context count does not match tree leaf count")

// Leaf is a single leaf of a Rhythm.
type Leaf[T any] struct {
	MetricalDuration duration.MetricalDuration
	Context          MetricalContext[T]
}

// MapLeaf keeps the duration of l and transforms its context.
func MapLeaf[T, U any](l Leaf[T], transform func(T) U) Leaf[U] {
	return Leaf[U]{
		MetricalDuration: l.MetricalDuration,
		Context:          MapContext(l.Context, transform),
	}
}

// Rhythm is a metrical duration tree with one context per leaf.
type Rhythm[T any] struct {
	tree   duration.Tree
	leaves []Leaf[T]
}

// WeightedContext is a leaf context with its weight in a flat subdivision.
type WeightedContext[T any] struct {
	Weight  int
	Context MetricalContext[T]
}

// New zips the leaves of tree with contexts.
func New[T any](tree duration.Tree, contexts []MetricalContext[T]) (Rhythm[T], error) {
	durations := tree.Leaves()
	if len(durations) != len(contexts) {
		return Rhythm[T]{}, fmt.Errorf("%w: %d leaves, %d contexts", ErrStructuralMismatch, len(durations), len(contexts))
	}
	leaves := make([]Leaf[T], len(durations))
	for i, d := range durations {
		leaves[i] = Leaf[T]{MetricalDuration: d, Context: contexts[i]}
	}
	return Rhythm[T]{tree: tree, leaves: leaves}, nil
}

// FromWeights subdivides d by the given weights and pairs each resulting leaf
// with its context.
func FromWeights[T any](d duration.MetricalDuration, items []WeightedContext[T]) (Rhythm[T], error) {
	weights := make([]int, len(items))
	contexts := make([]MetricalContext[T], len(items))
	for i, item := range items {
		weights[i] = item.Weight
		contexts[i] = item.Context
	}
	tree, err := duration.Subdivide(d, weights)
	if err != nil {
		return Rhythm[T]{}, err
	}
	return New(tree, contexts)
}

// Isochronous divides d equally between contexts.
func Isochronous[T any](d duration.MetricalDuration, contexts []MetricalContext[T]) (Rhythm[T], error) {
	items := make([]WeightedContext[T], len(contexts))
	for i, c := range contexts {
		items[i] = WeightedContext[T]{Weight: 1, Context: c}
	}
	return FromWeights(d, items)
}

func (r Rhythm[T]) Tree() duration.Tree {
	return r.tree
}

// Leaves returns a copy of the leaves of r.
func (r Rhythm[T]) Leaves() []Leaf[T] {
	res := make([]Leaf[T], len(r.leaves))
	copy(res, r.leaves)
	return res
}

func (r Rhythm[T]) Len() int {
	return len(r.leaves)
}

func (r Rhythm[T]) Duration() duration.MetricalDuration {
	return r.tree.Duration()
}

// Map returns a Rhythm with the same tree whose event payloads have been
// transformed. Continuations and absences are kept.
func Map[T, U any](r Rhythm[T], transform func(T) U) Rhythm[U] {
	leaves := make([]Leaf[U], len(r.leaves))
	for i, l := range r.leaves {
		leaves[i] = MapLeaf(l, transform)
	}
	return Rhythm[U]{tree: r.tree, leaves: leaves}
}
