package duration

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jsphweid/musicmodel/fraction"
)

var (
	// ErrNegativeWeight is returned when a proportion carries a negative weight.
	ErrNegativeWeight = errors.New("proportion weight cannot be negative")

	// ErrAllZeroWeights is returned when a subdivision has no positive weight to
	// distribute its duration over. An empty subdivision is reported the same way.
	ErrAllZeroWeights = errors.New("subdivision needs at least one positive weight")

	// ErrWeightOverflow is returned when the weights of one subdivision sum
	// past the int64 range.
	ErrWeightOverflow = errors.New("proportion weights overflow")
)

// Proportion describes one child of a subdivision: its Weight relative to its
// siblings and, optionally, a further subdivision of its own.
type Proportion struct {
	Weight   int
	Children []Proportion
}

// Tree is a MetricalDurationTree. A leaf holds a duration; a node holds a
// duration that its children divide exactly.
type Tree struct {
	duration MetricalDuration
	children []Tree
}

// Leaf returns a single-leaf tree.
func Leaf(d MetricalDuration) Tree {
	return Tree{duration: d}
}

// Subdivide distributes d over len(weights) leaves, each receiving
// d*w/sum(weights).
func Subdivide(d MetricalDuration, weights []int) (Tree, error) {
	props := make([]Proportion, len(weights))
	for i, w := range weights {
		props[i] = Proportion{Weight: w}
	}
	return Build(d, props)
}

// Build returns the tree rooted at d whose children follow proportions.
// Child durations that do not fit an int64 fraction fail with an error
// wrapping fraction.ErrOverflow.
func Build(d MetricalDuration, proportions []Proportion) (t Tree, err error) {
	if d.Fraction().Sign() < 0 {
		return Tree{}, fmt.Errorf("%w: %s", ErrNegativeDuration, d)
	}
	defer fraction.Recover(&err)
	return build(d, proportions, "root")
}

func build(d MetricalDuration, proportions []Proportion, path string) (Tree, error) {
	var total int64
	for i, p := range proportions {
		if p.Weight < 0 {
			return Tree{}, fmt.Errorf("%w: %d at %s[%d]", ErrNegativeWeight, p.Weight, path, i)
		}
		if total > math.MaxInt64-int64(p.Weight) {
			return Tree{}, fmt.Errorf("%w at %s[%d]", ErrWeightOverflow, path, i)
		}
		total += int64(p.Weight)
	}
	if total == 0 {
		return Tree{}, fmt.Errorf("%w at %s", ErrAllZeroWeights, path)
	}

	children := make([]Tree, len(proportions))
	for i, p := range proportions {
		childDuration := d.Scale(int64(p.Weight), total)
		if len(p.Children) == 0 {
			children[i] = Leaf(childDuration)
			continue
		}
		child, err := build(childDuration, p.Children, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return Tree{}, err
		}
		children[i] = child
	}
	return Tree{duration: d, children: children}, nil
}

func (t Tree) Duration() MetricalDuration {
	return t.duration
}

func (t Tree) IsLeaf() bool {
	return len(t.children) == 0
}

// Children returns a copy of t's direct children.
func (t Tree) Children() []Tree {
	res := make([]Tree, len(t.children))
	copy(res, t.children)
	return res
}

// Leaves returns the leaf durations in left-to-right order.
func (t Tree) Leaves() []MetricalDuration {
	var res []MetricalDuration
	stack := []Tree{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.IsLeaf() {
			res = append(res, n.duration)
			continue
		}
		// push in reverse so the leftmost child is visited first
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
	return res
}

func (t Tree) LeafCount() int {
	if t.IsLeaf() {
		return 1
	}
	count := 0
	for _, c := range t.children {
		count += c.LeafCount()
	}
	return count
}

// Depth of a single leaf is 0.
func (t Tree) Depth() int {
	depth := 0
	for _, c := range t.children {
		if d := c.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// SameShape reports whether t and o have the same structure and durations.
func (t Tree) SameShape(o Tree) bool {
	if !t.duration.Equal(o.duration) || len(t.children) != len(o.children) {
		return false
	}
	for i := range t.children {
		if !t.children[i].SameShape(o.children[i]) {
			return false
		}
	}
	return true
}

// String renders the tree as "1/2(1/4 1/4(1/8 1/8))".
func (t Tree) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t Tree) write(sb *strings.Builder) {
	sb.WriteString(t.duration.String())
	if t.IsLeaf() {
		return
	}
	sb.WriteByte('(')
	for i, c := range t.children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		c.write(sb)
	}
	sb.WriteByte(')')
}
