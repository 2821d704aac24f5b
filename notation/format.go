package notation

import (
	"strconv"
	"strings"

	"github.com/jsphweid/musicmodel/duration"
	"github.com/jsphweid/musicmodel/pitch"
	"github.com/jsphweid/musicmodel/rhythm"
	"github.com/jsphweid/musicmodel/util"
)

// Format writes r so that Parse reads back the same durations and contexts.
// Weights come out in lowest terms.
func Format(r rhythm.Rhythm[pitch.Pitch]) string {
	var sb strings.Builder
	tree := r.Tree()
	sb.WriteString(tree.Duration().String())
	sb.WriteString(" ")

	leaves := r.Leaves()
	if tree.IsLeaf() {
		// a bare leaf has no group; wrap it as a single item
		sb.WriteString("{1:")
		sb.WriteString(formatContext(leaves[0].Context))
		sb.WriteString("}")
		return sb.String()
	}
	next := 0
	writeGroup(&sb, tree.Children(), leaves, &next)
	return sb.String()
}

// FormatAll joins several rhythms with single spaces.
func FormatAll(rhythms []rhythm.Rhythm[pitch.Pitch]) string {
	parts := make([]string, len(rhythms))
	for i, r := range rhythms {
		parts[i] = Format(r)
	}
	return strings.Join(parts, " ")
}

func writeGroup(sb *strings.Builder, children []duration.Tree, leaves []rhythm.Leaf[pitch.Pitch], next *int) {
	weights := weightsOf(children)
	sb.WriteString("{")
	for i, child := range children {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(strconv.FormatInt(weights[i], 10))
		if child.IsLeaf() {
			sb.WriteString(":")
			sb.WriteString(formatContext(leaves[*next].Context))
			*next++
			continue
		}
		writeGroup(sb, child.Children(), leaves, next)
	}
	sb.WriteString("}")
}

// weightsOf recovers the smallest integer weights proportional to the
// children's durations.
func weightsOf(children []duration.Tree) []int64 {
	denominators := int64(1)
	for _, c := range children {
		denominators = util.LCM(denominators, c.Duration().Denominator())
	}
	weights := make([]int64, len(children))
	var g int64
	for i, c := range children {
		d := c.Duration()
		weights[i] = d.Numerator() * (denominators / d.Denominator())
		g = util.GCD(g, weights[i])
	}
	for i := range weights {
		if g == 0 {
			weights[i] = 1
			continue
		}
		weights[i] /= g
	}
	return weights
}

func formatContext(c rhythm.MetricalContext[pitch.Pitch]) string {
	switch c.Kind() {
	case rhythm.KindContinuation:
		return continuationToken
	case rhythm.KindAbsence:
		return restToken
	}
	p, _ := c.Value()
	return p.String()
}
