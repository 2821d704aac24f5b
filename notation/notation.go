// Package notation reads and writes rhythms as text.
//
//	rhythm := duration '{' item+ '}'
//	item   := weight ':' leaf | weight '{' item+ '}'
//	leaf   := '~' | 'r' | pitch
//
// For example "1/1 {1:c4 1:~ 2{1:r 1:e4}}" is a whole note split into a
// quarter c4, its tie, and a half holding an eighth rest and an eighth e4.
// Several rhythms may follow each other in one input.
package notation

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jsphweid/musicmodel/duration"
	"github.com/jsphweid/musicmodel/pitch"
	"github.com/jsphweid/musicmodel/rhythm"
)

// ErrSyntax is returned when the input does not follow the grammar.
var ErrSyntax = errors.New("syntax error")

const (
	continuationToken = "~"
	restToken         = "r"
)

// Parse reads every rhythm in src.
func Parse(src string) ([]rhythm.Rhythm[pitch.Pitch], error) {
	var rhythms []rhythm.Rhythm[pitch.Pitch]
	i := skipSpace(src, 0)
	for i < len(src) {
		r, next, err := parseRhythm(src, i)
		if err != nil {
			return nil, err
		}
		rhythms = append(rhythms, r)
		i = skipSpace(src, next)
	}
	return rhythms, nil
}

func parseRhythm(src string, i int) (rhythm.Rhythm[pitch.Pitch], int, error) {
	var zero rhythm.Rhythm[pitch.Pitch]
	tok, next := readToken(src, i)
	if tok == "" {
		return zero, i, syntaxError(i, "expected duration")
	}
	d, err := duration.Parse(tok)
	if err != nil {
		return zero, i, fmt.Errorf("at %d: %w", i, err)
	}
	next = skipSpace(src, next)
	if next >= len(src) || src[next] != '{' {
		return zero, next, syntaxError(next, "expected '{'")
	}
	props, contexts, next, err := parseItems(src, next+1)
	if err != nil {
		return zero, next, err
	}
	tree, err := duration.Build(d, props)
	if err != nil {
		return zero, i, fmt.Errorf("at %d: %w", i, err)
	}
	r, err := rhythm.New(tree, contexts)
	if err != nil {
		return zero, i, fmt.Errorf("at %d: %w", i, err)
	}
	return r, next, nil
}

// parseItems reads items up to and including the closing '}'.
func parseItems(src string, i int) ([]duration.Proportion, []rhythm.MetricalContext[pitch.Pitch], int, error) {
	var props []duration.Proportion
	var contexts []rhythm.MetricalContext[pitch.Pitch]
	for {
		i = skipSpace(src, i)
		if i >= len(src) {
			return nil, nil, i, syntaxError(i, "unterminated group")
		}
		if src[i] == '}' {
			if len(props) == 0 {
				return nil, nil, i, syntaxError(i, "empty group")
			}
			return props, contexts, i + 1, nil
		}

		weight, next, err := parseWeight(src, i)
		if err != nil {
			return nil, nil, i, err
		}
		if next >= len(src) {
			return nil, nil, next, syntaxError(next, "expected ':' or '{'")
		}
		switch src[next] {
		case ':':
			ctx, after, err := parseLeaf(src, next+1)
			if err != nil {
				return nil, nil, after, err
			}
			props = append(props, duration.Proportion{Weight: weight})
			contexts = append(contexts, ctx)
			i = after
		case '{':
			children, inner, after, err := parseItems(src, next+1)
			if err != nil {
				return nil, nil, after, err
			}
			props = append(props, duration.Proportion{Weight: weight, Children: children})
			contexts = append(contexts, inner...)
			i = after
		default:
			return nil, nil, next, syntaxError(next, "expected ':' or '{'")
		}
	}
}

func parseWeight(src string, i int) (int, int, error) {
	j := i
	for j < len(src) && src[j] >= '0' && src[j] <= '9' {
		j++
	}
	if j == i {
		return 0, i, syntaxError(i, "expected weight")
	}
	w, err := strconv.Atoi(src[i:j])
	if err != nil {
		return 0, i, syntaxError(i, "weight out of range")
	}
	return w, j, nil
}

func parseLeaf(src string, i int) (rhythm.MetricalContext[pitch.Pitch], int, error) {
	tok, next := readToken(src, i)
	switch tok {
	case "":
		return rhythm.MetricalContext[pitch.Pitch]{}, i, syntaxError(i, "expected '~', 'r' or pitch")
	case continuationToken:
		return rhythm.Continuation[pitch.Pitch](), next, nil
	case restToken:
		return rhythm.Rest[pitch.Pitch](), next, nil
	}
	p, err := pitch.Parse(tok)
	if err != nil {
		return rhythm.MetricalContext[pitch.Pitch]{}, i, fmt.Errorf("%w at %d: %w", ErrSyntax, i, err)
	}
	return rhythm.Event(p), next, nil
}

// readToken returns the run of characters up to whitespace or a brace.
func readToken(src string, i int) (string, int) {
	j := i
	for j < len(src) && !isSpace(src[j]) && src[j] != '{' && src[j] != '}' {
		j++
	}
	return src[i:j], j
}

func skipSpace(src string, i int) int {
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	return i
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func syntaxError(pos int, msg string) error {
	return fmt.Errorf("%w at %d: %s", ErrSyntax, pos, msg)
}
