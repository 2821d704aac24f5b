package articulation

import (
	"errors"
	"testing"

	"github.com/jsphweid/musicmodel/fraction"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, a := range []Articulation{Tenuto, Staccato, Staccatissimo, Accent, Marcato} {
		got, err := Parse(a.String())
		assert.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := Parse("legato")
	assert.True(t, errors.Is(err, ErrUnknownArticulation))
}

func TestGateAndVelocity(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(fraction.New(1, 2), Staccato.GateRatio())
	assert.Equal(fraction.One, Tenuto.GateRatio())
	assert.Equal(fraction.One, Accent.GateRatio())
	assert.Equal(16, Accent.VelocityBoost())
	assert.Equal(0, Staccato.VelocityBoost())
}
