package model

import (
	"github.com/jsphweid/musicmodel/articulation"
	"github.com/jsphweid/musicmodel/dynamics"
	"github.com/jsphweid/musicmodel/fraction"
	"github.com/jsphweid/musicmodel/pitch"
	"github.com/jsphweid/musicmodel/util"
)

// Note is the payload of a sounding event.
type Note struct {
	Pitch         pitch.Pitch
	Dynamic       dynamics.Dynamic
	Articulations []articulation.Articulation
}

func NoteFromPitch(p pitch.Pitch) Note {
	return Note{Pitch: p, Dynamic: dynamics.MF}
}

// Velocity is the dynamic's velocity plus every articulation boost, kept in
// 1..127.
func (n Note) Velocity() uint8 {
	v := int(n.Dynamic.Velocity())
	for _, a := range n.Articulations {
		v += a.VelocityBoost()
	}
	return uint8(util.Max(util.Min(v, 127), 1))
}

// Gate is the shortest gate ratio among the articulations.
func (n Note) Gate() fraction.Fraction {
	gate := fraction.One
	for _, a := range n.Articulations {
		if r := a.GateRatio(); r.Less(gate) {
			gate = r
		}
	}
	return gate
}
