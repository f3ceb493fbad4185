package physics

import (
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// DefaultThreshold separates hot particles (right half) from cold ones
// (left half).
const DefaultThreshold = 0.05

// Sort applies the demon to every particle of l: particles with kinetic
// energy above threshold are mirrored to x >= 0, the rest to x <= 0. Only
// the x coordinate changes; velocity is left alone, so a mirrored particle
// keeps its heading. Returns how many particles were moved.
func Sort(l *dynamo.Lobe, threshold float64) int {
	moved := 0
	for i := range l.Particles {
		p := &l.Particles[i]
		x := math.Abs(p.Pos.X)
		if !Hot(*p, threshold) {
			x = -x
		}
		if x != p.Pos.X {
			p.Pos.X = x
			moved++
		}
	}
	return moved
}

// Hot reports whether p is above the demon threshold.
func Hot(p dynamo.Particle, threshold float64) bool {
	return p.KineticEnergy() > threshold
}

// Sorted reports whether p already sits on the side the demon assigns it.
func Sorted(p dynamo.Particle, threshold float64) bool {
	if Hot(p, threshold) {
		return p.Pos.X >= 0
	}
	return p.Pos.X <= 0
}
