package physics

import (
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// Seed fills l with n particles placed just inside the wall at random
// angles, each moving outward along its angle at a random speed below
// maxSpeed. Dot radii fall in [2, 4), capped to half the lobe radius.
func Seed(l *dynamo.Lobe, n int, rng dynamo.Source, maxSpeed float64) {
	l.Particles = make([]dynamo.Particle, n)
	for i := range l.Particles {
		angle := rng.Float64() * 2 * math.Pi
		speed := rng.Float64() * maxSpeed
		r := 2 + rng.Float64()*2
		if r > l.Radius/2 {
			r = l.Radius / 2
		}
		l.Particles[i] = dynamo.Particle{
			Pos:    dynamo.Polar(angle, l.Radius-r),
			Vel:    dynamo.Polar(angle, speed),
			Radius: r,
		}
	}
}
