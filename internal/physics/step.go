package physics

import "github.com/san-kum/maxwell/internal/dynamo"

// StepParams bounds the thermal noise of a physics step.
type StepParams struct {
	Jitter   float64 // full width of the uniform kick added to vx and vy
	MaxSpeed float64 // speed ceiling applied after the kick; <= 0 disables
}

// Step advances one particle by dt inside a lobe of the given radius:
// random kick, speed clamp, integration, then elastic reflection off the
// wall. rng may be nil when Jitter is zero.
func Step(p *dynamo.Particle, radius, dt float64, rng dynamo.Source, sp StepParams) {
	if sp.Jitter != 0 && rng != nil {
		p.Vel.X += (rng.Float64() - 0.5) * sp.Jitter
		p.Vel.Y += (rng.Float64() - 0.5) * sp.Jitter
	}
	clampSpeed(p, sp.MaxSpeed)

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	Reflect(p, radius)
}

// Reflect bounces p off the lobe wall. The wall sits Radius inside the lobe
// so the whole dot stays contained. Only the outward normal component of
// the velocity flips, which leaves the speed unchanged.
func Reflect(p *dynamo.Particle, radius float64) bool {
	wall := radius - p.Radius
	if wall < 0 {
		wall = 0
	}
	dist := p.Pos.Norm()
	if dist <= wall {
		return false
	}
	if dist == 0 {
		p.Pos = dynamo.Vec2{}
		return false
	}

	n := p.Pos.Scale(1 / dist)
	if vn := p.Vel.Dot(n); vn > 0 {
		p.Vel = p.Vel.Sub(n.Scale(2 * vn))
	}
	p.Pos = n.Scale(wall)
	return true
}

func clampSpeed(p *dynamo.Particle, maxSpeed float64) {
	if !p.Vel.IsValid() || !p.Pos.IsValid() {
		// diverged: park the particle at rest rather than poison the lobe
		p.Vel = dynamo.Vec2{}
		if !p.Pos.IsValid() {
			p.Pos = dynamo.Vec2{}
		}
		return
	}
	if maxSpeed <= 0 {
		return
	}
	if s := p.Vel.Norm(); s > maxSpeed {
		p.Vel = p.Vel.Scale(maxSpeed / s)
	}
}

// TotalEnergy sums kinetic energy over lobes.
func TotalEnergy(lobes []dynamo.Lobe) float64 {
	sum := 0.0
	for i := range lobes {
		sum += lobes[i].Energy()
	}
	return sum
}

// Contained reports whether p lies within radius, allowing eps for rounding.
func Contained(p dynamo.Particle, radius, eps float64) bool {
	return p.Pos.Norm() <= radius+eps
}
