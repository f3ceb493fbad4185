package dynamo

import "math"

// Vec2 is a 2D vector in device-independent scene units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2         { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2         { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2    { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64      { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Norm() float64           { return math.Hypot(v.X, v.Y) }
func (v Vec2) IsValid() bool           { return isFinite(v.X) && isFinite(v.Y) }
func Polar(angle, length float64) Vec2 { return Vec2{math.Cos(angle) * length, math.Sin(angle) * length} }
func isFinite(f float64) bool          { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Particle is a point mass confined to a lobe. Pos is relative to the
// lobe center; Radius is the drawn dot size and keeps the dot inside the wall.
type Particle struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
}

// KineticEnergy returns 0.5*(vx²+vy²) for unit mass.
func (p Particle) KineticEnergy() float64 {
	return 0.5 * p.Vel.Dot(p.Vel)
}

func (p Particle) Speed() float64 { return p.Vel.Norm() }

// Lobe is a circular confinement region. Its center is not stored; it is
// resolved from the spinner tree every frame.
type Lobe struct {
	Radius        float64
	BaseFrequency float64
	Pan           float64
	Arm           int // 0..2, selects color and base frequency
	Level         int
	Particles     []Particle
}

// Energy returns the summed kinetic energy of the lobe's particles.
func (l *Lobe) Energy() float64 {
	sum := 0.0
	for i := range l.Particles {
		sum += l.Particles[i].KineticEnergy()
	}
	return sum
}

// Source is the random stream consumed by the physics step. *rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as #RRGGBB.
func (c Color) Hex() string {
	const digits = "0123456789ABCDEF"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0F]
	}
	return string(b)
}
