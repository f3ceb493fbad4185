package metrics

import (
	"math"

	"github.com/san-kum/maxwell/internal/sim"
)

// Metric is a scalar observer of a run.
type Metric interface {
	sim.Observer
	Name() string
	Value() float64
	Reset()
}

// EnergyDrift tracks the largest relative change of total kinetic energy
// from the first observed frame. Jitter and the speed clamp both feed it.
type EnergyDrift struct {
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) OnFrame(f *sim.Frame) {
	energy := f.Info.Energy
	if e.samples == 0 {
		e.initial = energy
	}
	e.current = energy
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

// Current returns the latest total energy.
func (e *EnergyDrift) Current() float64 { return e.current }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.current = 0
	e.maxDrift = 0
	e.samples = 0
}

// Containment is the fraction of frames in which every dot lies inside its
// lobe, within tolerance.
type Containment struct {
	tolerance  float64
	violations int
	samples    int
}

func NewContainment(tolerance float64) *Containment {
	return &Containment{tolerance: tolerance}
}

func (c *Containment) Name() string { return "containment" }

func (c *Containment) OnFrame(f *sim.Frame) {
	c.samples++
	for _, l := range f.Lobes {
		for _, d := range l.Dots {
			if d.Pos.Sub(l.Center).Norm() > l.Radius-d.Radius+c.tolerance {
				c.violations++
				return
			}
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
