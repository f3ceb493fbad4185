package physics_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
)

var noJitter = physics.StepParams{MaxSpeed: 100}

var _ = Describe("Step", func() {
	It("leaves a particle at rest untouched without jitter", func() {
		p := dynamo.Particle{}
		for i := 0; i < 1000; i++ {
			physics.Step(&p, 100, 1, nil, noJitter)
		}
		Expect(p.Pos).To(Equal(dynamo.Vec2{}))
		Expect(p.Vel).To(Equal(dynamo.Vec2{}))
	})

	It("reflects off the wall and clamps to the boundary", func() {
		p := dynamo.Particle{Pos: dynamo.Vec2{X: 99}, Vel: dynamo.Vec2{X: 10}}
		physics.Step(&p, 100, 1, nil, noJitter)

		Expect(p.Vel.X).To(BeNumerically("~", -10, 1e-12))
		Expect(p.Vel.Y).To(BeNumerically("~", 0, 1e-12))
		Expect(p.Pos.Norm()).To(BeNumerically("<=", 100))
	})

	It("conserves kinetic energy through a reflection", func() {
		p := dynamo.Particle{Pos: dynamo.Vec2{X: 60, Y: 70}, Vel: dynamo.Vec2{X: 3, Y: 4.5}}
		before := p.KineticEnergy()
		bounced := false
		for i := 0; i < 50; i++ {
			physics.Step(&p, 100, 1, nil, noJitter)
			if p.Pos.Norm() >= 100-1e-9 {
				bounced = true
			}
		}
		Expect(bounced).To(BeTrue())
		Expect(p.KineticEnergy()).To(BeNumerically("~", before, 1e-9))
	})

	It("keeps the dot inside the wall", func() {
		p := dynamo.Particle{Pos: dynamo.Vec2{Y: 90}, Vel: dynamo.Vec2{Y: 20}, Radius: 3}
		physics.Step(&p, 100, 1, nil, noJitter)
		Expect(p.Pos.Norm()).To(BeNumerically("~", 97, 1e-9))
		Expect(p.Vel.Y).To(BeNumerically("<", 0))
	})

	It("clamps runaway speed after the kick", func() {
		p := dynamo.Particle{Vel: dynamo.Vec2{X: 30, Y: 40}}
		physics.Step(&p, 1000, 0, nil, physics.StepParams{MaxSpeed: 2})
		Expect(p.Speed()).To(BeNumerically("~", 2, 1e-12))
	})

	It("parks a particle whose velocity went non-finite", func() {
		p := dynamo.Particle{Pos: dynamo.Vec2{X: 5}, Vel: dynamo.Vec2{X: math.NaN()}}
		physics.Step(&p, 100, 1, nil, physics.StepParams{MaxSpeed: 2})
		Expect(p.Vel).To(Equal(dynamo.Vec2{}))
		Expect(p.Pos).To(Equal(dynamo.Vec2{X: 5}))
	})

	It("stays contained under jitter for many frames", func() {
		rng := rand.New(rand.NewSource(7))
		lobe := dynamo.Lobe{Radius: 40}
		physics.Seed(&lobe, 10, rng, 0.3)
		sp := physics.StepParams{Jitter: 0.5, MaxSpeed: 2}
		for frame := 0; frame < 2000; frame++ {
			for i := range lobe.Particles {
				physics.Step(&lobe.Particles[i], lobe.Radius, 16, rng, sp)
				Expect(physics.Contained(lobe.Particles[i], lobe.Radius, 1e-9)).To(BeTrue())
			}
		}
	})

	It("replays identically from the same seed", func() {
		run := func() []dynamo.Particle {
			rng := rand.New(rand.NewSource(42))
			lobe := dynamo.Lobe{Radius: 110}
			physics.Seed(&lobe, 6, rng, 0.3)
			sp := physics.StepParams{Jitter: 0.01, MaxSpeed: 2}
			for frame := 0; frame < 500; frame++ {
				for i := range lobe.Particles {
					physics.Step(&lobe.Particles[i], lobe.Radius, 16, rng, sp)
				}
				physics.Sort(&lobe, physics.DefaultThreshold)
			}
			return lobe.Particles
		}
		Expect(run()).To(Equal(run()))
	})
})

var _ = Describe("Seed", func() {
	It("places every particle inside the lobe below the speed cap", func() {
		rng := rand.New(rand.NewSource(1))
		lobe := dynamo.Lobe{Radius: 110}
		physics.Seed(&lobe, 10, rng, 0.3)

		Expect(lobe.Particles).To(HaveLen(10))
		for _, p := range lobe.Particles {
			Expect(p.Pos.Norm() + p.Radius).To(BeNumerically("~", 110, 1e-9))
			Expect(p.Speed()).To(BeNumerically("<", 0.3))
			Expect(p.Radius).To(And(BeNumerically(">=", 2), BeNumerically("<", 4)))
		}
	})

	It("caps the dot size on tiny lobes", func() {
		rng := rand.New(rand.NewSource(1))
		lobe := dynamo.Lobe{Radius: 4}
		physics.Seed(&lobe, 3, rng, 0.3)
		for _, p := range lobe.Particles {
			Expect(p.Radius).To(BeNumerically("<=", 2))
		}
	})
})
