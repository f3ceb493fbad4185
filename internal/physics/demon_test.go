package physics_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
)

var _ = Describe("Sort", func() {
	It("moves a hot particle to the positive half", func() {
		lobe := dynamo.Lobe{Radius: 100, Particles: []dynamo.Particle{
			{Pos: dynamo.Vec2{X: -20, Y: 5}, Vel: dynamo.Vec2{X: 0.4}},
		}}
		Expect(lobe.Particles[0].KineticEnergy()).To(BeNumerically("~", 0.08, 1e-12))

		Expect(physics.Sort(&lobe, physics.DefaultThreshold)).To(Equal(1))
		Expect(lobe.Particles[0].Pos).To(Equal(dynamo.Vec2{X: 20, Y: 5}))
		Expect(lobe.Particles[0].Vel).To(Equal(dynamo.Vec2{X: 0.4}))
	})

	It("moves a cold particle to the negative half", func() {
		lobe := dynamo.Lobe{Radius: 100, Particles: []dynamo.Particle{
			{Pos: dynamo.Vec2{X: 30}, Vel: dynamo.Vec2{Y: 0.1}},
		}}
		physics.Sort(&lobe, physics.DefaultThreshold)
		Expect(lobe.Particles[0].Pos.X).To(Equal(-30.0))
	})

	It("treats the threshold itself as cold", func() {
		p := dynamo.Particle{Vel: dynamo.Vec2{X: 0.5, Y: 0.5}}
		Expect(p.KineticEnergy()).To(BeNumerically("~", 0.25, 1e-12))
		Expect(physics.Hot(p, 0.25)).To(BeFalse())
	})

	It("is idempotent", func() {
		rng := rand.New(rand.NewSource(3))
		lobe := dynamo.Lobe{Radius: 110}
		physics.Seed(&lobe, 50, rng, 0.6)

		physics.Sort(&lobe, physics.DefaultThreshold)
		once := append([]dynamo.Particle(nil), lobe.Particles...)
		Expect(physics.Sort(&lobe, physics.DefaultThreshold)).To(Equal(0))
		Expect(lobe.Particles).To(Equal(once))

		for _, p := range lobe.Particles {
			Expect(physics.Sorted(p, physics.DefaultThreshold)).To(BeTrue())
		}
	})

	It("preserves the distance from the lobe center", func() {
		lobe := dynamo.Lobe{Radius: 100, Particles: []dynamo.Particle{
			{Pos: dynamo.Vec2{X: -60, Y: 80}, Vel: dynamo.Vec2{X: 1}},
		}}
		physics.Sort(&lobe, physics.DefaultThreshold)
		Expect(lobe.Particles[0].Pos.Norm()).To(BeNumerically("~", 100, 1e-12))
	})
})
