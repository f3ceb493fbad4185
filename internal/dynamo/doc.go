// Package dynamo provides the core value types shared by the simulation:
//
//   - [Vec2]: 2D vector in scene units
//   - [Particle]: point mass local to its lobe, with [Particle.KineticEnergy]
//   - [Lobe]: circular confinement region owning a fixed particle slice
//   - [Source]: injectable random stream for reproducible runs
//   - [Color]: device-independent RGB color
//
// # Ownership
//
// A Lobe owns its particles for the whole run. Particles never migrate
// between lobes; the demon only mirrors a particle inside its own lobe.
// Nothing here is safe for concurrent mutation; the frame loop is the
// only writer.
package dynamo
