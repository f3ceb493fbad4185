// Package physics implements the particle-in-lobe model:
//
//   - [Tree]: arena of spinner nodes resolved to absolute transforms
//   - [BuildTree]: the three-armed nested spinner layout
//   - [Step]: perturb, integrate and reflect one particle
//   - [Sort]: the Maxwell demon, mirroring particles by kinetic energy
//   - [Seed]: initial particle placement from an injected random source
//
// Every function here is a pure function of its arguments and the random
// source it is given, so a fixed seed replays a run exactly.
//
// # Energy
//
// Wall reflection preserves speed. Only the thermal jitter in [Step] adds or
// removes energy, and the speed clamp bounds what it can inject:
//
//	physics.Step(&p, lobe.Radius, dt, rng, physics.StepParams{Jitter: 0.01, MaxSpeed: 2})
//	physics.Sort(&lobe, physics.DefaultThreshold)
package physics
