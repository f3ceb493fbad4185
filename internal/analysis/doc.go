// Package analysis checks what the demon sounds like.
//
// A [Tape] records the synthesizer offline during a headless run, and
// [NewSpectrum] turns the recording into a magnitude spectrum whose
// [Spectrum.Peaks] should sit at each lobe's base frequency plus the
// particles' energy offsets:
//
//	tape := analysis.NewTape(synth)
//	sim.Run(ctx, scene, cfg, tape)
//	peaks := analysis.NewSpectrum(tape.Tail(1<<15), rate).Peaks(3)
package analysis
