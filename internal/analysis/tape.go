package analysis

import (
	"github.com/san-kum/maxwell/internal/audio"
	"github.com/san-kum/maxwell/internal/sim"
)

// Tape records a Synth offline while a headless run advances, rendering as
// many samples per frame as the frame's time step covers.
type Tape struct {
	synth   *audio.Synth
	last    float64
	carry   float64
	Samples []float64
}

func NewTape(synth *audio.Synth) *Tape {
	return &Tape{synth: synth}
}

func (t *Tape) OnFrame(f *sim.Frame) {
	elapsed := f.Time - t.last
	t.last = f.Time
	if elapsed <= 0 {
		return
	}

	want := elapsed/1000*float64(t.synth.SampleRate()) + t.carry
	n := int(want)
	t.carry = want - float64(n)
	if n > 0 {
		t.Samples = append(t.Samples, t.synth.Mono(n)...)
	}
}

// Tail returns the last n samples, or all of them when fewer exist.
func (t *Tape) Tail(n int) []float64 {
	if n >= len(t.Samples) {
		return t.Samples
	}
	return t.Samples[len(t.Samples)-n:]
}
