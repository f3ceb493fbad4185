package audio

import (
	"sort"
	"sync"
)

// Sink receives tone updates per slot. Stop must be safe to call more than
// once and on a sink that never started.
type Sink interface {
	Start() error
	Update(slot int, t Tone)
	Stop()
}

// Nop is the silent sink.
type Nop struct{}

func (Nop) Start() error     { return nil }
func (Nop) Update(int, Tone) {}
func (Nop) Stop()            {}

// GatedSink holds tones back until Permit is called, the way browsers hold
// audio until a user gesture. Only the latest tone per slot is kept while
// waiting.
type GatedSink struct {
	mu        sync.Mutex
	inner     Sink
	requested bool
	permitted bool
	started   bool
	failed    bool
	pending   map[int]Tone
}

func NewGatedSink(inner Sink) *GatedSink {
	return &GatedSink{inner: inner, pending: make(map[int]Tone)}
}

func (g *GatedSink) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requested = true
	if g.permitted {
		return g.startLocked()
	}
	return nil
}

// Permit lifts the gate. If Start was already requested the inner sink
// starts now and receives the held tones. A failing inner sink leaves the
// gate silent for the rest of the run.
func (g *GatedSink) Permit() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.permitted {
		return nil
	}
	g.permitted = true
	if g.requested {
		return g.startLocked()
	}
	return nil
}

func (g *GatedSink) Permitted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.permitted
}

func (g *GatedSink) startLocked() error {
	if g.started || g.failed {
		return nil
	}
	if err := g.inner.Start(); err != nil {
		g.failed = true
		g.pending = make(map[int]Tone)
		return err
	}
	g.started = true

	slots := make([]int, 0, len(g.pending))
	for slot := range g.pending {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	for _, slot := range slots {
		g.inner.Update(slot, g.pending[slot])
	}
	g.pending = make(map[int]Tone)
	return nil
}

func (g *GatedSink) Update(slot int, t Tone) {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case g.failed:
	case g.started:
		g.inner.Update(slot, t)
	default:
		g.pending[slot] = t
	}
}

// Pending returns how many slots are waiting for the gate.
func (g *GatedSink) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

func (g *GatedSink) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started {
		g.inner.Stop()
		g.started = false
	}
	g.pending = make(map[int]Tone)
	g.requested = false
}

// SynthSink drives a Synth directly with no device behind it. Offline
// analysis and tests render from it.
type SynthSink struct {
	Synth *Synth
}

func (s SynthSink) Start() error            { return nil }
func (s SynthSink) Update(slot int, t Tone) { s.Synth.Set(slot, t) }
func (s SynthSink) Stop()                   { s.Synth.Silence() }
