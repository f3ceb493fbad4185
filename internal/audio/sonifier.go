package audio

import (
	"sync"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// Sonifier owns the tone slots of a run. Slot numbers are stable particle
// indices; the first update of a slot starts its tone, later ones retune it.
type Sonifier struct {
	mapper  Mapper
	sink    Sink
	started []bool
	active  int
	once    sync.Once
}

func NewSonifier(m Mapper, sink Sink) *Sonifier {
	if sink == nil {
		sink = Nop{}
	}
	return &Sonifier{mapper: m, sink: sink}
}

// Start opens the sink. On failure the sonifier falls back to silence and
// returns the error so the caller can report it.
func (s *Sonifier) Start() error {
	if err := s.sink.Start(); err != nil {
		s.sink = Nop{}
		return err
	}
	return nil
}

// Update maps p to a tone and sends it to slot.
func (s *Sonifier) Update(slot int, p dynamo.Particle, l *dynamo.Lobe) Tone {
	t := s.mapper.Map(p, l)
	for len(s.started) <= slot {
		s.started = append(s.started, false)
	}
	if !s.started[slot] {
		s.started[slot] = true
		s.active++
	}
	s.sink.Update(slot, t)
	return t
}

// Active returns how many slots have been started.
func (s *Sonifier) Active() int { return s.active }

func (s *Sonifier) Mapper() Mapper { return s.mapper }

// Close stops every tone. Safe to call repeatedly.
func (s *Sonifier) Close() {
	s.once.Do(func() {
		s.sink.Stop()
		s.started = nil
		s.active = 0
	})
}
