package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/san-kum/maxwell/internal/dynamo"
)

// BeepSink plays the synth through the beep speaker.
type BeepSink struct {
	mu     sync.Mutex
	synth  *Synth
	ctrl   *beep.Ctrl
	active bool
}

func NewBeepSink(synth *Synth) *BeepSink {
	return &BeepSink{synth: synth}
}

func (b *BeepSink) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active {
		return nil
	}

	sr := beep.SampleRate(b.synth.SampleRate())
	if err := speaker.Init(sr, sr.N(time.Millisecond*50)); err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrAudioUnavailable, err)
	}

	b.ctrl = &beep.Ctrl{Streamer: beep.StreamerFunc(b.stream)}
	speaker.Play(b.ctrl)
	slog.Debug("audio started", "backend", "beep", "rate", int(sr))
	b.active = true
	return nil
}

func (b *BeepSink) stream(samples [][2]float64) (int, bool) {
	b.synth.RenderStereo(samples)
	return len(samples), true
}

func (b *BeepSink) Update(slot int, t Tone) {
	b.synth.Set(slot, t)
}

func (b *BeepSink) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return
	}
	speaker.Lock()
	b.ctrl.Paused = true
	speaker.Unlock()
	speaker.Clear()
	b.synth.Silence()
	b.active = false
}
