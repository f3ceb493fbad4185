package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/maxwell/internal/dynamo"
)

const BufferSize = 512

// PortAudioSink plays the synth through the default output device.
type PortAudioSink struct {
	mu     sync.Mutex
	synth  *Synth
	stream *portaudio.Stream
	active bool
}

func NewPortAudioSink(synth *Synth) *PortAudioSink {
	return &PortAudioSink{synth: synth}
}

func (p *PortAudioSink) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrAudioUnavailable, err)
	}

	// Output only; duplex streams fail on Linux when devices differ.
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(p.synth.SampleRate()), BufferSize, p.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("%w: open stream: %v", dynamo.ErrAudioUnavailable, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("%w: start stream: %v", dynamo.ErrAudioUnavailable, err)
	}

	slog.Debug("audio started", "backend", "portaudio", "rate", p.synth.SampleRate())
	p.stream = stream
	p.active = true
	return nil
}

func (p *PortAudioSink) process(out [][]float32) {
	if len(out) < 2 {
		return
	}
	p.synth.Render(out[0], out[1])
}

func (p *PortAudioSink) Update(slot int, t Tone) {
	p.synth.Set(slot, t)
}

func (p *PortAudioSink) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	p.synth.Silence()
	p.stream.Stop()
	p.stream.Close()
	portaudio.Terminate()
	p.stream = nil
	p.active = false
}
