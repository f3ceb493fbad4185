package audio

import (
	"math"
	"sync"
)

// smoothingTime is how long a voice takes to glide most of the way to a new
// volume or pan.
const smoothingTime = 0.01

type voice struct {
	target Tone
	vol    float64
	pan    float64
	phase  float64
	active bool
}

// Synth is a bank of sine voices, one per tone slot. The frame loop sets
// targets while the audio callback renders, so every method locks.
type Synth struct {
	mu     sync.Mutex
	rate   float64
	alpha  float64
	voices []voice
}

func NewSynth(sampleRate int) *Synth {
	rate := float64(sampleRate)
	return &Synth{
		rate:  rate,
		alpha: 1 - math.Exp(-1/(rate*smoothingTime)),
	}
}

func (s *Synth) SampleRate() int { return int(s.rate) }

// Set retargets slot, starting it if it was silent. A newly started voice
// jumps to its pan and fades in from zero.
func (s *Synth) Set(slot int, t Tone) {
	if slot < 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.voices) <= slot {
		s.voices = append(s.voices, voice{})
	}
	v := &s.voices[slot]
	if !v.active {
		v.active = true
		v.vol = 0
		v.pan = t.Pan
	}
	v.target = t
}

// Silence stops every voice.
func (s *Synth) Silence() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.voices {
		s.voices[i] = voice{}
	}
}

// Active returns the number of sounding voices.
func (s *Synth) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

func (s *Synth) activeLocked() int {
	n := 0
	for i := range s.voices {
		if s.voices[i].active {
			n++
		}
	}
	return n
}

// Render fills separate left and right channel buffers, as portaudio
// delivers them.
func (s *Synth) Render(left, right []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gain := s.headroom()
	for i := range left {
		l, r := s.next()
		left[i] = float32(clip(l * gain))
		if i < len(right) {
			right[i] = float32(clip(r * gain))
		}
	}
}

// RenderStereo fills interleaved frames, as beep streamers expect.
func (s *Synth) RenderStereo(samples [][2]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gain := s.headroom()
	for i := range samples {
		l, r := s.next()
		samples[i][0] = clip(l * gain)
		samples[i][1] = clip(r * gain)
	}
}

// Mono renders n samples of the summed channels, for offline analysis.
func (s *Synth) Mono(n int) []float64 {
	buf := make([][2]float64, n)
	s.RenderStereo(buf)
	out := make([]float64, n)
	for i, f := range buf {
		out[i] = f[0] + f[1]
	}
	return out
}

// headroom scales the mix down as voices pile up.
func (s *Synth) headroom() float64 {
	n := s.activeLocked()
	if n <= 1 {
		return 1
	}
	return 1 / math.Sqrt(float64(n))
}

// next advances every voice by one sample. Linear pan law: the left channel
// gets (1-pan), the right gets pan.
func (s *Synth) next() (float64, float64) {
	var l, r float64
	for i := range s.voices {
		v := &s.voices[i]
		if !v.active {
			continue
		}
		v.vol += (v.target.Volume - v.vol) * s.alpha
		v.pan += (v.target.Pan - v.pan) * s.alpha

		sample := math.Sin(2*math.Pi*v.phase) * v.vol
		l += sample * (1 - v.pan)
		r += sample * v.pan

		v.phase += v.target.Frequency / s.rate
		v.phase -= math.Floor(v.phase)
	}
	return l, r
}

func clip(x float64) float64 {
	return clamp(x, -1, 1)
}
