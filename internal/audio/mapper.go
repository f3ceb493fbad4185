package audio

import "github.com/san-kum/maxwell/internal/dynamo"

// Tone is the sound of one particle slot.
type Tone struct {
	Frequency float64 // Hz
	Volume    float64 // 0..MaxVolume
	Pan       float64 // 0 = left, 1 = right
}

// Mapper turns kinetic energy into a tone: pitch rises linearly above the
// lobe's base frequency, volume rises linearly up to a ceiling, pan is the
// lobe's.
type Mapper struct {
	FrequencyScale float64 // Hz per unit of kinetic energy
	VolumeScale    float64
	MaxVolume      float64
}

func DefaultMapper() Mapper {
	return Mapper{FrequencyScale: 300, VolumeScale: 8, MaxVolume: 0.8}
}

func (m Mapper) Map(p dynamo.Particle, l *dynamo.Lobe) Tone {
	ke := p.KineticEnergy()
	return Tone{
		Frequency: l.BaseFrequency + ke*m.FrequencyScale,
		Volume:    clamp(ke*m.VolumeScale, 0, m.MaxVolume),
		Pan:       l.Pan,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
