package config

import "sort"

const (
	VariantFull   = "full"
	VariantVisual = "visual"
	VariantAudio  = "audio"
)

const (
	BackendPortAudio = "portaudio"
	BackendBeep      = "beep"
	BackendNone      = "none"
)

// Presets holds the three demo variants. GetPreset hands out copies.
var Presets = map[string]*Config{
	VariantFull: {
		Variant: VariantFull, ParticlesPerLobe: 6, Depth: 3, Audio: true,
		Physics: PhysicsConfig{Jitter: 0.01},
		Sound:   SoundConfig{Pans: []float64{0, 0.5, 1}},
	},
	VariantVisual: {
		Variant: VariantVisual, ParticlesPerLobe: 10, Depth: 3, Audio: false, Seed: 42,
		Physics: PhysicsConfig{Jitter: 0.01},
		Sound:   SoundConfig{Pans: []float64{0, 0.5, 1}},
	},
	VariantAudio: {
		Variant: VariantAudio, ParticlesPerLobe: 6, Depth: 0, Audio: true,
		Physics: PhysicsConfig{Jitter: 0.02},
		Sound:   SoundConfig{Pans: []float64{0.1, 0.5, 0.9}},
	},
}

// GetPreset returns a fresh copy of the named variant with shared defaults
// filled in, or nil when the name is unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Physics.Threshold = DefaultThreshold
	cfg.Physics.MaxSpeed = DefaultMaxSpeed
	cfg.Physics.InitialSpeed = DefaultInitialSpeed
	cfg.Physics.Dt = DefaultDt
	cfg.Geometry = GeometryConfig{
		LobeRadius: DefaultLobeRadius,
		ArmLength:  DefaultArmLength,
		ChildScale: DefaultChildScale,
		SpinRate:   DefaultSpinRate,
	}
	cfg.Sound = SoundConfig{
		Backend:         BackendPortAudio,
		SampleRate:      DefaultSampleRate,
		BaseFrequencies: append([]float64(nil), DefaultBaseFrequencies...),
		Pans:            append([]float64(nil), p.Sound.Pans...),
		FrequencyScale:  DefaultFrequencyScale,
		VolumeScale:     DefaultVolumeScale,
		MaxVolume:       DefaultMaxVolume,
	}
	cfg.Display = DisplayConfig{Width: 1200, Height: 800, FPS: 60}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
