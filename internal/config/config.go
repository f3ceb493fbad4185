package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultThreshold      = physics.DefaultThreshold
	DefaultFrequencyScale = 300.0
	DefaultVolumeScale    = 8.0
	DefaultMaxVolume      = 0.8
	DefaultLobeRadius     = 110.0
	DefaultArmLength      = 170.0
	DefaultChildScale     = 0.4
	DefaultSpinRate       = 0.001 // rad per ms
	DefaultDt             = 16.0  // ms per frame at 60 FPS
	DefaultMaxSpeed       = 2.0
	DefaultInitialSpeed   = 0.3
	DefaultSampleRate     = 44100
)

// DefaultBaseFrequencies are the lobe tones in Hz, by arm index.
var DefaultBaseFrequencies = []float64{220, 330, 440}

type Config struct {
	Variant          string         `yaml:"variant"`
	ParticlesPerLobe int            `yaml:"particles_per_lobe"`
	Depth            int            `yaml:"depth"`
	Audio            bool           `yaml:"audio"`
	Seed             int64          `yaml:"seed"`
	Physics          PhysicsConfig  `yaml:"physics"`
	Geometry         GeometryConfig `yaml:"geometry"`
	Sound            SoundConfig    `yaml:"sound"`
	Display          DisplayConfig  `yaml:"display"`
}

type PhysicsConfig struct {
	Threshold    float64 `yaml:"threshold"`
	Jitter       float64 `yaml:"jitter"`
	MaxSpeed     float64 `yaml:"max_speed"`
	InitialSpeed float64 `yaml:"initial_speed"`
	Dt           float64 `yaml:"dt"`
}

type GeometryConfig struct {
	LobeRadius float64 `yaml:"lobe_radius"`
	ArmLength  float64 `yaml:"arm_length"`
	ChildScale float64 `yaml:"child_scale"`
	SpinRate   float64 `yaml:"spin_rate"`
}

type SoundConfig struct {
	Backend         string    `yaml:"backend"`
	SampleRate      int       `yaml:"sample_rate"`
	BaseFrequencies []float64 `yaml:"base_frequencies"`
	Pans            []float64 `yaml:"pans"`
	FrequencyScale  float64   `yaml:"frequency_scale"`
	VolumeScale     float64   `yaml:"volume_scale"`
	MaxVolume       float64   `yaml:"max_volume"`
}

type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

// DefaultConfig returns the full variant.
func DefaultConfig() *Config {
	return GetPreset(VariantFull)
}

// Load reads a YAML file layered over the preset named by its variant key
// (full when absent).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Variant string `yaml:"variant"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if head.Variant == "" {
		head.Variant = VariantFull
	}
	cfg := GetPreset(head.Variant)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownVariant, head.Variant, ListPresets())
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the scene cannot be built from.
func (c *Config) Validate() error {
	switch {
	case c.ParticlesPerLobe <= 0:
		return dynamo.Invalid("particles_per_lobe", c.ParticlesPerLobe, "must be positive")
	case c.Depth < 0 || c.Depth > physics.MaxDepth:
		return dynamo.Invalid("depth", c.Depth, fmt.Sprintf("must be in [0, %d]", physics.MaxDepth))
	case c.Geometry.LobeRadius <= 0:
		return dynamo.Invalid("geometry.lobe_radius", c.Geometry.LobeRadius, "must be positive")
	case c.Geometry.ArmLength < 0:
		return dynamo.Invalid("geometry.arm_length", c.Geometry.ArmLength, "must not be negative")
	case c.Depth > 1 && (c.Geometry.ChildScale <= 0 || c.Geometry.ChildScale >= 1):
		return dynamo.Invalid("geometry.child_scale", c.Geometry.ChildScale, "must be in (0, 1)")
	case c.Physics.Threshold < 0:
		return dynamo.Invalid("physics.threshold", c.Physics.Threshold, "must not be negative")
	case c.Physics.Jitter < 0:
		return dynamo.Invalid("physics.jitter", c.Physics.Jitter, "must not be negative")
	case c.Physics.MaxSpeed <= 0:
		return dynamo.Invalid("physics.max_speed", c.Physics.MaxSpeed, "must be positive")
	case c.Physics.InitialSpeed < 0 || c.Physics.InitialSpeed > c.Physics.MaxSpeed:
		return dynamo.Invalid("physics.initial_speed", c.Physics.InitialSpeed, "must be in [0, max_speed]")
	case c.Physics.Dt <= 0:
		return dynamo.Invalid("physics.dt", c.Physics.Dt, "must be positive")
	}
	return c.Sound.validate()
}

func (s *SoundConfig) validate() error {
	if len(s.BaseFrequencies) != 3 {
		return dynamo.Invalid("sound.base_frequencies", s.BaseFrequencies, "needs one entry per arm")
	}
	for _, f := range s.BaseFrequencies {
		if f <= 0 {
			return dynamo.Invalid("sound.base_frequencies", s.BaseFrequencies, "must be positive")
		}
	}
	if len(s.Pans) != 3 {
		return dynamo.Invalid("sound.pans", s.Pans, "needs one entry per arm")
	}
	for _, p := range s.Pans {
		if p < 0 || p > 1 {
			return dynamo.Invalid("sound.pans", s.Pans, "must be in [0, 1]")
		}
	}
	switch {
	case s.FrequencyScale < 0:
		return dynamo.Invalid("sound.frequency_scale", s.FrequencyScale, "must not be negative")
	case s.VolumeScale < 0:
		return dynamo.Invalid("sound.volume_scale", s.VolumeScale, "must not be negative")
	case s.MaxVolume <= 0 || s.MaxVolume > 1:
		return dynamo.Invalid("sound.max_volume", s.MaxVolume, "must be in (0, 1]")
	case s.SampleRate <= 0:
		return dynamo.Invalid("sound.sample_rate", s.SampleRate, "must be positive")
	}
	switch s.Backend {
	case BackendPortAudio, BackendBeep, BackendNone:
	default:
		return dynamo.Invalid("sound.backend", s.Backend, "must be portaudio, beep or none")
	}
	return nil
}

// ResolveSeed returns the configured seed, or a time-based one when unset.
func (c *Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// Layout returns the spinner geometry for physics.BuildTree.
func (c *Config) Layout() physics.Layout {
	return physics.Layout{
		Depth:      c.Depth,
		ArmLength:  c.Geometry.ArmLength,
		LobeRadius: c.Geometry.LobeRadius,
		ChildScale: c.Geometry.ChildScale,
		SpinRate:   c.Geometry.SpinRate,
	}
}

func (c *Config) StepParams() physics.StepParams {
	return physics.StepParams{Jitter: c.Physics.Jitter, MaxSpeed: c.Physics.MaxSpeed}
}

// Tunables lists the numeric settings Set accepts, for sweeps and scenario
// files.
var Tunables = []string{
	"particles", "depth", "seed", "jitter", "threshold", "spin_rate",
	"max_speed", "initial_speed", "dt", "lobe_radius", "arm_length",
}

// Set assigns a numeric setting by name. Integer settings truncate v.
func (c *Config) Set(name string, v float64) error {
	switch name {
	case "particles":
		c.ParticlesPerLobe = int(v)
	case "depth":
		c.Depth = int(v)
	case "seed":
		c.Seed = int64(v)
	case "jitter":
		c.Physics.Jitter = v
	case "threshold":
		c.Physics.Threshold = v
	case "spin_rate":
		c.Geometry.SpinRate = v
	case "max_speed":
		c.Physics.MaxSpeed = v
	case "initial_speed":
		c.Physics.InitialSpeed = v
	case "dt":
		c.Physics.Dt = v
	case "lobe_radius":
		c.Geometry.LobeRadius = v
	case "arm_length":
		c.Geometry.ArmLength = v
	default:
		return dynamo.Invalid(name, v, fmt.Sprintf("unknown setting (known: %v)", Tunables))
	}
	return nil
}
