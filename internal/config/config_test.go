package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Variant != VariantFull {
		t.Errorf("expected variant full, got %s", cfg.Variant)
	}
	if cfg.ParticlesPerLobe != 6 {
		t.Errorf("expected 6 particles per lobe, got %d", cfg.ParticlesPerLobe)
	}
	if !cfg.Audio {
		t.Error("full variant should have audio")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	tests := []struct {
		name      string
		particles int
		depth     int
		audio     bool
		seed      int64
	}{
		{VariantFull, 6, 3, true, 0},
		{VariantVisual, 10, 3, false, 42},
		{VariantAudio, 6, 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetPreset(tt.name)
			if cfg == nil {
				t.Fatal("expected preset, got nil")
			}
			if cfg.ParticlesPerLobe != tt.particles || cfg.Depth != tt.depth || cfg.Audio != tt.audio || cfg.Seed != tt.seed {
				t.Errorf("unexpected preset %+v", cfg)
			}
			if cfg.Physics.Threshold != 0.05 {
				t.Errorf("expected threshold 0.05, got %f", cfg.Physics.Threshold)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset invalid: %v", err)
			}
		})
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	a := GetPreset(VariantAudio)
	a.Sound.Pans[0] = 0.7
	a.ParticlesPerLobe = 99

	b := GetPreset(VariantAudio)
	if b.Sound.Pans[0] != 0.1 {
		t.Errorf("preset pans mutated: %v", b.Sound.Pans)
	}
	if b.ParticlesPerLobe != 6 {
		t.Errorf("preset particle count mutated: %d", b.ParticlesPerLobe)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	want := []string{"audio", "full", "visual"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero particles", func(c *Config) { c.ParticlesPerLobe = 0 }},
		{"negative depth", func(c *Config) { c.Depth = -1 }},
		{"depth too deep", func(c *Config) { c.Depth = 4 }},
		{"zero radius", func(c *Config) { c.Geometry.LobeRadius = 0 }},
		{"negative radius", func(c *Config) { c.Geometry.LobeRadius = -5 }},
		{"child scale one", func(c *Config) { c.Geometry.ChildScale = 1 }},
		{"negative threshold", func(c *Config) { c.Physics.Threshold = -0.1 }},
		{"negative jitter", func(c *Config) { c.Physics.Jitter = -1 }},
		{"zero max speed", func(c *Config) { c.Physics.MaxSpeed = 0 }},
		{"initial above max", func(c *Config) { c.Physics.InitialSpeed = 3 }},
		{"zero dt", func(c *Config) { c.Physics.Dt = 0 }},
		{"two frequencies", func(c *Config) { c.Sound.BaseFrequencies = []float64{220, 330} }},
		{"zero frequency", func(c *Config) { c.Sound.BaseFrequencies[1] = 0 }},
		{"pan out of range", func(c *Config) { c.Sound.Pans[2] = 1.5 }},
		{"zero max volume", func(c *Config) { c.Sound.MaxVolume = 0 }},
		{"loud max volume", func(c *Config) { c.Sound.MaxVolume = 2 }},
		{"unknown backend", func(c *Config) { c.Sound.Backend = "alsa" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidate_FlatLayoutIgnoresChildScale(t *testing.T) {
	cfg := GetPreset(VariantAudio)
	cfg.Geometry.ChildScale = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demon.yaml")
	data := "variant: audio\nparticles_per_lobe: 4\nseed: 7\nphysics:\n  jitter: 0.05\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Variant != VariantAudio || cfg.ParticlesPerLobe != 4 || cfg.Seed != 7 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Physics.Jitter != 0.05 {
		t.Errorf("expected jitter 0.05, got %f", cfg.Physics.Jitter)
	}
	if cfg.Physics.Threshold != DefaultThreshold {
		t.Errorf("preset threshold lost: %f", cfg.Physics.Threshold)
	}
	if cfg.Sound.Pans[0] != 0.1 {
		t.Errorf("preset pans lost: %v", cfg.Sound.Pans)
	}
}

func TestLoad_UnknownVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demon.yaml")
	if err := os.WriteFile(path, []byte("variant: browser\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, dynamo.ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visual.yaml")
	cfg := GetPreset(VariantVisual)
	cfg.Geometry.LobeRadius = 90

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Geometry.LobeRadius != 90 || loaded.Seed != 42 || loaded.ParticlesPerLobe != 10 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestResolveSeed(t *testing.T) {
	cfg := GetPreset(VariantVisual)
	if cfg.ResolveSeed() != 42 {
		t.Errorf("expected seed 42, got %d", cfg.ResolveSeed())
	}
	cfg.Seed = 0
	if cfg.ResolveSeed() == 0 {
		t.Error("expected time-based seed")
	}
}

func TestSet(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range Tunables {
		if err := cfg.Set(name, 2); err != nil {
			t.Errorf("set %s: %v", name, err)
		}
	}
	if cfg.ParticlesPerLobe != 2 || cfg.Depth != 2 || cfg.Seed != 2 {
		t.Errorf("integer settings not applied: %+v", cfg)
	}
	if cfg.Physics.Jitter != 2 || cfg.Geometry.ArmLength != 2 {
		t.Errorf("float settings not applied: %+v", cfg)
	}
}

func TestSet_Unknown(t *testing.T) {
	err := DefaultConfig().Set("gravity", 9.8)
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
