package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
)

type countingObserver struct {
	frames []int
}

func (c *countingObserver) OnFrame(f *Frame) { c.frames = append(c.frames, f.Index) }

func TestRun(t *testing.T) {
	s, err := New(seeded(config.VariantAudio, 1), nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	obs := &countingObserver{}

	result, err := Run(context.Background(), s, RunConfig{Frames: 100, Dt: 16}, obs)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Frames != 100 {
		t.Errorf("expected 100 frames, got %d", result.Frames)
	}
	if math.Abs(result.Time-1600) > 1e-9 {
		t.Errorf("expected time 1600, got %f", result.Time)
	}
	if len(obs.frames) != 100 || obs.frames[99] != 100 {
		t.Errorf("observer saw %d frames", len(obs.frames))
	}
	if result.Info.Particles != 18 {
		t.Errorf("expected 18 particles, got %d", result.Info.Particles)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	s, err := New(seeded(config.VariantAudio, 1), nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"zero frames", RunConfig{Frames: 0, Dt: 16}},
		{"negative frames", RunConfig{Frames: -1, Dt: 16}},
		{"zero dt", RunConfig{Frames: 10, Dt: 0}},
		{"nan dt", RunConfig{Frames: 10, Dt: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), s, tt.cfg)
			if !errors.Is(err, dynamo.ErrInvalidRun) {
				t.Errorf("expected ErrInvalidRun, got %v", err)
			}
		})
	}
}

func TestRunCancellation(t *testing.T) {
	s, err := New(seeded(config.VariantAudio, 1), nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, s, RunConfig{Frames: 100, Dt: 16})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.Frames != 0 {
		t.Errorf("expected empty partial result, got %+v", result)
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	s, err := New(seeded(config.VariantAudio, 1), nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	calls := 0
	err = RunWithCallback(context.Background(), s, 500, func(f *Frame) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 || s.Frames() != 3 {
		t.Errorf("expected 3 frames, got calls=%d frames=%d", calls, s.Frames())
	}
}

func TestRunWithCallbackRejectsFPS(t *testing.T) {
	s, err := New(seeded(config.VariantAudio, 1), nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := RunWithCallback(context.Background(), s, 0, func(*Frame) bool { return true }); !errors.Is(err, dynamo.ErrInvalidRun) {
		t.Errorf("expected ErrInvalidRun, got %v", err)
	}
}
