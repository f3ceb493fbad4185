package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// Run steps scene cfg.Frames times at a fixed dt, as fast as possible, and
// hands every frame to the observers. On cancellation the partial result is
// returned with ctx.Err().
func Run(ctx context.Context, scene *Scene, cfg RunConfig, observers ...Observer) (*Result, error) {
	if err := validateRun(cfg); err != nil {
		return nil, err
	}

	result := &Result{}
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			result.fill(scene)
			return result, ctx.Err()
		default:
		}

		f := scene.Step(cfg.Dt)
		for _, obs := range observers {
			obs.OnFrame(f)
		}
		result.Frames++
	}

	result.fill(scene)
	return result, nil
}

// RunWithCallback steps scene in real time, one frame per tick at fps,
// until ctx is done or callback returns false. Time advances by the wall
// clock between ticks, capped at four nominal frames to absorb stalls.
func RunWithCallback(ctx context.Context, scene *Scene, fps int, callback func(*Frame) bool) error {
	if fps <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", dynamo.ErrInvalidRun, fps)
	}

	period := time.Second / time.Duration(fps)
	nominal := float64(period) / float64(time.Millisecond)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now
			dt = math.Min(dt, 4*nominal)

			if !callback(scene.Step(dt)) {
				return nil
			}
		}
	}
}

func validateRun(cfg RunConfig) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrInvalidRun, cfg.Frames)
	}
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidRun, cfg.Dt)
	}
	return nil
}

func (r *Result) fill(scene *Scene) {
	r.Time = scene.Time()
	r.Info = scene.Frame().Info
	r.Dropped = scene.Dropped()
}
