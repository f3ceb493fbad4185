package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/metrics"
	"github.com/san-kum/maxwell/internal/sim"
	"github.com/san-kum/maxwell/internal/storage"
)

// ContainmentTolerance absorbs rounding in world coordinates when checking
// that dots stay inside their lobes.
const ContainmentTolerance = 1e-9

// Scenario is a scripted sequence of headless runs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run of a scenario. Params are applied over the variant with
// config.Set.
type Step struct {
	Variant string             `yaml:"variant"`
	Frames  int                `yaml:"frames"`
	Every   int                `yaml:"every"`
	Seed    int64              `yaml:"seed"`
	Params  map[string]float64 `yaml:"params"`
	SaveAs  string             `yaml:"save_as"`
}

// Outcome is a finished headless run.
type Outcome struct {
	Meta      storage.RunMetadata
	Summaries []metrics.Summary
	Final     metrics.Summary
	Elapsed   time.Duration
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &scenario, nil
}

// Config resolves the step's variant and params into a validated config.
func (s Step) Config() (*config.Config, error) {
	name := s.Variant
	if name == "" {
		name = config.VariantFull
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownVariant, name)
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	for k, v := range s.Params {
		if err := cfg.Set(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// Run steps a silent scene for frames frames, recording a summary every
// every frames. On cancellation the partial outcome is returned with the
// context error.
func Run(ctx context.Context, cfg *config.Config, frames, every int) (*Outcome, error) {
	scene, err := sim.New(cfg, nil, nil)
	if err != nil {
		return nil, err
	}
	defer scene.Close()

	recorder := metrics.NewRecorder(every)
	drift := metrics.NewEnergyDrift()
	contained := metrics.NewContainment(ContainmentTolerance)

	start := time.Now()
	result, err := sim.Run(ctx, scene, sim.RunConfig{Frames: frames, Dt: cfg.Physics.Dt},
		recorder, drift, contained)
	if result == nil {
		return nil, err
	}

	final := metrics.Summarize(scene.Frames(), scene.Time(), scene.Lobes(), cfg.Physics.Threshold)
	out := &Outcome{
		Summaries: recorder.Final(),
		Final:     final,
		Elapsed:   time.Since(start),
		Meta: storage.RunMetadata{
			Variant:   cfg.Variant,
			Timestamp: time.Now(),
			Seed:      scene.Seed(),
			Depth:     cfg.Depth,
			Lobes:     len(scene.Lobes()),
			Particles: final.Particles,
			Frames:    result.Frames,
			Dt:        cfg.Physics.Dt,
			Dropped:   result.Dropped,
			Metrics: map[string]float64{
				drift.Name():      drift.Value(),
				contained.Name():  contained.Value(),
				"final_energy":    final.TotalEnergy,
				"hot_fraction":    final.HotFraction,
				"sorted_fraction": final.SortedFraction,
			},
		},
	}
	return out, err
}

// RunScenario executes every step in order. Steps with SaveAs set are
// written to st under that ID when st is not nil.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		slog.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "variant", step.Variant)

		cfg, err := step.Config()
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}

		out, err := Run(ctx, cfg, step.Frames, step.Every)
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}

		if st != nil && step.SaveAs != "" {
			out.Meta.ID = step.SaveAs
			if _, err := st.Save(out.Meta, out.Summaries); err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		outcomes = append(outcomes, *out)
	}

	return outcomes, nil
}
