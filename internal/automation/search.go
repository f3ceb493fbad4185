package automation

import (
	"context"
	"log/slog"
	"maps"
	"math"
)

// GridSearch tries every combination of settings and keeps the one with the
// lowest value of a run metric, or the highest when Maximize is set.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	Maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs base with each combination applied for frames frames.
// Combinations that fail to build or run are skipped.
func (g *GridSearch) Search(ctx context.Context, base Step, frames int, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	if g.Maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), base, frames, metricName, &best, &bestParams)

	return bestParams, best, ctx.Err()
}

func (g *GridSearch) better(val, best float64) bool {
	if g.Maximize {
		return val > best
	}
	return val < best
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base Step,
	frames int,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		step := base
		step.Params = maps.Clone(base.Params)
		if step.Params == nil {
			step.Params = make(map[string]float64, len(current))
		}
		maps.Copy(step.Params, current)

		cfg, err := step.Config()
		if err != nil {
			slog.Debug("grid search skip", "params", current, "err", err)
			return
		}
		out, err := Run(ctx, cfg, frames, frames)
		if err != nil {
			slog.Debug("grid search skip", "params", current, "err", err)
			return
		}

		val, ok := out.Meta.Metrics[metricName]
		if ok && g.better(val, *best) {
			*best = val
			*bestParams = maps.Clone(current)
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := maps.Clone(current)
		next[paramName] = val

		g.searchRecursive(ctx, depth+1, next, base, frames, metricName, best, bestParams)
	}
}
