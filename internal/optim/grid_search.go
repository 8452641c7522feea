// Package optim sweeps curtain parameters over a cartesian grid, looking
// for the combination that minimizes a run metric.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/curtain/internal/sim"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every combination. buildRunner maps a parameter assignment to
// a fresh runner; combinations whose runner fails to build are skipped.
// Returns the best assignment and its metric value.
func (g *GridSearch) Search(
	ctx context.Context,
	buildRunner func(params map[string]float64) (*sim.Runner, error),
	metricName string,
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), buildRunner, metricName, &best, &bestParams)

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildRunner func(map[string]float64) (*sim.Runner, error),
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if depth == len(g.paramNames) {
		runner, err := buildRunner(current)
		if err != nil {
			return
		}

		result, err := runner.Run(ctx, nil)
		if err != nil {
			return
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64)
		for k, v := range current {
			next[k] = v
		}
		next[name] = val

		g.searchRecursive(ctx, depth+1, next, buildRunner, metricName, best, bestParams)
	}
}
