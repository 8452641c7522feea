// Package sim runs the curtain headless: a fixed-timestep loop over the
// grid with scripted pointer input, frame recording, and per-frame metrics.
// The loop is single threaded; the relaxation pass depends on in-place
// Gauss-Seidel ordering, so frames are never computed concurrently.
package sim

import (
	"context"

	"github.com/san-kum/curtain/internal/cloth"
	"github.com/san-kum/curtain/internal/config"
)

type Runner struct {
	grid      *cloth.Grid
	cfg       *config.Config
	metrics   []Metric
	observers []Observer
}

// New validates the config and builds the grid.
func New(cfg *config.Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := cloth.NewGrid(cfg.Params())
	if err != nil {
		return nil, err
	}
	return &Runner{grid: grid, cfg: cfg}, nil
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Grid exposes the underlying grid, mainly for observers set up by callers.
func (r *Runner) Grid() *cloth.Grid { return r.grid }

// Run steps the curtain for the configured duration, sampling the pointer
// from script each frame (a nil script is an idle pointer). Recording honors
// the sample stride; metrics observe every frame regardless. The run stops
// early on context cancellation or when the state goes NaN/Inf.
func (r *Runner) Run(ctx context.Context, script *Script) (*Result, error) {
	dt := r.cfg.Dt()
	steps := int(r.cfg.Duration / dt)
	stride := r.cfg.Stride
	if stride < 1 {
		stride = 1
	}

	result := &Result{
		Frames:  make([]Frame, 0, steps/stride+1),
		Times:   make([]float64, 0, steps/stride+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, Snapshot(r.grid))
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.grid.Step(dt, script.At(t))
		t += dt
		result.Steps++

		for _, m := range r.metrics {
			m.Observe(r.grid, t)
		}
		for _, o := range r.observers {
			o.OnStep(r.grid, t)
		}

		frame := Snapshot(r.grid)
		if !frame.IsValid() {
			result.Errors = append(result.Errors, StepError{Step: i, Time: t})
			break
		}
		if (i+1)%stride == 0 {
			result.Frames = append(result.Frames, frame)
			result.Times = append(result.Times, t)
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.TornLinks = r.grid.InitialLinkCount() - r.grid.LinkCount()

	return result, nil
}
