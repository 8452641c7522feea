package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/curtain/internal/cloth"
)

// Metric observes the grid once per frame and reduces to a single value at
// the end of a run.
type Metric interface {
	Name() string
	Observe(g *cloth.Grid, t float64)
	Value() float64
	Reset()
}

// Observer receives every frame as it is produced.
type Observer interface {
	OnStep(g *cloth.Grid, t float64)
}

// Frame is a flattened snapshot of all point positions: x0, y0, x1, y1, ...
type Frame []float64

// Snapshot flattens the grid's current positions.
func Snapshot(g *cloth.Grid) Frame {
	f := make(Frame, 0, len(g.Points)*2)
	for i := range g.Points {
		f = append(f, g.Points[i].X, g.Points[i].Y)
	}
	return f
}

// IsValid reports whether the frame is free of NaN and Inf.
func (f Frame) IsValid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Result collects the recorded frames and metric values of one run.
type Result struct {
	Frames    []Frame
	Times     []float64
	Metrics   map[string]float64
	Steps     int
	TornLinks int
	Errors    []error
}

// StepError marks an invalid state reached at a specific step.
type StepError struct {
	Step int
	Time float64
}

func (e StepError) Error() string {
	return fmt.Sprintf("sim: invalid state at step %d (t=%.4f)", e.Step, e.Time)
}
