// Package metrics provides per-frame observations over a curtain grid.
// Each metric implements the sim.Metric interface: observed every frame,
// reduced to a single value at the end of a run.
package metrics

import (
	"math"

	"github.com/san-kum/curtain/internal/cloth"
)

// MeanStretch averages the relative stretch |d - resting| / resting over
// every surviving link and every observed frame.
type MeanStretch struct {
	name    string
	total   float64
	samples int
}

func NewMeanStretch() *MeanStretch {
	return &MeanStretch{name: "mean_stretch"}
}

func (m *MeanStretch) Name() string { return m.name }

func (m *MeanStretch) Observe(g *cloth.Grid, _ float64) {
	s, n := FrameStretch(g)
	if n == 0 {
		return
	}
	m.total += s / float64(n)
	m.samples++
}

func (m *MeanStretch) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanStretch) Reset() {
	m.total = 0
	m.samples = 0
}

// MaxStretch tracks the worst single-link relative stretch seen in the run.
type MaxStretch struct {
	name string
	max  float64
}

func NewMaxStretch() *MaxStretch {
	return &MaxStretch{name: "max_stretch"}
}

func (m *MaxStretch) Name() string { return m.name }

func (m *MaxStretch) Observe(g *cloth.Grid, _ float64) {
	for i := range g.Points {
		p := &g.Points[i]
		for _, c := range p.Links {
			o := &g.Points[c.Other]
			dx, dy := o.X-p.X, o.Y-p.Y
			rel := math.Abs(math.Sqrt(dx*dx+dy*dy)-c.Resting) / c.Resting
			m.max = math.Max(m.max, rel)
		}
	}
}

func (m *MaxStretch) Value() float64 { return m.max }
func (m *MaxStretch) Reset()         { m.max = 0 }

// FrameStretch sums relative stretch over all surviving links of one frame
// and returns the link count alongside.
func FrameStretch(g *cloth.Grid) (float64, int) {
	var sum float64
	var n int
	for i := range g.Points {
		p := &g.Points[i]
		for _, c := range p.Links {
			o := &g.Points[c.Other]
			dx, dy := o.X-p.X, o.Y-p.Y
			sum += math.Abs(math.Sqrt(dx*dx+dy*dy)-c.Resting) / c.Resting
			n++
		}
	}
	return sum, n
}
