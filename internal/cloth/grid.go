package cloth

import "fmt"

// Params holds every tunable of the simulation. There are no package-level
// knobs: independent grids can run with independent parameters.
type Params struct {
	Cols, Rows    int     // lattice cell counts; the grid has (Cols+1)×(Rows+1) points
	StartY        float64 // vertical offset of the fixed top row
	Resting       float64 // resting distance of every link
	Stiffness     float64 // uniform link stiffness in (0, 1]
	Gravity       float64
	Width, Height float64 // world bounds for clamping
	DragRadius    float64
	TearRadius    float64
	RelaxPasses   int
}

// DefaultParams mirrors the classic curtain setup.
func DefaultParams() Params {
	return Params{
		Cols:        60,
		Rows:        40,
		StartY:      50,
		Resting:     10,
		Stiffness:   0.5,
		Gravity:     9.8,
		Width:       640,
		Height:      480,
		DragRadius:  20,
		TearRadius:  8,
		RelaxPasses: 5,
	}
}

// Validate reports the first misconfiguration, wrapped around the matching
// sentinel error.
func (p Params) Validate() error {
	if p.Cols <= 0 || p.Rows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadDimensions, p.Cols, p.Rows)
	}
	if p.Resting <= 0 {
		return fmt.Errorf("%w: %g", ErrBadResting, p.Resting)
	}
	if p.Stiffness <= 0 || p.Stiffness > 1 {
		return fmt.Errorf("%w: %g", ErrBadStiffness, p.Stiffness)
	}
	if p.Gravity < 0 {
		return fmt.Errorf("%w: %g", ErrBadGravity, p.Gravity)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrBadBounds, p.Width, p.Height)
	}
	if p.DragRadius < 0 || p.TearRadius < 0 {
		return fmt.Errorf("%w: drag=%g tear=%g", ErrBadRadius, p.DragRadius, p.TearRadius)
	}
	if p.RelaxPasses < 1 {
		return fmt.Errorf("%w: %d", ErrBadPasses, p.RelaxPasses)
	}
	return nil
}

// Grid owns all point masses of one curtain, laid out row-major. The point
// set is immutable after construction; only positions and link lists change.
type Grid struct {
	Points []PointMass

	params       Params
	initialLinks int
}

// NewGrid builds the lattice. Points sit at x = col*Resting,
// y = StartY + row*Resting; row 0 is fixed. Each point links to its left
// neighbor (col > 0) and its top neighbor (row > 0).
func NewGrid(params Params) (*Grid, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	cols, rows := params.Cols+1, params.Rows+1
	g := &Grid{
		Points: make([]PointMass, 0, cols*rows),
		params: params,
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := PointMass{
				X:     float64(col) * params.Resting,
				Y:     params.StartY + float64(row)*params.Resting,
				Fixed: row == 0,
			}
			p.PrevX, p.PrevY = p.X, p.Y

			idx := len(g.Points)
			if col > 0 {
				p.Attach(idx-1, params.Resting, params.Stiffness)
			}
			if row > 0 {
				p.Attach(idx-cols, params.Resting, params.Stiffness)
			}
			g.Points = append(g.Points, p)
		}
	}

	g.initialLinks = g.LinkCount()
	return g, nil
}

// Params returns the construction parameters.
func (g *Grid) Params() Params { return g.params }

// Integrate advances every point one Verlet step. Order independent: each
// point reads and writes only its own state.
func (g *Grid) Integrate(dt float64) {
	for i := range g.Points {
		g.Points[i].Integrate(dt, g.params.Gravity)
	}
}

// Relax runs the configured number of full relaxation passes in row-major
// order. Fewer passes under-converge and the cloth sags; more passes cost
// time and stiffen it.
func (g *Grid) Relax() {
	for pass := 0; pass < g.params.RelaxPasses; pass++ {
		for i := range g.Points {
			g.Points[i].Resolve(g.Points)
		}
	}
}

// Clamp pulls every point back into the world bounds. Idempotent.
func (g *Grid) Clamp() {
	for i := range g.Points {
		g.Points[i].Clamp(g.params.Width, g.params.Height)
	}
}

// Step runs one full frame: integrate, relax, clamp, then pointer
// interaction. The ordering is a contract; interaction last means a dragged
// point lands exactly on the pointer for the frame.
func (g *Grid) Step(dt float64, p Pointer) {
	g.Integrate(dt)
	g.Relax()
	g.Clamp()
	g.ApplyPointer(p)
}

// Segment is one surviving constraint as a drawable pair of endpoints.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Segments collects the endpoints of every surviving link, for rendering.
func (g *Grid) Segments() []Segment {
	segs := make([]Segment, 0, g.LinkCount())
	for i := range g.Points {
		p := &g.Points[i]
		for _, c := range p.Links {
			o := &g.Points[c.Other]
			segs = append(segs, Segment{X1: p.X, Y1: p.Y, X2: o.X, Y2: o.Y})
		}
	}
	return segs
}

// LinkCount returns the number of surviving constraints.
func (g *Grid) LinkCount() int {
	n := 0
	for i := range g.Points {
		n += len(g.Points[i].Links)
	}
	return n
}

// InitialLinkCount returns the number of constraints wired at construction.
func (g *Grid) InitialLinkCount() int { return g.initialLinks }
