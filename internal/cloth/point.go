package cloth

import "math"

// Constraint is a directed distance link from its owning point to another
// point in the same grid. Links are index based: the grid owns every point,
// a constraint never does. Resting distance and stiffness are immutable
// after creation.
type Constraint struct {
	Other     int
	Resting   float64
	Stiffness float64
}

// PointMass is a single simulated particle. Velocity is not stored; it is
// implicit in the difference between the current and previous position.
type PointMass struct {
	X, Y         float64
	PrevX, PrevY float64
	Fixed        bool
	Links        []Constraint
}

// Integrate advances the point one Verlet step under gravity. Fixed points
// do not move.
func (p *PointMass) Integrate(dt, gravity float64) {
	if p.Fixed {
		return
	}
	vx := p.X - p.PrevX
	vy := p.Y - p.PrevY
	p.PrevX = p.X
	p.PrevY = p.Y
	p.X += vx
	p.Y += vy + gravity*dt*dt
}

// Clamp constrains the position into [0, width] × [0, height]. Fixed points
// are clamped too; this mirrors the reference behavior.
func (p *PointMass) Clamp(width, height float64) {
	p.X = math.Max(0, math.Min(width, p.X))
	p.Y = math.Max(0, math.Min(height, p.Y))
}

// Attach appends an outgoing constraint. No duplicate detection is done.
func (p *PointMass) Attach(other int, resting, stiffness float64) {
	p.Links = append(p.Links, Constraint{Other: other, Resting: resting, Stiffness: stiffness})
}

// Resolve relaxes every outgoing constraint against the shared point slice.
// Corrections are applied immediately, so earlier constraints in a pass are
// visible to later ones (Gauss-Seidel, not Jacobi). Coincident endpoints are
// skipped: a zero distance yields no correction rather than a division by
// zero.
func (p *PointMass) Resolve(points []PointMass) {
	for _, c := range p.Links {
		o := &points[c.Other]
		dx := o.X - p.X
		dy := o.Y - p.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist == 0 {
			continue
		}
		corr := (c.Resting - dist) / dist * 0.5 * c.Stiffness
		if !p.Fixed {
			p.X -= corr * dx
			p.Y -= corr * dy
		}
		if !o.Fixed {
			o.X += corr * dx
			o.Y += corr * dy
		}
	}
}

// Velocity returns the implicit per-step displacement.
func (p *PointMass) Velocity() (float64, float64) {
	return p.X - p.PrevX, p.Y - p.PrevY
}
