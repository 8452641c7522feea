package cloth

// Pointer is one frame's sample of the external pointer: position in world
// coordinates plus the drag and tear button states.
type Pointer struct {
	X, Y float64
	Drag bool
	Tear bool
}

// Action classifies what a pointer does to one point in one frame. Drag and
// tear are not mutually exclusive: with both buttons held and both radii
// covering the point, the point is moved to the pointer and then stripped of
// its links in the same frame.
type Action uint8

const (
	ActionNone Action = 0
	ActionDrag Action = 1 << 0
	ActionTear Action = 1 << 1
)

// Classify evaluates the per-frame action of the pointer on point i. Fixed
// points are never classified as dragged, but they can be torn.
func (g *Grid) Classify(i int, p Pointer) Action {
	pt := &g.Points[i]
	dx := pt.X - p.X
	dy := pt.Y - p.Y
	sq := dx*dx + dy*dy

	a := ActionNone
	if p.Drag && !pt.Fixed && sq < g.params.DragRadius*g.params.DragRadius {
		a |= ActionDrag
	}
	if p.Tear && sq < g.params.TearRadius*g.params.TearRadius {
		a |= ActionTear
	}
	return a
}

// ApplyPointer applies the pointer to every point. Drag snaps the point onto
// the pointer position; tear clears the point's outgoing links. Tearing is
// permanent and one-directional: a neighbor's links pointing back are left
// alone. The drag check runs before the tear check for each point.
func (g *Grid) ApplyPointer(p Pointer) {
	if !p.Drag && !p.Tear {
		return
	}
	for i := range g.Points {
		a := g.Classify(i, p)
		if a&ActionDrag != 0 {
			g.Points[i].X = p.X
			g.Points[i].Y = p.Y
		}
		if a&ActionTear != 0 {
			g.Points[i].Links = nil
		}
	}
}
