package metrics

import "github.com/san-kum/curtain/internal/cloth"

// Kinetic averages the squared per-step displacement over all points, a
// velocity-squared proxy for how lively the cloth is. Settled cloth trends
// toward zero.
type Kinetic struct {
	name    string
	total   float64
	samples int
}

func NewKinetic() *Kinetic {
	return &Kinetic{name: "kinetic"}
}

func (k *Kinetic) Name() string { return k.name }

func (k *Kinetic) Observe(g *cloth.Grid, _ float64) {
	var sum float64
	for i := range g.Points {
		vx, vy := g.Points[i].Velocity()
		sum += vx*vx + vy*vy
	}
	k.total += sum / float64(len(g.Points))
	k.samples++
}

func (k *Kinetic) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *Kinetic) Reset() {
	k.total = 0
	k.samples = 0
}

// Torn reports the fraction of the original links destroyed by the end of
// the run.
type Torn struct {
	name string
	frac float64
}

func NewTorn() *Torn {
	return &Torn{name: "torn_fraction"}
}

func (t *Torn) Name() string { return t.name }

func (t *Torn) Observe(g *cloth.Grid, _ float64) {
	initial := g.InitialLinkCount()
	if initial == 0 {
		return
	}
	t.frac = float64(initial-g.LinkCount()) / float64(initial)
}

func (t *Torn) Value() float64 { return t.frac }
func (t *Torn) Reset()         { t.frac = 0 }
