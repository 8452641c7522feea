package cloth_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/curtain/internal/cloth"
)

// smallParams is a 2x2-cell curtain (3x3 points) hanging from y=0.
func smallParams() cloth.Params {
	p := cloth.DefaultParams()
	p.Cols, p.Rows = 2, 2
	p.StartY = 0
	p.Resting = 10
	return p
}

var _ = Describe("PointMass", func() {
	Describe("Integrate", func() {
		It("does not move fixed points", func() {
			p := cloth.PointMass{X: 3, Y: 4, PrevX: 1, PrevY: 1, Fixed: true}
			p.Integrate(0.1, 9.8)
			Expect(p.X).To(Equal(3.0))
			Expect(p.Y).To(Equal(4.0))
			Expect(p.PrevX).To(Equal(1.0))
		})

		It("adds gravity as g*dt^2 on top of the inherited velocity", func() {
			p := cloth.PointMass{X: 5, Y: 5, PrevX: 4, PrevY: 5}
			p.Integrate(0.1, 9.8)
			Expect(p.X).To(Equal(6.0)) // vx = 1 carried forward
			Expect(p.Y).To(BeNumerically("~", 5+9.8*0.01, 1e-12))
			Expect(p.PrevX).To(Equal(5.0))
			Expect(p.PrevY).To(Equal(5.0))
		})
	})

	Describe("Clamp", func() {
		It("is idempotent", func() {
			p := cloth.PointMass{X: -3, Y: 500}
			p.Clamp(640, 480)
			Expect(p.X).To(Equal(0.0))
			Expect(p.Y).To(Equal(480.0))
			p.Clamp(640, 480)
			Expect(p.X).To(Equal(0.0))
			Expect(p.Y).To(Equal(480.0))
		})

		It("clamps fixed points too", func() {
			p := cloth.PointMass{X: -1, Y: -1, Fixed: true}
			p.Clamp(640, 480)
			Expect(p.X).To(Equal(0.0))
			Expect(p.Y).To(Equal(0.0))
		})
	})

	Describe("Resolve", func() {
		It("leaves coincident endpoints untouched", func() {
			pts := []cloth.PointMass{
				{X: 7, Y: 7},
				{X: 7, Y: 7},
			}
			pts[0].Attach(1, 10, 0.5)
			pts[0].Resolve(pts)
			Expect(pts[0].X).To(Equal(7.0))
			Expect(pts[0].Y).To(Equal(7.0))
			Expect(pts[1].X).To(Equal(7.0))
			Expect(pts[1].Y).To(Equal(7.0))
		})

		It("does not move a fixed endpoint", func() {
			pts := []cloth.PointMass{
				{X: 0, Y: 0, Fixed: true},
				{X: 20, Y: 0},
			}
			pts[0].Attach(1, 10, 0.5)
			pts[0].Resolve(pts)
			Expect(pts[0].X).To(Equal(0.0))
			Expect(pts[0].Y).To(Equal(0.0))
			Expect(pts[1].X).To(BeNumerically("<", 20.0))
		})

		DescribeTable("strictly shrinks the stretch error for free endpoints",
			func(stiffness float64) {
				const resting = 10.0
				pts := []cloth.PointMass{
					{X: 0, Y: 0},
					{X: 25, Y: 0},
				}
				pts[0].Attach(1, resting, stiffness)

				prevErr := math.Abs(25 - resting)
				for pass := 0; pass < 12; pass++ {
					pts[0].Resolve(pts)
					d := math.Abs(pts[1].X - pts[0].X)
					e := math.Abs(d - resting)
					Expect(e).To(BeNumerically("<=", prevErr+1e-12))
					if prevErr > 1e-9 {
						Expect(e).To(BeNumerically("<", prevErr))
					}
					prevErr = e
				}
			},
			Entry("soft", 0.1),
			Entry("medium", 0.5),
			Entry("rigid", 1.0),
		)
	})
})

var _ = Describe("Grid", func() {
	It("builds the lattice with the fixed top row and left/top links", func() {
		g, err := cloth.NewGrid(smallParams())
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Points).To(HaveLen(9))

		for i, p := range g.Points {
			Expect(p.Fixed).To(Equal(i < 3), "point %d", i)
		}

		// Corner point has no links, interior point has two.
		Expect(g.Points[0].Links).To(BeEmpty())
		Expect(g.Points[4].Links).To(HaveLen(2))
		Expect(g.Points[4].Links[0].Other).To(Equal(3))
		Expect(g.Points[4].Links[1].Other).To(Equal(1))
		Expect(g.InitialLinkCount()).To(Equal(12))
	})

	It("drops every free point by g*dt^2 on the first integration", func() {
		g, err := cloth.NewGrid(smallParams())
		Expect(err).NotTo(HaveOccurred())

		before := make([]cloth.PointMass, len(g.Points))
		copy(before, g.Points)

		g.Integrate(0.1)

		for i, p := range g.Points {
			if p.Fixed {
				Expect(p.Y).To(Equal(before[i].Y))
			} else {
				Expect(p.Y).To(BeNumerically("~", before[i].Y+0.098, 1e-12))
			}
			Expect(p.X).To(Equal(before[i].X), "no initial horizontal velocity")
		}
	})

	It("never moves fixed points through integrate and relax", func() {
		g, err := cloth.NewGrid(smallParams())
		Expect(err).NotTo(HaveOccurred())

		for step := 0; step < 20; step++ {
			g.Integrate(1.0 / 30)
			g.Relax()
			g.Clamp()
		}
		for col := 0; col < 3; col++ {
			Expect(g.Points[col].X).To(Equal(float64(col) * 10))
			Expect(g.Points[col].Y).To(Equal(0.0))
		}
	})

	Describe("pointer interaction", func() {
		It("snaps a free point in drag range onto the pointer", func() {
			g, err := cloth.NewGrid(smallParams())
			Expect(err).NotTo(HaveOccurred())

			// Point 8 sits at (20, 20); pointer well within the drag radius.
			g.ApplyPointer(cloth.Pointer{X: 100, Y: 100, Drag: false})
			Expect(g.Points[8].X).To(Equal(20.0))

			g.ApplyPointer(cloth.Pointer{X: 25, Y: 25, Drag: true})
			Expect(g.Points[8].X).To(Equal(25.0))
			Expect(g.Points[8].Y).To(Equal(25.0))
		})

		It("never drags fixed points", func() {
			g, err := cloth.NewGrid(smallParams())
			Expect(err).NotTo(HaveOccurred())

			g.ApplyPointer(cloth.Pointer{X: 1, Y: 1, Drag: true})
			Expect(g.Points[0].X).To(Equal(0.0))
			Expect(g.Points[0].Y).To(Equal(0.0))
		})

		It("tears fixed and free points alike, permanently", func() {
			g, err := cloth.NewGrid(smallParams())
			Expect(err).NotTo(HaveOccurred())

			g.ApplyPointer(cloth.Pointer{X: 10, Y: 0, Tear: true})
			Expect(g.Points[1].Links).To(BeEmpty())

			// A torn point is a no-op under Resolve but still integrates.
			before := g.Points[1]
			g.Points[1].Resolve(g.Points)
			Expect(g.Points[1]).To(Equal(before))

			g.Points[1].Fixed = false
			g.Points[1].Integrate(0.1, 9.8)
			Expect(g.Points[1].Y).To(BeNumerically(">", before.Y))
		})

		It("leaves the neighbor's back-links intact after a tear", func() {
			// Tear only point 4 (center, at 10,10) with a tiny radius.
			p := smallParams()
			p.TearRadius = 1
			g, err := cloth.NewGrid(p)
			Expect(err).NotTo(HaveOccurred())

			g.ApplyPointer(cloth.Pointer{X: 10, Y: 10, Tear: true})
			Expect(g.Points[4].Links).To(BeEmpty())
			Expect(g.Points[5].Links).To(HaveLen(2), "5 still links back to 4")
			Expect(g.Points[7].Links).To(HaveLen(2), "7 still links back to 4")
		})

		It("classifies drag and tear independently in one frame", func() {
			p := smallParams()
			p.DragRadius = 50
			p.TearRadius = 50
			g, err := cloth.NewGrid(p)
			Expect(err).NotTo(HaveOccurred())

			a := g.Classify(8, cloth.Pointer{X: 21, Y: 21, Drag: true, Tear: true})
			Expect(a & cloth.ActionDrag).NotTo(Equal(cloth.ActionNone))
			Expect(a & cloth.ActionTear).NotTo(Equal(cloth.ActionNone))

			// Applied in drag-then-tear order: moved and stripped.
			g.ApplyPointer(cloth.Pointer{X: 21, Y: 21, Drag: true, Tear: true})
			Expect(g.Points[8].X).To(Equal(21.0))
			Expect(g.Points[8].Links).To(BeEmpty())
		})
	})

	Describe("Step", func() {
		It("applies the pointer after clamping", func() {
			p := cloth.DefaultParams()
			g, err := cloth.NewGrid(p)
			Expect(err).NotTo(HaveOccurred())

			// A drag target just outside the left bound: if interaction ran
			// before clamping the point could never end up there.
			target := cloth.Pointer{X: -5, Y: 100, Drag: true}
			g.Step(1.0/30, target)

			dragged := false
			for _, pt := range g.Points {
				if pt.X == -5 && pt.Y == 100 {
					dragged = true
				}
			}
			Expect(dragged).To(BeTrue())
		})

		It("holds the curtain together over many frames", func() {
			g, err := cloth.NewGrid(cloth.DefaultParams())
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 120; i++ {
				g.Step(1.0/30, cloth.Pointer{})
			}

			// Mean stretch should stay modest under gravity alone.
			var sum float64
			var n int
			for i := range g.Points {
				for _, c := range g.Points[i].Links {
					o := g.Points[c.Other]
					dx, dy := o.X-g.Points[i].X, o.Y-g.Points[i].Y
					d := math.Sqrt(dx*dx + dy*dy)
					sum += math.Abs(d-c.Resting) / c.Resting
					n++
				}
			}
			Expect(n).To(Equal(g.InitialLinkCount()))
			Expect(sum / float64(n)).To(BeNumerically("<", 0.6))
		})
	})
})
