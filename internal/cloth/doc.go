// Package cloth implements a deformable curtain of point masses connected
// by distance constraints.
//
// The simulation is position based: each [PointMass] carries its current and
// previous position, velocity is implicit in the history (Verlet
// integration), and stretch is removed by iterative Gauss-Seidel relaxation
// of the per-point constraint lists. A [Grid] owns all points in a row-major
// lattice and drives the per-frame pipeline:
//
//	g, _ := cloth.NewGrid(cloth.DefaultParams())
//	g.Step(dt, cloth.Pointer{X: mx, Y: my, Drag: leftDown, Tear: rightDown})
//
// Step runs integrate → relax → clamp → pointer interaction, in that order.
// All mutation is in place on state owned exclusively by the Grid; the
// package is single-threaded and the relaxation order (row-major,
// point-by-point, corrections visible within a pass) is part of the
// contract.
package cloth
