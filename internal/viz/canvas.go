package viz

import "strings"

// Braille cells pack 2x4 dots per terminal character:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot buffer. Coordinates passed to Set and Line are in
// sub-pixels: (Cols*2) x (Rows*4).
type Canvas struct {
	Cols, Rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

// PixelSize returns the sub-pixel dimensions.
func (c *Canvas) PixelSize() (int, int) {
	return c.Cols * 2, c.Rows * 4
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.cells[row*c.Cols+col] |= dotBits[y%4][x%2]
}

// Unset clears a single dot; the cell floor stays at the blank braille rune.
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	i := row*c.Cols + col
	c.cells[i] &^= dotBits[y%4][x%2]
	if c.cells[i] < 0x2800 {
		c.cells[i] = 0x2800
	}
}

// Cell returns the braille rune at a terminal cell, or the blank rune when
// the cell is out of range.
func (c *Canvas) Cell(col, row int) rune {
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return 0x2800
	}
	return c.cells[row*c.Cols+col]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0x2800
	}
}

// Line draws a sub-pixel line with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(len(c.cells) + c.Rows)
	for row := 0; row < c.Rows; row++ {
		b.WriteString(string(c.cells[row*c.Cols : (row+1)*c.Cols]))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world coordinates onto canvas sub-pixels and terminal cells
// back onto world coordinates (for mouse input).
type Viewport struct {
	WorldW, WorldH float64
	Canvas         *Canvas
}

// ToPixel maps a world position to canvas sub-pixels.
func (v Viewport) ToPixel(x, y float64) (int, int) {
	pw, ph := v.Canvas.PixelSize()
	return int(x / v.WorldW * float64(pw-1)), int(y / v.WorldH * float64(ph-1))
}

// CellToWorld maps a terminal cell (as reported by mouse events) to the
// world position at the cell's center.
func (v Viewport) CellToWorld(col, row int) (float64, float64) {
	x := (float64(col) + 0.5) / float64(v.Canvas.Cols) * v.WorldW
	y := (float64(row) + 0.5) / float64(v.Canvas.Rows) * v.WorldH
	return x, y
}
