// Package export renders curtain snapshots to SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/curtain/internal/cloth"
	"github.com/san-kum/curtain/internal/viz"
)

// ClothToSVG renders the current grid as an SVG: one line per surviving
// link, one small dot per point. World coordinates map 1:1 onto SVG units
// scaled by scale.
func ClothToSVG(g *cloth.Grid, scale float64) string {
	if g == nil || scale <= 0 {
		return ""
	}
	p := g.Params()
	w, h := p.Width*scale, p.Height*scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#e8e8e8" stroke-width="%.2f">
`, w, h, w, h, scale))

	for _, s := range g.Segments() {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, s.X1*scale, s.Y1*scale, s.X2*scale, s.Y2*scale))
	}
	sb.WriteString("</g>\n<g fill=\"#ffffff\">\n")

	r := scale * 1.5
	for i := range g.Points {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, g.Points[i].X*scale, g.Points[i].Y*scale, r))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// braille dot-to-bit mapping, dots addressed (dy, dx) within a cell
var dotMask = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG renders a braille canvas as SVG dots: one circle per lit
// sub-pixel, scale units per sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil || scale <= 0 {
		return ""
	}

	width := float64(canvas.Cols) * scale * 2  // 2 sub-pixels per cell
	height := float64(canvas.Rows) * scale * 4 // 4 sub-pixels per cell

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#e8e8e8">
`, width, height, width, height))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Rows; row++ {
		for col := 0; col < canvas.Cols; col++ {
			r := canvas.Cell(col, row)
			if r <= 0x2800 {
				continue
			}
			pattern := r - 0x2800

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotMask[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
