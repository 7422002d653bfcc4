package imaging

import "image/color"

// FillRect draws a filled axis-aligned rectangle, clipped to the frame.
func (f *Frame) FillRect(x, y, w, h int, c color.RGBA) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, f.W), min(y+h, f.H)
	for yy := y0; yy < y1; yy++ {
		row := yy * f.W
		for xx := x0; xx < x1; xx++ {
			f.Pix[row+xx] = c
		}
	}
}

// FillCircle draws a filled circle, clipped to the frame.
func (f *Frame) FillCircle(cx, cy, r int, c color.RGBA) {
	if r <= 0 {
		f.Set(cx, cy, c)
		return
	}
	rr := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= rr {
				f.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

// Line draws a one-pixel line between two points (Bresenham).
func (f *Frame) Line(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		f.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawContour draws the closed contour outline onto the frame.
func (f *Frame) DrawContour(c Contour, col color.RGBA) {
	n := len(c)
	if n == 0 {
		return
	}
	if n == 1 {
		f.Set(c[0].X, c[0].Y, col)
		return
	}
	for i := 0; i < n; i++ {
		a, b := c[i], c[(i+1)%n]
		f.Line(a.X, a.Y, b.X, b.Y, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
