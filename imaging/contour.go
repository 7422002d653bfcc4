package imaging

import "image"

// moore lists the 8-neighborhood in clockwise order starting east.
var moore = [8]image.Point{
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
}

// FindContours traces the outer boundary of every nonzero region in the
// mask and returns the contours in scan order (top-to-bottom, then
// left-to-right), each an ordered clockwise point sequence. Inner (hole)
// boundaries are not reported. The result is deterministic for a given
// mask.
func FindContours(m *Mask) []Contour {
	outside := floodOutside(m)
	labeled := make([]bool, len(m.Pix))

	var contours []Contour
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			i := y*m.W + x
			if m.Pix[i] == 0 || labeled[i] {
				continue
			}
			// Outer boundary starts have exterior background to the west.
			if x > 0 && m.Pix[i-1] != 0 {
				continue
			}
			if x > 0 && !outside[i-1] {
				continue
			}
			contours = append(contours, traceBoundary(m, image.Pt(x, y), labeled))
		}
	}
	return contours
}

// floodOutside marks every background pixel reachable from the mask border,
// distinguishing the exterior from holes enclosed by foreground.
func floodOutside(m *Mask) []bool {
	outside := make([]bool, len(m.Pix))
	var stack []int

	push := func(i int) {
		if m.Pix[i] == 0 && !outside[i] {
			outside[i] = true
			stack = append(stack, i)
		}
	}

	for x := 0; x < m.W; x++ {
		push(x)
		push((m.H-1)*m.W + x)
	}
	for y := 0; y < m.H; y++ {
		push(y * m.W)
		push(y*m.W + m.W - 1)
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%m.W, i/m.W
		if x > 0 {
			push(i - 1)
		}
		if x < m.W-1 {
			push(i + 1)
		}
		if y > 0 {
			push(i - m.W)
		}
		if y < m.H-1 {
			push(i + m.W)
		}
	}
	return outside
}

// traceBoundary walks the outer boundary clockwise from start using
// Moore-neighbor tracing. The walk entered start from the west. Each move
// resumes the scan just after the backtrack direction, and the walk stops
// only when it re-enters start about to repeat its first move (Jacob's
// criterion): thin diagonal chains terminate and boundaries that pass
// through start more than once are not truncated.
func traceBoundary(m *Mask, start image.Point, labeled []bool) Contour {
	contour := Contour{start}
	labeled[start.Y*m.W+start.X] = true

	c := start
	dir := 4 // backtrack direction: west
	firstDir := -1
	for {
		found := nextForeground(m, c, dir)
		if found == -1 {
			// Isolated single pixel.
			return contour
		}
		if firstDir == -1 {
			firstDir = found
		} else if c == start && found == firstDir {
			return contour
		}
		next := c.Add(moore[found])
		if next != start {
			contour = append(contour, next)
			labeled[next.Y*m.W+next.X] = true
		}
		c = next
		dir = (found + 4) % 8
	}
}

// nextForeground scans the Moore neighborhood clockwise starting just after
// the backtrack direction, returning the first foreground direction or -1.
func nextForeground(m *Mask, c image.Point, backtrack int) int {
	for i := 1; i <= 8; i++ {
		d := (backtrack + i) % 8
		n := c.Add(moore[d])
		if m.In(n.X, n.Y) && m.Pix[n.Y*m.W+n.X] != 0 {
			return d
		}
	}
	return -1
}

// Area returns the enclosed area of the contour by the shoelace formula.
// Degenerate contours (fewer than three points) have zero area.
func (c Contour) Area() float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	sum := 0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2
}

// LargestContour returns the contour of maximum enclosed area, breaking
// ties by scan order. Returns nil for an empty slice.
func LargestContour(contours []Contour) Contour {
	var best Contour
	bestArea := -1.0
	for _, c := range contours {
		if a := c.Area(); a > bestArea {
			bestArea = a
			best = c
		}
	}
	return best
}
