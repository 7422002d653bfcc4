// Package track derives the compact representations a tracked object needs
// each cycle (binary mask, outer contour, sparse point set), finds the
// minimum-distance pair between two contours, and runs the interference
// state machine that gates particle effects.
package track

import (
	"image"

	"github.com/kinetiklab/silhouette/imaging"
)

// ExtractPoints returns the mask's foreground points visited at stride
// intervals, in row-major order. A stride of 1 (or less) enumerates every
// foreground pixel, the exhaustive policy used when per-pixel granularity
// is required downstream.
func ExtractPoints(m *imaging.Mask, stride int) []image.Point {
	if stride < 1 {
		stride = 1
	}
	var points []image.Point
	for y := 0; y < m.H; y += stride {
		row := y * m.W
		for x := 0; x < m.W; x += stride {
			if m.Pix[row+x] == 0 {
				points = append(points, image.Pt(x, y))
			}
		}
	}
	return points
}

// Extractor turns frames into the per-slot mask, contour and point set.
type Extractor struct {
	Threshold uint8 // brightness threshold; darker pixels are foreground
	Stride    int   // point sampling stride (cell size + spacing)
}

// Extract recomputes the object representation for one frame: threshold to
// a binary mask, trace external contours on the inverted mask, keep the
// contour of maximum enclosed area, and grid-sample the foreground points.
// The contour is nil when the frame contains no foreground region.
func (e *Extractor) Extract(frame *imaging.Frame) (*imaging.Mask, imaging.Contour, []image.Point) {
	mask := imaging.ThresholdMask(frame, e.Threshold)
	contours := imaging.FindContours(mask.Inverted())
	largest := imaging.LargestContour(contours)
	points := ExtractPoints(mask, e.Stride)
	return mask, largest, points
}
