package capture

import (
	"image/color"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/kinetiklab/silhouette/imaging"
)

// Synthetic renders an organic dark silhouette drifting over a bright
// background: a blob whose radius is modulated by simplex noise around its
// rim, orbiting the canvas center. Identical seeds produce identical frame
// sequences, which the engine tests rely on.
type Synthetic struct {
	w, h  int
	noise opensimplex.Noise
	tick  int

	// Orbit parameters.
	orbitRadius float64
	blobRadius  float64
	speed       float64
	phase       float64
}

// NewSynthetic creates a synthetic source for the given canvas size. The
// phase offsets the blob's orbit so two sources with different phases
// periodically approach each other.
func NewSynthetic(w, h int, seed int64, phase float64) *Synthetic {
	return &Synthetic{
		w:           w,
		h:           h,
		noise:       opensimplex.New(seed),
		orbitRadius: float64(min(w, h)) * 0.28,
		blobRadius:  float64(min(w, h)) * 0.14,
		speed:       0.02,
		phase:       phase,
	}
}

// Next renders the next frame in the sequence.
func (s *Synthetic) Next() (*imaging.Frame, error) {
	f := imaging.NewFrame(s.w, s.h, color.RGBA{R: 245, G: 245, B: 245, A: 255})

	t := float64(s.tick) * s.speed
	s.tick++

	cx := float64(s.w)/2 + s.orbitRadius*math.Cos(t+s.phase)
	cy := float64(s.h)/2 + s.orbitRadius*math.Sin(t+s.phase)

	// Bounding box of the largest possible blob extent.
	maxR := s.blobRadius * 1.5
	x0, x1 := int(cx-maxR), int(cx+maxR)
	y0, y1 := int(cy-maxR), int(cy+maxR)

	for y := max(y0, 0); y <= min(y1, s.h-1); y++ {
		for x := max(x0, 0); x <= min(x1, s.w-1); x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist > maxR {
				continue
			}
			// Rim radius wobbles with angle and time.
			ang := math.Atan2(dy, dx)
			wobble := s.noise.Eval3(math.Cos(ang), math.Sin(ang), t*0.5)
			r := s.blobRadius * (1 + 0.35*wobble)
			if dist <= r {
				// Shade the interior slightly by depth for color variety.
				shade := uint8(30 + 50*dist/maxR)
				f.Pix[y*s.w+x] = color.RGBA{R: shade, G: shade, B: shade + 10, A: 255}
			}
		}
	}
	return f, nil
}

// Close is a no-op for the synthetic source.
func (s *Synthetic) Close() error { return nil }
