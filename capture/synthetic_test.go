package capture

import (
	"testing"

	"github.com/kinetiklab/silhouette/imaging"
	"github.com/kinetiklab/silhouette/track"
)

func TestSyntheticDeterministicPerSeed(t *testing.T) {
	a := NewSynthetic(120, 90, 7, 0)
	b := NewSynthetic(120, 90, 7, 0)

	for i := 0; i < 5; i++ {
		fa, err := a.Next()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		fb, _ := b.Next()
		for j := range fa.Pix {
			if fa.Pix[j] != fb.Pix[j] {
				t.Fatalf("frame %d pixel %d differs under identical seeds", i, j)
			}
		}
	}
}

func TestSyntheticProducesTrackableObject(t *testing.T) {
	s := NewSynthetic(160, 120, 3, 0)
	f, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}

	mask := imaging.ThresholdMask(f, 200)
	contours := imaging.FindContours(mask.Inverted())
	if len(contours) == 0 {
		t.Fatal("synthetic frame has no traceable silhouette")
	}
	largest := imaging.LargestContour(contours)
	if largest.Area() < 50 {
		t.Errorf("silhouette area %v too small to track", largest.Area())
	}

	if points := track.ExtractPoints(mask, 4); len(points) == 0 {
		t.Error("no foreground points sampled from synthetic frame")
	}
}

func TestSyntheticBlobMoves(t *testing.T) {
	s := NewSynthetic(160, 120, 3, 0)

	centroid := func(f *imaging.Frame) (float64, float64) {
		mask := imaging.ThresholdMask(f, 200)
		pts := track.ExtractPoints(mask, 1)
		if len(pts) == 0 {
			t.Fatal("no foreground")
		}
		var sx, sy int
		for _, p := range pts {
			sx += p.X
			sy += p.Y
		}
		return float64(sx) / float64(len(pts)), float64(sy) / float64(len(pts))
	}

	f0, _ := s.Next()
	x0, y0 := centroid(f0)
	for i := 0; i < 30; i++ {
		s.Next()
	}
	f1, _ := s.Next()
	x1, y1 := centroid(f1)

	if x0 == x1 && y0 == y1 {
		t.Error("silhouette did not move across frames")
	}
}
