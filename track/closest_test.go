package track

import (
	"image"
	"math"
	"math/rand"
	"testing"

	"github.com/kinetiklab/silhouette/imaging"
)

// serialReference is the plain O(n*m) scan the chunked search must
// reproduce exactly, ties broken by iteration order.
func serialReference(c1, c2 imaging.Contour) Pair {
	best := math.MaxFloat64
	var bi, bj int
	for i, p1 := range c1 {
		for j, p2 := range c2 {
			dx := float64(p1.X - p2.X)
			dy := float64(p1.Y - p2.Y)
			if d := dx*dx + dy*dy; d < best {
				best = d
				bi, bj = i, j
			}
		}
	}
	return Pair{P1: c1[bi], P2: c2[bj], Dist: math.Sqrt(best), Found: true}
}

func randomContour(rng *rand.Rand, n, span int) imaging.Contour {
	c := make(imaging.Contour, n)
	for i := range c {
		c[i] = image.Pt(rng.Intn(span), rng.Intn(span))
	}
	return c
}

func TestClosestPairEmptySentinel(t *testing.T) {
	c := imaging.Contour{{X: 3, Y: 4}}
	tests := []struct {
		name   string
		c1, c2 imaging.Contour
	}{
		{"both empty", nil, nil},
		{"first empty", nil, c},
		{"second empty", c, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ClosestPair(tt.c1, tt.c2)
			if p.Found {
				t.Error("Found = true for empty input")
			}
			if p.P1 != (image.Point{}) || p.P2 != (image.Point{}) {
				t.Errorf("sentinel = (%v,%v), want ((0,0),(0,0))", p.P1, p.P2)
			}
		})
	}
}

func TestEmptyContourNeverRaisesInterference(t *testing.T) {
	// A real point right next to the origin: if a caller confused the
	// sentinel with a genuine match it would see distance ~1.4 and trigger.
	nearOrigin := imaging.Contour{{X: 1, Y: 1}}
	d := NewDetector(100, rand.New(rand.NewSource(1)))

	fired, _ := d.Observe(ClosestPair(nil, nearOrigin))
	if fired {
		t.Fatal("sentinel pair raised interference")
	}
	if d.State() != StateTracking {
		t.Errorf("state = %v, want tracking", d.State())
	}
}

func TestClosestPairBasic(t *testing.T) {
	c1 := imaging.Contour{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 5, Y: 5}}
	c2 := imaging.Contour{{X: 100, Y: 100}, {X: 12, Y: 10}, {X: 50, Y: 50}}

	p := ClosestPair(c1, c2)
	if !p.Found {
		t.Fatal("Found = false")
	}
	if p.P1 != image.Pt(10, 10) || p.P2 != image.Pt(12, 10) {
		t.Errorf("pair = (%v,%v), want ((10,10),(12,10))", p.P1, p.P2)
	}
	if p.Dist != 2 {
		t.Errorf("Dist = %v, want 2", p.Dist)
	}
}

func TestClosestPairMembership(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	c1 := randomContour(rng, 200, 500)
	c2 := randomContour(rng, 150, 500)

	p := ClosestPair(c1, c2)
	in := func(c imaging.Contour, pt image.Point) bool {
		for _, q := range c {
			if q == pt {
				return true
			}
		}
		return false
	}
	if !in(c1, p.P1) || !in(c2, p.P2) {
		t.Fatal("returned points must belong to their contours")
	}
	// Global minimality against every cross pair.
	for _, a := range c1 {
		for _, b := range c2 {
			dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
			if d := math.Sqrt(dx*dx + dy*dy); d < p.Dist {
				t.Fatalf("found closer pair (%v,%v) d=%v < %v", a, b, d, p.Dist)
			}
		}
	}
}

func TestChunkingMatchesSerialReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		// Small span forces many equidistant ties.
		c1 := randomContour(rng, 1+rng.Intn(300), 40)
		c2 := randomContour(rng, 1+rng.Intn(300), 40)
		want := serialReference(c1, c2)

		for _, chunks := range []int{1, 2, 3, 7, 16, len(c1), len(c1) + 5} {
			got := closestPairChunked(c1, c2, chunks)
			if got.P1 != want.P1 || got.P2 != want.P2 {
				t.Fatalf("trial %d chunks %d: pair (%v,%v), want (%v,%v)",
					trial, chunks, got.P1, got.P2, want.P1, want.P2)
			}
			if got.Dist != want.Dist {
				t.Fatalf("trial %d chunks %d: dist %v, want %v", trial, chunks, got.Dist, want.Dist)
			}
		}
	}
}

func TestClosestPairTieBreak(t *testing.T) {
	// Two pairs at identical distance: iteration order must pick the pair
	// with the lowest c1 index, then the lowest c2 index.
	c1 := imaging.Contour{{X: 0, Y: 0}, {X: 100, Y: 0}}
	c2 := imaging.Contour{{X: 100, Y: 5}, {X: 0, Y: 5}}

	for _, chunks := range []int{1, 2} {
		p := closestPairChunked(c1, c2, chunks)
		if p.P1 != image.Pt(0, 0) || p.P2 != image.Pt(0, 5) {
			t.Errorf("chunks=%d: pair (%v,%v), want ((0,0),(0,5))", chunks, p.P1, p.P2)
		}
	}
}
