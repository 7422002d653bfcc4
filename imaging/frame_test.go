package imaging

import (
	"image/color"
	"testing"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

func TestThresholdMaskConvention(t *testing.T) {
	f := NewFrame(4, 4, white)
	f.Set(1, 2, black)
	f.Set(3, 0, color.RGBA{R: 40, G: 40, B: 40, A: 255})

	m := ThresholdMask(f, 200)

	tests := []struct {
		name string
		x, y int
		fg   bool
	}{
		{"dark pixel is foreground", 1, 2, true},
		{"gray below threshold is foreground", 3, 0, true},
		{"white is background", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Foreground(tt.x, tt.y); got != tt.fg {
				t.Errorf("Foreground(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.fg)
			}
		})
	}
}

func TestThresholdMaskBoundary(t *testing.T) {
	f := NewFrame(1, 1, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	m := ThresholdMask(f, 200)
	// Luma exactly at the threshold maps to background.
	if m.Foreground(0, 0) {
		t.Error("pixel at threshold should be background")
	}
}

func TestInverted(t *testing.T) {
	f := NewFrame(2, 1, white)
	f.Set(0, 0, black)
	m := ThresholdMask(f, 128)
	inv := m.Inverted()

	if inv.Pix[0] != 255 || inv.Pix[1] != 0 {
		t.Errorf("inverted mask = %v, want [255 0]", inv.Pix)
	}
}

func TestColorAtProvenance(t *testing.T) {
	f := NewFrame(3, 3, white)
	f.Set(1, 1, black)

	c, err := f.ColorAt(1, 1)
	if err != nil {
		t.Fatalf("ColorAt(1,1): %v", err)
	}
	if c != black {
		t.Errorf("ColorAt(1,1) = %v, want black", c)
	}

	if _, err := f.ColorAt(3, 0); err == nil {
		t.Error("ColorAt outside frame should fail")
	}
	if _, err := f.ColorAt(0, -1); err == nil {
		t.Error("ColorAt with negative coordinate should fail")
	}
}

func TestFillRectClipped(t *testing.T) {
	f := NewFrame(4, 4, white)
	f.FillRect(2, 2, 5, 5, black)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := x >= 2 && y >= 2
			c, _ := f.ColorAt(x, y)
			if (c == black) != want {
				t.Errorf("pixel (%d,%d) = %v", x, y, c)
			}
		}
	}
}

func TestLineEndpoints(t *testing.T) {
	f := NewFrame(8, 8, white)
	f.Line(1, 1, 6, 4, black)

	for _, p := range []struct{ x, y int }{{1, 1}, {6, 4}} {
		c, _ := f.ColorAt(p.x, p.y)
		if c != black {
			t.Errorf("endpoint (%d,%d) not drawn", p.x, p.y)
		}
	}
}

func TestResized(t *testing.T) {
	f := NewFrame(4, 4, white)
	f.Set(0, 0, black)
	f.Set(3, 3, black)

	up := f.Resized(8, 8)
	// Nearest neighbor: each source pixel becomes a 2x2 block.
	for _, p := range []struct{ x, y int }{{0, 0}, {1, 1}, {6, 6}, {7, 7}} {
		c, _ := up.ColorAt(p.x, p.y)
		if c != black {
			t.Errorf("upscaled pixel (%d,%d) = %v, want black", p.x, p.y, c)
		}
	}
	if c, _ := up.ColorAt(4, 4); c != white {
		t.Errorf("upscaled pixel (4,4) = %v, want white", c)
	}

	down := up.Resized(4, 4)
	if c, _ := down.ColorAt(0, 0); c != black {
		t.Error("downscale lost the corner pixel")
	}

	// Same-size resize still returns an independent copy.
	same := f.Resized(4, 4)
	same.Set(0, 0, white)
	if c, _ := f.ColorAt(0, 0); c != black {
		t.Error("resize to same size aliased the source")
	}
}

func TestMaskFrame(t *testing.T) {
	f := NewFrame(2, 1, white)
	f.Set(0, 0, black)
	v := ThresholdMask(f, 128).Frame()

	if c, _ := v.ColorAt(0, 0); c != black {
		t.Errorf("foreground rendered as %v, want black", c)
	}
	if c, _ := v.ColorAt(1, 0); c != white {
		t.Errorf("background rendered as %v, want white", c)
	}
}

func TestDrawContourClosesLoop(t *testing.T) {
	f := NewFrame(8, 8, white)
	c := Contour{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 5}, {X: 1, Y: 5}}
	f.DrawContour(c, black)

	// Every vertex drawn, and the closing segment back to the first vertex.
	for _, p := range c {
		if got, _ := f.ColorAt(p.X, p.Y); got != black {
			t.Errorf("vertex (%d,%d) not drawn", p.X, p.Y)
		}
	}
	if got, _ := f.ColorAt(1, 3); got != black {
		t.Error("closing segment not drawn")
	}
}

func TestFillCircleRadiusZero(t *testing.T) {
	f := NewFrame(3, 3, white)
	f.FillCircle(1, 1, 0, black)
	c, _ := f.ColorAt(1, 1)
	if c != black {
		t.Error("zero-radius circle should still plot its center")
	}
}
