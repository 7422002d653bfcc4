package imaging

import (
	"image/color"
	"testing"
)

func TestAverageColorUniform(t *testing.T) {
	f := NewFrame(16, 16, color.RGBA{R: 40, G: 80, B: 120, A: 255})
	got := averageColor(f, 4, 4, 8)
	want := color.RGBA{R: 40, G: 80, B: 120, A: 255}
	if got != want {
		t.Errorf("averageColor = %v, want %v", got, want)
	}
}

func TestPixelateUniformCells(t *testing.T) {
	src := NewFrame(20, 20, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	dst := NewFrame(20, 20, color.RGBA{A: 255})
	Pixelate(src, dst, 5, 0, false)

	// Every cell-aligned pixel takes the cell average.
	for _, p := range []struct{ x, y int }{{0, 0}, {7, 7}, {15, 19}} {
		got, _ := dst.ColorAt(p.x, p.y)
		want := color.RGBA{R: 100, G: 100, B: 100, A: 255}
		if got != want {
			t.Errorf("pixel (%d,%d) = %v, want %v", p.x, p.y, got, want)
		}
	}
}

func TestPixelateSpacingLeavesGaps(t *testing.T) {
	src := NewFrame(20, 20, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	bg := color.RGBA{A: 255}
	dst := NewFrame(20, 20, bg)
	Pixelate(src, dst, 4, 2, false)

	if got, _ := dst.ColorAt(0, 0); got == bg {
		t.Error("cell origin not painted")
	}
	// The spacing columns between cells stay untouched.
	if got, _ := dst.ColorAt(4, 0); got != bg {
		t.Errorf("gap pixel = %v, want background", got)
	}
}

// Darker cells draw larger squares when brightness mapping is on.
func TestPixelateBrightnessMapping(t *testing.T) {
	dark := NewFrame(10, 10, color.RGBA{A: 255})
	bright := NewFrame(10, 10, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	bg := color.RGBA{R: 7, G: 7, B: 7, A: 255}

	darkDst := NewFrame(10, 10, bg)
	Pixelate(dark, darkDst, 5, 5, true)
	brightDst := NewFrame(10, 10, bg)
	Pixelate(bright, brightDst, 5, 5, true)

	darkPainted, brightPainted := 0, 0
	for i := range darkDst.Pix {
		if darkDst.Pix[i] != bg {
			darkPainted++
		}
		if brightDst.Pix[i] != bg {
			brightPainted++
		}
	}
	if darkPainted <= brightPainted {
		t.Errorf("dark cell painted %d pixels, bright %d; want dark larger", darkPainted, brightPainted)
	}
}

// Chunked execution must produce exactly what the serial path produces.
func TestPixelateChunkedMatchesSerial(t *testing.T) {
	src := NewFrame(64, 256, color.RGBA{A: 255})
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}

	serial := NewFrame(src.W, src.H, color.RGBA{A: 255})
	pixelateRows(src, serial, 0, src.H, 4, 4, true)

	chunked := NewFrame(src.W, src.H, color.RGBA{A: 255})
	Pixelate(src, chunked, 4, 0, true)

	for i := range serial.Pix {
		if serial.Pix[i] != chunked.Pix[i] {
			t.Fatalf("pixel %d differs: serial %v, chunked %v", i, serial.Pix[i], chunked.Pix[i])
		}
	}
}
