package imaging

import (
	"image/color"
	"runtime"
	"sync"
)

// pixelateParallelThreshold is the minimum row count worth fanning out over
// goroutines. Small frames are cheaper single-threaded.
const pixelateParallelThreshold = 128

// Pixelate downsamples src into dst by painting a filled square of the
// cell's average color at every stride interval (stride = cellSize +
// spacing). When mapBrightness is set, darker cells are drawn larger, up to
// cellSize. Rows are split into contiguous chunks processed concurrently;
// each chunk writes only its own rows, so no synchronization is needed
// beyond the final join.
func Pixelate(src, dst *Frame, cellSize, spacing int, mapBrightness bool) {
	if cellSize < 1 {
		cellSize = 1
	}
	stride := cellSize + spacing

	if src.H < pixelateParallelThreshold {
		pixelateRows(src, dst, 0, src.H, cellSize, stride, mapBrightness)
		return
	}

	workers := runtime.GOMAXPROCS(0)
	rowsPerChunk := ((src.H + workers - 1) / workers / stride) * stride
	if rowsPerChunk < stride {
		rowsPerChunk = stride
	}

	var wg sync.WaitGroup
	for y0 := 0; y0 < src.H; y0 += rowsPerChunk {
		y1 := min(y0+rowsPerChunk, src.H)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			pixelateRows(src, dst, y0, y1, cellSize, stride, mapBrightness)
		}(y0, y1)
	}
	wg.Wait()
}

func pixelateRows(src, dst *Frame, y0, y1, cellSize, stride int, mapBrightness bool) {
	for y := y0; y < y1 && y+cellSize <= src.H; y += stride {
		for x := 0; x+cellSize <= src.W; x += stride {
			avg := averageColor(src, x, y, cellSize)
			size := cellSize
			ox, oy := x, y
			if mapBrightness {
				brightness := (int(avg.R) + int(avg.G) + int(avg.B)) / 3
				size = 1 + (255-brightness)*(cellSize-1)/255
				ox -= size / 2
				oy -= size / 2
			}
			dst.FillRect(ox, oy, size, size, avg)
		}
	}
}

// averageColor computes the mean color of the size x size cell at (x,y).
func averageColor(f *Frame, x, y, size int) color.RGBA {
	var r, g, b uint32
	for yy := y; yy < y+size; yy++ {
		row := yy * f.W
		for xx := x; xx < x+size; xx++ {
			c := f.Pix[row+xx]
			r += uint32(c.R)
			g += uint32(c.G)
			b += uint32(c.B)
		}
	}
	n := uint32(size * size)
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255}
}
