// Package imaging provides the frame, mask and contour primitives the
// tracking engine is built on: thresholding, external contour tracing,
// color sampling and simple drawing onto an RGBA pixel grid.
package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// Frame is a row-major RGBA pixel grid. Frames handed to the engine are
// treated as immutable for the duration of a cycle; the engine's own output
// canvas is the only frame it writes to.
type Frame struct {
	W, H int
	Pix  []color.RGBA
}

// NewFrame allocates a frame filled with the given color.
func NewFrame(w, h int, fill color.RGBA) *Frame {
	f := &Frame{W: w, H: h, Pix: make([]color.RGBA, w*h)}
	for i := range f.Pix {
		f.Pix[i] = fill
	}
	return f
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{W: f.W, H: f.H, Pix: make([]color.RGBA, len(f.Pix))}
	copy(c.Pix, f.Pix)
	return c
}

// Clear overwrites every pixel with the given color.
func (f *Frame) Clear(c color.RGBA) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}

// In reports whether the point lies inside the frame.
func (f *Frame) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.W && y < f.H
}

// ColorAt samples the pixel at integer coordinates. Sampling outside the
// frame is a provenance error: the point did not come from this frame.
func (f *Frame) ColorAt(x, y int) (color.RGBA, error) {
	if !f.In(x, y) {
		return color.RGBA{}, fmt.Errorf("imaging: sample (%d,%d) outside %dx%d frame", x, y, f.W, f.H)
	}
	return f.Pix[y*f.W+x], nil
}

// Resized returns a nearest-neighbor rescale of the frame. Capture devices
// rarely match the canvas size, so frames are rescaled before entering the
// cycle.
func (f *Frame) Resized(w, h int) *Frame {
	if w == f.W && h == f.H {
		return f.Clone()
	}
	out := &Frame{W: w, H: h, Pix: make([]color.RGBA, w*h)}
	for y := 0; y < h; y++ {
		sy := y * f.H / h
		for x := 0; x < w; x++ {
			sx := x * f.W / w
			out.Pix[y*w+x] = f.Pix[sy*f.W+sx]
		}
	}
	return out
}

// Set writes a pixel, silently dropping out-of-bounds writes.
func (f *Frame) Set(x, y int, c color.RGBA) {
	if f.In(x, y) {
		f.Pix[y*f.W+x] = c
	}
}

// Mask is a binary classification of a frame. By convention foreground
// pixels hold 0 and background pixels hold 255: objects are dark shapes
// against a bright backdrop, so anything below the brightness threshold is
// foreground. The convention is applied consistently; contour tracing runs
// on the inverted mask.
type Mask struct {
	W, H int
	Pix  []uint8
}

// NewMask allocates an all-background mask.
func NewMask(w, h int) *Mask {
	m := &Mask{W: w, H: h, Pix: make([]uint8, w*h)}
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

// In reports whether the point lies inside the mask.
func (m *Mask) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.W && y < m.H
}

// Foreground reports whether the pixel at (x,y) is foreground (value 0).
func (m *Mask) Foreground(x, y int) bool {
	return m.In(x, y) && m.Pix[y*m.W+x] == 0
}

// Inverted returns a copy with foreground and background swapped.
func (m *Mask) Inverted() *Mask {
	inv := &Mask{W: m.W, H: m.H, Pix: make([]uint8, len(m.Pix))}
	for i, v := range m.Pix {
		inv.Pix[i] = 255 - v
	}
	return inv
}

// Frame renders the mask as a black-on-white frame for calibration views.
func (m *Mask) Frame() *Frame {
	f := &Frame{W: m.W, H: m.H, Pix: make([]color.RGBA, len(m.Pix))}
	for i, v := range m.Pix {
		f.Pix[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return f
}

// gray converts an RGBA pixel to 8-bit luma with the usual BT.601 weights.
func gray(c color.RGBA) uint8 {
	return uint8((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)) / 1000)
}

// ThresholdMask converts the frame to grayscale and thresholds it into a
// binary mask: luma >= threshold becomes background (255), anything darker
// becomes foreground (0).
func ThresholdMask(f *Frame, threshold uint8) *Mask {
	m := &Mask{W: f.W, H: f.H, Pix: make([]uint8, len(f.Pix))}
	for i, c := range f.Pix {
		if gray(c) >= threshold {
			m.Pix[i] = 255
		}
	}
	return m
}

// Contour is the ordered boundary point sequence of a foreground region.
type Contour []image.Point
