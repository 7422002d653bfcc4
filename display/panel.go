package display

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Calibration holds the live-tunable tracking parameters. Changed reports
// whether any slider or toggle moved this frame.
type Calibration struct {
	BrightnessThreshold  float32
	InterferenceDistance float32
	MaskOverlay          bool
	Fade                 bool
	Changed              bool
}

// Panel renders the calibration sliders during installation setup.
type Panel struct {
	x, y  float32
	width float32
	cal   Calibration
}

// NewPanel creates a panel at the given position with initial values.
func NewPanel(x, y, width float32, cal Calibration) *Panel {
	cal.Changed = false
	return &Panel{x: x, y: y, width: width, cal: cal}
}

// Values returns the current calibration without drawing.
func (p *Panel) Values() Calibration {
	v := p.cal
	v.Changed = false
	return v
}

// Draw renders the panel and returns the calibration, with Changed set when
// a control moved.
func (p *Panel) Draw() Calibration {
	padding := float32(10)
	sliderW := p.width - padding*2 - 50
	x := p.x + padding
	y := p.y + padding
	changed := false

	panelHeight := float32(190)
	rl.DrawRectangle(int32(p.x), int32(p.y), int32(p.width), int32(panelHeight),
		rl.Color{R: 25, G: 30, B: 35, A: 220})
	rl.DrawRectangleLines(int32(p.x), int32(p.y), int32(p.width), int32(panelHeight),
		rl.Color{R: 70, G: 80, B: 90, A: 255})

	rl.DrawText("Calibration", int32(x), int32(y), 16, rl.White)
	y += 26

	rl.DrawText("Brightness threshold", int32(x), int32(y), 12, rl.LightGray)
	y += 16
	threshold := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 18},
		"0", "255",
		p.cal.BrightnessThreshold, 0, 255,
	)
	rl.DrawText(fmt.Sprintf("%.0f", threshold), int32(x+sliderW+8), int32(y+2), 14, rl.LightGray)
	if threshold != p.cal.BrightnessThreshold {
		p.cal.BrightnessThreshold = threshold
		changed = true
	}
	y += 30

	rl.DrawText("Interference distance", int32(x), int32(y), 12, rl.LightGray)
	y += 16
	dist := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 18},
		"0", "400",
		p.cal.InterferenceDistance, 0, 400,
	)
	rl.DrawText(fmt.Sprintf("%.0f", dist), int32(x+sliderW+8), int32(y+2), 14, rl.LightGray)
	if dist != p.cal.InterferenceDistance {
		p.cal.InterferenceDistance = dist
		changed = true
	}
	y += 30

	mask := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, "Mask overlay", p.cal.MaskOverlay)
	if mask != p.cal.MaskOverlay {
		p.cal.MaskOverlay = mask
		changed = true
	}
	y += 24

	fade := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, "Fade while animating", p.cal.Fade)
	if fade != p.cal.Fade {
		p.cal.Fade = fade
		changed = true
	}

	out := p.cal
	out.Changed = changed
	return out
}
