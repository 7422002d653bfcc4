// Package display owns the raylib window: it presents engine canvases as a
// streamed texture, overlays tracking diagnostics and maps installation
// input (keys, mouse, calibration panel).
package display

import (
	"fmt"
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kinetiklab/silhouette/imaging"
)

// HUDData holds the per-frame values the HUD renders.
type HUDData struct {
	State     string
	Cycle     int64
	Particles int

	PairFound bool
	PairDist  float64
	P1, P2    image.Point
}

// App is the window plus the streamed canvas texture and overlay state.
type App struct {
	width, height int32
	texture       rl.Texture2D
	panel         *Panel

	showPanel   bool
	showContour bool
	showHUD     bool
}

// Open creates the window and the canvas texture. The texture size is fixed
// to the engine canvas; the window matches it.
func Open(width, height, targetFPS int, title string, cal Calibration) *App {
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetTargetFPS(int32(targetFPS))

	img := rl.GenImageColor(width, height, rl.White)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	return &App{
		width:   int32(width),
		height:  int32(height),
		texture: texture,
		panel:   NewPanel(10, 10, 260, cal),
		showHUD: true,
	}
}

// Close releases the texture and the window.
func (a *App) Close() {
	rl.UnloadTexture(a.texture)
	rl.CloseWindow()
}

// ShouldClose reports whether the user asked to quit.
func (a *App) ShouldClose() bool { return rl.WindowShouldClose() }

// MousePoint returns the cursor position in canvas coordinates.
func (a *App) MousePoint() image.Point {
	pos := rl.GetMousePosition()
	return image.Pt(int(pos.X), int(pos.Y))
}

// Input is the set of one-shot signals raised this frame.
type Input struct {
	Advance bool
	Pause   bool
}

// HandleInput processes the frame's key presses. Overlay toggles mutate the
// app directly; signals the control loop must see are returned.
func (a *App) HandleInput() Input {
	var in Input
	if rl.IsKeyPressed(rl.KeySpace) {
		in.Advance = true
	}
	if rl.IsKeyPressed(rl.KeyP) {
		in.Pause = true
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.showPanel = !a.showPanel
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.showContour = !a.showContour
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	return in
}

// ShowContours reports whether contour overlays are enabled.
func (a *App) ShowContours() bool { return a.showContour }

// Calibration returns the panel's current values.
func (a *App) Calibration() Calibration { return a.panel.Values() }

// Draw presents one canvas with overlays. Contours and the closest-pair
// segment draw on top of the texture, then the HUD and the calibration
// panel. Returns the panel state so the loop can apply changed values.
func (a *App) Draw(canvas *imaging.Frame, hud HUDData, contours []imaging.Contour) Calibration {
	rl.UpdateTexture(a.texture, canvas.Pix)

	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)
	rl.DrawTexture(a.texture, 0, 0, rl.White)

	if a.showContour {
		for _, c := range contours {
			drawContour(c)
		}
		if hud.PairFound {
			rl.DrawLine(int32(hud.P1.X), int32(hud.P1.Y), int32(hud.P2.X), int32(hud.P2.Y),
				rl.Color{R: 230, G: 60, B: 60, A: 255})
		}
	}

	if a.showHUD {
		a.drawHUD(hud)
	}

	cal := a.panel.Values()
	if a.showPanel {
		cal = a.panel.Draw()
	}

	rl.EndDrawing()
	return cal
}

// drawContour renders the boundary as connected segments, closing the loop.
func drawContour(c imaging.Contour) {
	col := rl.Color{R: 60, G: 180, B: 90, A: 255}
	if len(c) == 1 {
		rl.DrawPixel(int32(c[0].X), int32(c[0].Y), col)
		return
	}
	for i := 0; i < len(c); i++ {
		p, q := c[i], c[(i+1)%len(c)]
		rl.DrawLine(int32(p.X), int32(p.Y), int32(q.X), int32(q.Y), col)
	}
}

func (a *App) drawHUD(hud HUDData) {
	const fontSize = 14
	lines := []string{
		fmt.Sprintf("state: %s", hud.State),
		fmt.Sprintf("cycle: %d", hud.Cycle),
		fmt.Sprintf("particles: %d", hud.Particles),
	}
	if hud.PairFound {
		lines = append(lines, fmt.Sprintf("distance: %.1f", hud.PairDist))
	}
	lines = append(lines, fmt.Sprintf("fps: %d", rl.GetFPS()))

	x := a.width - 160
	y := int32(10)
	for _, line := range lines {
		rl.DrawText(line, x, y, fontSize, rl.DarkGray)
		y += 18
	}

	controls := "SPACE: Advance | P: Pause | TAB: Calibration | C: Contours | H: HUD | F11: Fullscreen"
	w := rl.MeasureText(controls, 12)
	rl.DrawText(controls, (a.width-w)/2, a.height-22, 12, rl.Gray)
}
