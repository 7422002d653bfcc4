// Threshold mask preview tool - interactive calibration with sliders.
//
// Usage: go run ./cmd/maskpreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kinetiklab/silhouette/capture"
	"github.com/kinetiklab/silhouette/imaging"
	"github.com/kinetiklab/silhouette/track"
)

const (
	windowWidth  = 1000
	windowHeight = 600
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Mask Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	source := capture.NewSynthetic(previewSize, previewSize, 12345, 0)
	defer source.Close()

	img := rl.GenImageColor(previewSize, previewSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	threshold := float32(120)
	stride := float32(5)
	showMask := true
	pixelate := false
	animating := true

	var frame *imaging.Frame

	for !rl.WindowShouldClose() {
		if animating || frame == nil {
			frame, _ = source.Next()
		}

		extractor := track.Extractor{Threshold: uint8(threshold), Stride: int(stride)}
		mask, contour, points := extractor.Extract(frame)

		var view *imaging.Frame
		switch {
		case showMask:
			view = mask.Frame()
		case pixelate:
			view = imaging.NewFrame(previewSize, previewSize, color.RGBA{R: 245, G: 245, B: 245, A: 255})
			imaging.Pixelate(frame, view, int(stride), 0, true)
		default:
			view = frame.Clone()
		}
		view.DrawContour(contour, color.RGBA{R: 230, G: 60, B: 60, A: 255})
		rl.UpdateTexture(texture, view.Pix)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexture(texture, 10, 10, rl.White)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Contour: %d pts  Points: %d  Area: %.0f",
			len(contour), len(points), contour.Area()), 15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Mask Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Brightness threshold", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		threshold = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "255",
			threshold, 0, 255,
		)
		rl.DrawText(fmt.Sprintf("%.0f", threshold), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Sampling stride", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		stride = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "20",
			stride, 1, 20,
		)
		rl.DrawText(fmt.Sprintf("%.0f", stride), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(showMask, "Show Frame", "Show Mask")) {
			showMask = !showMask
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Pause", "Play")) {
			animating = !animating
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(pixelate, "Raw Frame", "Pixelate")) {
			pixelate = !pixelate
			showMask = false
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		// The stride slider maps to pixel_size only with zero spacing, so
		// both fields are emitted (stride = pixel_size + pixel_spacing).
		yamlLines := []string{
			"tracking:",
			fmt.Sprintf("  brightness_threshold: %.0f", threshold),
			fmt.Sprintf("  pixel_size: %.0f", stride),
			"  pixel_spacing: 0",
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fmt.Sprintf(
				"tracking:\n  brightness_threshold: %.0f\n  pixel_size: %.0f\n  pixel_spacing: 0",
				threshold, stride))
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
