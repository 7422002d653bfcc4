// Package engine owns the per-slot tracking state and particle ensembles
// and drives the three-phase cycle: extraction, closest-pair search, and
// ensemble simulation, composited onto an owned output canvas.
package engine

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/kinetiklab/silhouette/imaging"
	"github.com/kinetiklab/silhouette/particle"
	"github.com/kinetiklab/silhouette/telemetry"
	"github.com/kinetiklab/silhouette/track"
)

// RunMode selects how the engine derives interference and the drive point.
type RunMode int

const (
	// ModeDual tracks two streams and measures contour-to-contour distance.
	ModeDual RunMode = iota
	// ModePointer tracks one stream; the pointer acts as the second object.
	ModePointer
	// ModeSingle reassembles one object continuously; the pointer pushes
	// particles around with no interference detection.
	ModeSingle
)

// String returns the mode's name for logs and flags.
func (m RunMode) String() string {
	switch m {
	case ModeDual:
		return "dual"
	case ModePointer:
		return "pointer"
	case ModeSingle:
		return "single"
	}
	return "unknown"
}

// ParseRunMode converts a flag value to a RunMode.
func ParseRunMode(s string) (RunMode, error) {
	switch s {
	case "dual":
		return ModeDual, nil
	case "pointer":
		return ModePointer, nil
	case "single":
		return ModeSingle, nil
	}
	return 0, fmt.Errorf("engine: unknown mode %q (want dual, pointer or single)", s)
}

// Options configures a new engine.
type Options struct {
	Mode          RunMode
	Slots         int
	Width, Height int

	Threshold    uint8   // brightness threshold for mask extraction
	Stride       int     // point sampling stride
	ParticleSize int     // particle square size
	PushRadiusSq float64 // squared push influence radius
	Fade         bool    // fade colors while animating

	InterferenceDistance float64
	Seed                 int64
}

// slot holds the per-object state recomputed each cycle.
type slot struct {
	contour  imaging.Contour
	points   []image.Point
	ensemble *particle.Ensemble
}

// Engine is the orchestrator exposed to the control loop.
type Engine struct {
	opts      Options
	slots     []*slot
	extractor track.Extractor
	detector  *track.Detector
	canvas    *imaging.Frame
	cycle     int64

	// Optional telemetry hooks; nil disables collection.
	Perf  *telemetry.PerfCollector
	Stats *telemetry.Collector
}

// background is the canvas clear color between cycles.
var background = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// New allocates an engine with empty ensembles, one per slot. The slot
// count is fixed for the engine's lifetime. Randomness for effect selection
// and per-ensemble jitter derives from the seed, so identical seeds and
// inputs reproduce identical runs.
func New(opts Options) (*Engine, error) {
	if opts.Slots < 1 {
		return nil, fmt.Errorf("engine: slot count %d, want at least 1", opts.Slots)
	}
	if opts.Mode == ModeDual && opts.Slots != 2 {
		return nil, fmt.Errorf("engine: dual mode needs 2 slots, got %d", opts.Slots)
	}
	if opts.Width < 1 || opts.Height < 1 {
		return nil, fmt.Errorf("engine: invalid canvas %dx%d", opts.Width, opts.Height)
	}
	if opts.Stride < 1 {
		opts.Stride = 1
	}
	if opts.ParticleSize < 1 {
		opts.ParticleSize = 1
	}

	seeder := rand.New(rand.NewSource(opts.Seed))
	e := &Engine{
		opts:      opts,
		extractor: track.Extractor{Threshold: opts.Threshold, Stride: opts.Stride},
		detector:  track.NewDetector(opts.InterferenceDistance, rand.New(rand.NewSource(seeder.Int63()))),
		canvas:    imaging.NewFrame(opts.Width, opts.Height, background),
	}
	for i := 0; i < opts.Slots; i++ {
		e.slots = append(e.slots, &slot{
			ensemble: particle.NewEnsemble(
				opts.Width, opts.Height, opts.ParticleSize, opts.PushRadiusSq,
				opts.Fade, rand.New(rand.NewSource(seeder.Int63())),
			),
		})
	}
	return e, nil
}

// CycleCount returns the number of completed cycles.
func (e *Engine) CycleCount() int64 { return e.cycle }

// Width returns the canvas width.
func (e *Engine) Width() int { return e.opts.Width }

// Height returns the canvas height.
func (e *Engine) Height() int { return e.opts.Height }

// State returns the interference state machine's current state.
func (e *Engine) State() track.State { return e.detector.State() }

// Advance fires the external advance signal, returning to tracking.
func (e *Engine) Advance() { e.detector.Advance() }

// SetInterferenceDistance updates the trigger threshold (calibration UI).
func (e *Engine) SetInterferenceDistance(d float64) { e.detector.SetThreshold(d) }

// SetThreshold updates the brightness threshold (calibration UI).
func (e *Engine) SetThreshold(t uint8) { e.extractor.Threshold = t }

// Threshold returns the current brightness threshold.
func (e *Engine) Threshold() uint8 { return e.extractor.Threshold }

// SetFade toggles particle color fading on every ensemble (calibration UI).
func (e *Engine) SetFade(v bool) {
	for _, s := range e.slots {
		s.ensemble.SetFade(v)
	}
}

// Contour returns the slot's contour from the latest cycle.
func (e *Engine) Contour(slot int) (imaging.Contour, error) {
	if err := e.checkSlot(slot); err != nil {
		return nil, err
	}
	return e.slots[slot].contour, nil
}

// Populate stages and atomically installs one particle per point, colors
// sampled from the frame. The points must come from that same frame.
func (e *Engine) Populate(slot int, frame *imaging.Frame, points []image.Point) error {
	if err := e.checkSlot(slot); err != nil {
		return err
	}
	return e.slots[slot].ensemble.Populate(frame, points)
}

// SetEffect configures the slot's update rule.
func (e *Engine) SetEffect(slot int, kind particle.Kind) error {
	if err := e.checkSlot(slot); err != nil {
		return err
	}
	e.slots[slot].ensemble.SetEffect(kind)
	return nil
}

// SetAnimating forces the slot's animating flag.
func (e *Engine) SetAnimating(slot int, v bool) error {
	if err := e.checkSlot(slot); err != nil {
		return err
	}
	e.slots[slot].ensemble.SetAnimating(v)
	return nil
}

// Animating reports whether the slot's ensemble is mid-effect.
func (e *Engine) Animating(slot int) bool {
	if slot < 0 || slot >= len(e.slots) {
		return false
	}
	return e.slots[slot].ensemble.Animating()
}

// ParticleCount returns the total particles across all ensembles.
func (e *Engine) ParticleCount() int {
	n := 0
	for _, s := range e.slots {
		n += s.ensemble.Len()
	}
	return n
}

// ClosestPair finds the minimum-distance point pair between two contours.
func (e *Engine) ClosestPair(a, b imaging.Contour) track.Pair {
	return track.ClosestPair(a, b)
}

// ExtractContourAndPointSet derives the largest outer contour and sampled
// point set of a frame with explicit parameters, independent of the
// engine's configured extractor.
func (e *Engine) ExtractContourAndPointSet(frame *imaging.Frame, threshold uint8, stride int) (imaging.Contour, []image.Point) {
	ex := track.Extractor{Threshold: threshold, Stride: stride}
	_, contour, points := ex.Extract(frame)
	return contour, points
}

// Render composites every ensemble onto the owned canvas, cleared to the
// background first, and returns it. The canvas is reused across cycles;
// callers must not retain it. The pass is timed as the cycle's render
// phase.
func (e *Engine) Render() *imaging.Frame {
	start := time.Now()
	e.canvas.Clear(background)
	for _, s := range e.slots {
		s.ensemble.Draw(e.canvas)
	}
	if e.Perf != nil {
		e.Perf.AddPhase(telemetry.PhaseRender, time.Since(start))
	}
	return e.canvas
}

func (e *Engine) checkSlot(slot int) error {
	if slot < 0 || slot >= len(e.slots) {
		return fmt.Errorf("engine: slot %d out of range [0,%d)", slot, len(e.slots))
	}
	return nil
}
