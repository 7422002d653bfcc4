package engine

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/kinetiklab/silhouette/imaging"
	"github.com/kinetiklab/silhouette/particle"
	"github.com/kinetiklab/silhouette/telemetry"
	"github.com/kinetiklab/silhouette/track"
)

// Result reports what one cycle observed and decided.
type Result struct {
	Pair      track.Pair
	State     track.State
	Triggered bool
	Kind      particle.Kind
}

// Cycle runs one full engine cycle over per-slot frame snapshots: (1)
// per-slot mask/contour/point-set extraction, (2) chunked closest-pair
// search, (3) per-ensemble populate or step. Phases are joined in order;
// units within a phase run concurrently and touch disjoint state. A failed
// cycle leaves every ensemble as the previous cycle left it.
//
// The pointer is the mouse position: the second object in pointer mode and
// the push target in single mode. Frames must match the canvas size and
// are not mutated.
func (e *Engine) Cycle(frames []*imaging.Frame, pointer image.Point) (Result, error) {
	if len(frames) != len(e.slots) {
		return Result{}, fmt.Errorf("engine: %d frames for %d slots", len(frames), len(e.slots))
	}
	for i, f := range frames {
		if f == nil {
			return Result{}, fmt.Errorf("engine: nil frame for slot %d", i)
		}
		if f.W != e.opts.Width || f.H != e.opts.Height {
			return Result{}, fmt.Errorf("engine: slot %d frame %dx%d does not match canvas %dx%d",
				i, f.W, f.H, e.opts.Width, e.opts.Height)
		}
	}

	cycleStart := time.Now()
	if e.Perf != nil {
		e.Perf.StartCycle()
		e.Perf.StartPhase(telemetry.PhaseExtract)
	}

	// Phase 1: extraction, one unit per slot.
	e.extractAll(frames)

	if e.Perf != nil {
		e.Perf.StartPhase(telemetry.PhaseClosest)
	}

	// Phase 2: closest pair between the tracked contours.
	pair := e.measure(pointer)

	// Interference decision. A trigger cycle still repopulates below; the
	// fresh particles are the ones the effect plays out on, and stepping
	// begins next cycle.
	res := Result{Pair: pair}
	if e.opts.Mode != ModeSingle {
		res.Triggered, res.Kind = e.detector.Observe(pair)
	}

	if e.Perf != nil {
		e.Perf.StartPhase(telemetry.PhaseSimulate)
	}

	// Phase 3: populate or step, one unit per slot.
	drive := e.drivePoint(pair, pointer)
	if err := e.simulateAll(frames, drive); err != nil {
		return Result{}, err
	}

	if res.Triggered {
		for _, s := range e.slots {
			s.ensemble.SetEffect(res.Kind)
			s.ensemble.SetAnimating(true)
		}
		e.detector.Animate()
	}

	// Animation resolves once every ensemble settles.
	anyAnimating := false
	for _, s := range e.slots {
		if s.ensemble.Animating() {
			anyAnimating = true
			break
		}
	}
	e.detector.Resolve(anyAnimating)
	res.State = e.detector.State()

	e.cycle++
	d := time.Since(cycleStart)
	if e.Perf != nil {
		d = e.Perf.EndCycle()
	}
	if e.Stats != nil {
		e.Stats.RecordCycle(d, e.ParticleCount(), anyAnimating)
		if pair.Found {
			e.Stats.RecordDistance(pair.Dist)
		}
		if res.Triggered {
			e.Stats.RecordInterference(res.Kind)
		}
	}
	return res, nil
}

// extractAll recomputes every slot's contour and point set concurrently.
// Frames are read-only snapshots, so units share them safely.
func (e *Engine) extractAll(frames []*imaging.Frame) {
	if len(e.slots) == 1 {
		_, e.slots[0].contour, e.slots[0].points = e.extractor.Extract(frames[0])
		return
	}
	var wg sync.WaitGroup
	for i := range e.slots {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, e.slots[i].contour, e.slots[i].points = e.extractor.Extract(frames[i])
		}(i)
	}
	wg.Wait()
}

// measure produces this cycle's closest pair according to the run mode.
func (e *Engine) measure(pointer image.Point) track.Pair {
	switch e.opts.Mode {
	case ModeDual:
		return track.ClosestPair(e.slots[0].contour, e.slots[1].contour)
	case ModePointer:
		return track.ClosestPair(e.slots[0].contour, imaging.Contour{pointer})
	default:
		return track.Pair{}
	}
}

// drivePoint picks the shared drive point for phase 3: the midpoint of the
// closest pair when one exists, otherwise the pointer.
func (e *Engine) drivePoint(pair track.Pair, pointer image.Point) image.Point {
	if e.opts.Mode == ModeDual && pair.Found {
		return image.Pt((pair.P1.X+pair.P2.X)/2, (pair.P1.Y+pair.P2.Y)/2)
	}
	return pointer
}

// simulateAll advances every slot concurrently: animating ensembles step,
// tracking ensembles repopulate from the fresh point set. Each unit owns
// its slot exclusively. In single mode the ensemble populates once and is
// driven by the pointer from then on.
func (e *Engine) simulateAll(frames []*imaging.Frame, drive image.Point) error {
	errs := make([]error, len(e.slots))
	var wg sync.WaitGroup
	for i := range e.slots {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := e.slots[i]
			switch {
			case e.opts.Mode == ModeSingle && s.ensemble.Len() > 0:
				s.ensemble.Step(drive)
			case s.ensemble.Animating():
				s.ensemble.Step(drive)
			default:
				errs[i] = s.ensemble.Populate(frames[i], s.points)
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("engine: slot %d: %w", i, err)
		}
	}
	return nil
}

// Step advances every ensemble one tick with the shared drive point,
// independent of the cycle pipeline. Ensembles step concurrently; they
// have no cross-ensemble data dependency.
func (e *Engine) Step(drive image.Point) {
	var wg sync.WaitGroup
	for i := range e.slots {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e.slots[i].ensemble.Step(drive)
		}(i)
	}
	wg.Wait()
}
