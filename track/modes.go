package track

import (
	"math/rand"

	"github.com/kinetiklab/silhouette/particle"
)

// State is the phase of the interference state machine for a tracked pair.
type State int

const (
	// StateTracking repopulates ensembles from fresh point sets each cycle.
	StateTracking State = iota
	// StateInterfering is the transient phase entered when the closest-pair
	// distance drops below the threshold; an effect kind has been selected.
	StateInterfering
	// StateAnimating steps the triggered ensembles, skipping repopulation.
	StateAnimating
)

// String returns the state's name for logs.
func (s State) String() string {
	switch s {
	case StateTracking:
		return "tracking"
	case StateInterfering:
		return "interfering"
	case StateAnimating:
		return "animating"
	}
	return "unknown"
}

// Detector compares closest-pair distances to the interference threshold
// and drives the Tracking / Interfering / Animating transitions. Effect
// selection uses the injected random source so runs are reproducible.
type Detector struct {
	threshold float64
	rng       *rand.Rand
	state     State
}

// NewDetector creates a detector in the Tracking state.
func NewDetector(threshold float64, rng *rand.Rand) *Detector {
	return &Detector{threshold: threshold, rng: rng}
}

// State returns the current state.
func (d *Detector) State() State { return d.state }

// SetThreshold updates the interference distance threshold.
func (d *Detector) SetThreshold(t float64) { d.threshold = t }

// Threshold returns the interference distance threshold.
func (d *Detector) Threshold() float64 { return d.threshold }

// Observe consumes one cycle's closest-pair result. While tracking, a found
// pair closer than the threshold transitions to Interfering and selects the
// effect kind for the triggered ensembles; the sentinel pair of an empty
// contour never triggers. Returns whether interference fired this cycle.
func (d *Detector) Observe(p Pair) (bool, particle.Kind) {
	if d.state != StateTracking {
		return false, particle.KindPush
	}
	if !p.Found || p.Dist >= d.threshold {
		return false, particle.KindPush
	}
	d.state = StateInterfering
	return true, particle.RandomKind(d.rng)
}

// Animate records that effect playback started.
func (d *Detector) Animate() {
	if d.state == StateInterfering {
		d.state = StateAnimating
	}
}

// Resolve informs the detector whether any triggered ensemble is still
// animating; once none is, tracking resumes.
func (d *Detector) Resolve(stillAnimating bool) {
	if d.state == StateAnimating && !stillAnimating {
		d.state = StateTracking
	}
}

// Advance forces an immediate return to Tracking, the external
// advance-source signal (a key press in the installation).
func (d *Detector) Advance() {
	d.state = StateTracking
}
