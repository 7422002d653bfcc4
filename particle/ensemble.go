package particle

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/kinetiklab/silhouette/imaging"
)

// Ensemble is the particle population representing one tracked object.
// The particle list is exclusively owned: only one operation touches an
// ensemble at a time, and Populate replaces the list atomically.
type Ensemble struct {
	particles []Particle
	effect    Effect
	animating bool

	w, h float64
	size int
	fade bool
	rng  *rand.Rand
}

// NewEnsemble creates an empty ensemble for a canvas of the given size.
// Each ensemble carries its own random source so concurrent stepping never
// shares generator state.
func NewEnsemble(w, h, particleSize int, pushRadiusSq float64, fade bool, rng *rand.Rand) *Ensemble {
	return &Ensemble{
		effect: Effect{Kind: KindPush, RadiusSq: pushRadiusSq},
		w:      float64(w),
		h:      float64(h),
		size:   particleSize,
		fade:   fade,
		rng:    rng,
	}
}

// Populate stages one particle per point, sampling its color from the frame
// at that exact point, then atomically replaces the particle list and
// clears the animating flag. The points must originate from the same frame;
// a sampling failure leaves the ensemble untouched.
func (e *Ensemble) Populate(frame *imaging.Frame, points []image.Point) error {
	staged := make([]Particle, 0, len(points))
	for _, pt := range points {
		col, err := frame.ColorAt(pt.X, pt.Y)
		if err != nil {
			return fmt.Errorf("particle: populate: %w", err)
		}
		staged = append(staged, New(pt, e.size, col))
	}
	e.particles = staged
	e.animating = false
	return nil
}

// Step advances every particle one tick using the configured effect and the
// shared drive point, then recomputes the animating flag: any-not-at-rest
// for Push, unchanged for Break and Explosion.
func (e *Ensemble) Step(drive image.Point) {
	for i := range e.particles {
		e.particles[i].Step(e.effect, drive, e.w, e.h, e.rng, e.fade)
	}
	if e.effect.Kind == KindPush {
		settled := true
		for i := range e.particles {
			if !e.particles[i].atRest {
				settled = false
				break
			}
		}
		e.animating = !settled
	}
}

// SetEffect configures the ensemble's update rule.
func (e *Ensemble) SetEffect(kind Kind) {
	e.effect.Kind = kind
}

// Effect returns the configured effect.
func (e *Ensemble) Effect() Effect { return e.effect }

// SetFade enables or disables color fading while animating.
func (e *Ensemble) SetFade(v bool) {
	e.fade = v
}

// SetAnimating forces the animating flag.
func (e *Ensemble) SetAnimating(v bool) {
	e.animating = v
}

// Animating reports whether the ensemble is mid-effect.
func (e *Ensemble) Animating() bool { return e.animating }

// Len returns the particle count.
func (e *Ensemble) Len() int { return len(e.particles) }

// Particles exposes the particle list for inspection. Callers must not
// retain it across a Populate.
func (e *Ensemble) Particles() []Particle { return e.particles }

// Draw composites every particle onto the frame.
func (e *Ensemble) Draw(f *imaging.Frame) {
	for i := range e.particles {
		e.particles[i].Draw(f)
	}
}
