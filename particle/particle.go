// Package particle implements the physics-driven particle ensembles that
// represent tracked objects. Each ensemble owns an ordered particle list;
// particles carry an immutable home position they settle back to, and
// advance under one of three update rules: Push, Break or Explosion.
package particle

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/kinetiklab/silhouette/imaging"
)

// Update rule constants. Push and Break follow the installation's tuned
// values; Explosion constants are documented here because the force falls
// off as explosionForce/distance and the resulting speed is capped.
const (
	pushDamping = 0.80
	homeBlend   = 0.05
	restEpsilon = 1.0

	gravity      = 0.5
	breakJitter  = 0.5
	breakDamping = 0.98
	floorOffset  = 20.0

	explosionForce    = 500.0
	explosionSpeedCap = 20.0
	explosionDamping  = 0.90
	angularJitter     = 0.2

	fadeFactor = 0.98
)

// Particle is a single simulated unit. The home position never changes
// after creation; position and velocity evolve per step.
type Particle struct {
	home   image.Point
	x, y   float64
	vx, vy float64
	size   int
	color  color.RGBA
	atRest bool
}

// New creates a particle at its home position with zero velocity.
func New(home image.Point, size int, col color.RGBA) Particle {
	return Particle{
		home:  home,
		x:     float64(home.X),
		y:     float64(home.Y),
		size:  size,
		color: col,
	}
}

// Home returns the particle's immutable home position.
func (p *Particle) Home() image.Point { return p.home }

// Pos returns the current position.
func (p *Particle) Pos() (x, y float64) { return p.x, p.y }

// AtRest reports whether the particle has converged to its home position.
func (p *Particle) AtRest() bool { return p.atRest }

// Color returns the particle's current color.
func (p *Particle) Color() color.RGBA { return p.color }

// Step advances the particle one tick under the given effect. The drive
// point is the push target or explosion center. Only Push can reach the
// at-rest state; Break and Explosion run until the ensemble is reset.
func (p *Particle) Step(e Effect, drive image.Point, w, h float64, rng *rand.Rand, fade bool) {
	switch e.Kind {
	case KindPush:
		p.stepPush(drive, e.RadiusSq, w, h)
	case KindBreak:
		p.stepBreak(w, h, rng)
	case KindExplosion:
		p.stepExplosion(drive, w, h, rng)
	}
	if fade {
		p.color.R = uint8(float64(p.color.R) * fadeFactor)
		p.color.G = uint8(float64(p.color.G) * fadeFactor)
		p.color.B = uint8(float64(p.color.B) * fadeFactor)
	}
}

// stepPush repels the particle from the drive point while blending it back
// toward home. The impulse fires only inside the squared influence radius.
func (p *Particle) stepPush(drive image.Point, radiusSq, w, h float64) {
	dx := float64(drive.X) - p.x
	dy := float64(drive.Y) - p.y
	distSq := dx*dx + dy*dy

	if distSq > 0 && distSq < radiusSq {
		force := -radiusSq / distSq
		ang := math.Atan2(dy, dx)
		p.vx += force * math.Cos(ang)
		p.vy += force * math.Sin(ang)
	}

	p.vx *= pushDamping
	p.vy *= pushDamping

	p.x += (float64(p.home.X)-p.x)*homeBlend + p.vx
	p.y += (float64(p.home.Y)-p.y)*homeBlend + p.vy
	p.clamp(w, h)

	if math.Abs(float64(p.home.X)-p.x) < restEpsilon &&
		math.Abs(float64(p.home.Y)-p.y) < restEpsilon {
		p.x = float64(p.home.X)
		p.y = float64(p.home.Y)
		p.atRest = true
	} else {
		p.atRest = false
	}
}

// stepBreak drops the particle under gravity with a little horizontal
// scatter, stopping at a floor just above the bottom edge.
func (p *Particle) stepBreak(w, h float64, rng *rand.Rand) {
	p.vy += gravity
	p.vx += (rng.Float64() - 0.5) * 2 * breakJitter
	p.vx *= breakDamping
	p.vy *= breakDamping
	p.x += p.vx
	p.y += p.vy

	if floor := h - floorOffset; p.y > floor {
		p.y = floor
		p.vy = 0
	}
	p.clamp(w, h)
	p.atRest = false
}

// stepExplosion flings the particle away from the center with randomized
// force and a slight angular scatter, capping the resulting speed.
func (p *Particle) stepExplosion(center image.Point, w, h float64, rng *rand.Rand) {
	dx := p.x - float64(center.X)
	dy := p.y - float64(center.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1.0 {
		dist = 1.0
	}
	force := explosionForce / dist
	scale := 0.5 + rng.Float64()
	ang := math.Atan2(dy, dx) + (rng.Float64()-0.5)*angularJitter

	p.vx += force * scale * math.Cos(ang)
	p.vy += force * scale * math.Sin(ang)

	if speed := math.Hypot(p.vx, p.vy); speed > explosionSpeedCap {
		k := explosionSpeedCap / speed
		p.vx *= k
		p.vy *= k
	}

	p.vx *= explosionDamping
	p.vy *= explosionDamping
	p.x += p.vx
	p.y += p.vy
	p.clamp(w, h)
	p.atRest = false
}

// clamp keeps the particle inside [0,w] x [0,h].
func (p *Particle) clamp(w, h float64) {
	if p.x < 0 {
		p.x = 0
	}
	if p.y < 0 {
		p.y = 0
	}
	if p.x > w {
		p.x = w
	}
	if p.y > h {
		p.y = h
	}
}

// Draw renders the particle as a filled square of its size at its
// truncated integer position.
func (p *Particle) Draw(f *imaging.Frame) {
	f.FillRect(int(p.x), int(p.y), p.size, p.size, p.color)
}
