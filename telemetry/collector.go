package telemetry

import (
	"math"
	"time"

	"github.com/kinetiklab/silhouette/particle"
)

// Collector accumulates per-cycle events and rolls them into WindowStats
// every windowCycles cycles.
type Collector struct {
	windowCycles int
	start        time.Time

	cycles          int
	interferences   int
	effectCounts    [3]int
	animatingCycles int
	particles       int

	distSum   float64
	distMin   float64
	distCount int

	cycleMs []float64
}

// NewCollector creates a collector emitting a window every windowCycles.
func NewCollector(windowCycles int) *Collector {
	if windowCycles < 1 {
		windowCycles = 60
	}
	return &Collector{
		windowCycles: windowCycles,
		start:        time.Now(),
		distMin:      math.MaxFloat64,
		cycleMs:      make([]float64, 0, windowCycles),
	}
}

// RecordCycle records one completed cycle.
func (c *Collector) RecordCycle(d time.Duration, particles int, animating bool) {
	c.cycles++
	c.particles = particles
	if animating {
		c.animatingCycles++
	}
	c.cycleMs = append(c.cycleMs, float64(d)/float64(time.Millisecond))
}

// RecordDistance records a cycle's closest-pair distance.
func (c *Collector) RecordDistance(d float64) {
	c.distSum += d
	if d < c.distMin {
		c.distMin = d
	}
	c.distCount++
}

// RecordInterference records an interference trigger and its effect kind.
func (c *Collector) RecordInterference(kind particle.Kind) {
	c.interferences++
	if int(kind) < len(c.effectCounts) {
		c.effectCounts[kind]++
	}
}

// WindowFull reports whether enough cycles accumulated to emit a window.
func (c *Collector) WindowFull() bool {
	return c.cycles >= c.windowCycles
}

// Flush produces the window's stats and resets the accumulators.
func (c *Collector) Flush(cycle int64) WindowStats {
	mean, std, p50, p90 := ComputeCycleStats(c.cycleMs)

	ws := WindowStats{
		WindowEndCycle:  cycle,
		WallTimeSec:     time.Since(c.start).Seconds(),
		Cycles:          c.cycles,
		Interferences:   c.interferences,
		PushEffects:     c.effectCounts[particle.KindPush],
		BreakEffects:    c.effectCounts[particle.KindBreak],
		ExplodeEffects:  c.effectCounts[particle.KindExplosion],
		AnimatingCycles: c.animatingCycles,
		Particles:       c.particles,
		CycleMeanMs:     mean,
		CycleStdMs:      std,
		CycleP50Ms:      p50,
		CycleP90Ms:      p90,
	}
	if c.distCount > 0 {
		ws.DistMean = c.distSum / float64(c.distCount)
		ws.DistMin = c.distMin
	}

	c.cycles = 0
	c.interferences = 0
	c.effectCounts = [3]int{}
	c.animatingCycles = 0
	c.distSum, c.distCount = 0, 0
	c.distMin = math.MaxFloat64
	c.cycleMs = c.cycleMs[:0]

	return ws
}
