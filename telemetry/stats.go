package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated tracking statistics for one stats window.
type WindowStats struct {
	WindowEndCycle int64   `csv:"window_end"`
	WallTimeSec    float64 `csv:"wall_time"`

	Cycles int `csv:"cycles"`

	// Interference events during the window, by selected effect.
	Interferences  int `csv:"interferences"`
	PushEffects    int `csv:"push_effects"`
	BreakEffects   int `csv:"break_effects"`
	ExplodeEffects int `csv:"explode_effects"`

	// Cycles spent with at least one ensemble animating.
	AnimatingCycles int `csv:"animating_cycles"`

	// Particle population at window end.
	Particles int `csv:"particles"`

	// Closest-pair distance distribution over cycles that produced one.
	DistMean float64 `csv:"dist_mean"`
	DistMin  float64 `csv:"dist_min"`

	// Cycle duration distribution in milliseconds.
	CycleMeanMs float64 `csv:"cycle_mean_ms"`
	CycleStdMs  float64 `csv:"cycle_std_ms"`
	CycleP50Ms  float64 `csv:"cycle_p50_ms"`
	CycleP90Ms  float64 `csv:"cycle_p90_ms"`
}

// LogStats emits the window's aggregates via slog.
func (ws WindowStats) LogStats() {
	slog.Info("stats window",
		"cycle", ws.WindowEndCycle,
		"cycles", ws.Cycles,
		"interferences", ws.Interferences,
		"push", ws.PushEffects,
		"break", ws.BreakEffects,
		"explode", ws.ExplodeEffects,
		"animating_cycles", ws.AnimatingCycles,
		"particles", ws.Particles,
		"dist_mean", ws.DistMean,
		"dist_min", ws.DistMin,
		"cycle_mean_ms", ws.CycleMeanMs,
		"cycle_p90_ms", ws.CycleP90Ms,
	)
}

// Percentile calculates the p-th percentile of a sorted slice by linear
// interpolation. p is in [0, 1]. Returns 0 for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeCycleStats calculates mean, standard deviation and percentiles of
// cycle durations (milliseconds).
func ComputeCycleStats(ms []float64) (mean, std, p50, p90 float64) {
	if len(ms) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(ms, nil)
	if len(ms) > 1 {
		std = stat.StdDev(ms, nil)
	}

	sorted := make([]float64, len(ms))
	copy(sorted, ms)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}
