// Package telemetry collects per-cycle performance and tracking statistics
// and writes windowed aggregates to CSV for later analysis.
package telemetry

import (
	"log/slog"
	"sort"
	"time"
)

// Phase names for the engine cycle.
const (
	PhaseExtract  = "extract"
	PhaseClosest  = "closest_pair"
	PhaseSimulate = "simulate"
	PhaseRender   = "render"
)

// PerfSample holds timing data for a single cycle.
type PerfSample struct {
	CycleDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks phase timings over a rolling window of cycles.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	currentPhases map[string]time.Duration
	cycleStart    time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a collector averaging over windowSize cycles.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartCycle begins timing a new engine cycle.
func (p *PerfCollector) StartCycle() {
	p.cycleStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a phase, closing the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndCycle closes the final phase and records the sample, returning the
// cycle's total duration.
func (p *PerfCollector) EndCycle() time.Duration {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	d := now.Sub(p.cycleStart)
	p.samples[p.writeIndex] = PerfSample{CycleDuration: d, Phases: p.currentPhases}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	return d
}

// AddPhase folds a duration measured outside the cycle bracket into the
// most recently recorded sample; the render pass runs after EndCycle. Must
// be called before the next StartCycle. No-op when no cycle completed yet.
func (p *PerfCollector) AddPhase(phase string, d time.Duration) {
	if p.sampleCount == 0 {
		return
	}
	last := (p.writeIndex + p.windowSize - 1) % p.windowSize
	p.samples[last].Phases[phase] += d
	p.samples[last].CycleDuration += d
}

// Total returns the mean cycle duration over the window.
func (p *PerfCollector) Total() time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sum += p.samples[i].CycleDuration
	}
	return sum / time.Duration(p.sampleCount)
}

// Avg returns the mean duration of one phase over the window.
func (p *PerfCollector) Avg(phase string) time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sum += p.samples[i].Phases[phase]
	}
	return sum / time.Duration(p.sampleCount)
}

// SortedNames returns every phase seen in the window, alphabetically.
func (p *PerfCollector) SortedNames() []string {
	seen := make(map[string]bool)
	for i := 0; i < p.sampleCount; i++ {
		for name := range p.samples[i].Phases {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LogSummary emits the window averages via slog.
func (p *PerfCollector) LogSummary(cycle int64) {
	attrs := []any{"cycle", cycle, "cycle_avg", p.Total().Round(time.Microsecond).String()}
	for _, name := range p.SortedNames() {
		attrs = append(attrs, name, p.Avg(name).Round(time.Microsecond).String())
	}
	slog.Info("perf window", attrs...)
}
