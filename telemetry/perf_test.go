package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(4)

	p.StartCycle()
	p.StartPhase(PhaseExtract)
	time.Sleep(time.Millisecond)
	p.StartPhase(PhaseClosest)
	time.Sleep(time.Millisecond)
	d := p.EndCycle()

	if d <= 0 {
		t.Fatal("cycle duration not measured")
	}
	if p.Avg(PhaseExtract) <= 0 || p.Avg(PhaseClosest) <= 0 {
		t.Error("phase averages not recorded")
	}
	if p.Total() < p.Avg(PhaseExtract) {
		t.Error("total shorter than a single phase")
	}

	names := p.SortedNames()
	if len(names) != 2 || names[0] != PhaseClosest || names[1] != PhaseExtract {
		t.Errorf("SortedNames = %v", names)
	}
}

func TestPerfCollectorEmptyWindow(t *testing.T) {
	p := NewPerfCollector(8)
	if p.Total() != 0 || p.Avg(PhaseRender) != 0 {
		t.Error("empty collector should report zero durations")
	}
	if names := p.SortedNames(); len(names) != 0 {
		t.Errorf("SortedNames = %v, want empty", names)
	}
}

func TestPerfCollectorAddPhase(t *testing.T) {
	p := NewPerfCollector(4)

	// Before any cycle completes there is no sample to fold into.
	p.AddPhase(PhaseRender, 5*time.Millisecond)
	if p.Avg(PhaseRender) != 0 {
		t.Fatal("AddPhase recorded into an empty window")
	}

	p.StartCycle()
	p.StartPhase(PhaseSimulate)
	p.EndCycle()
	before := p.Total()

	p.AddPhase(PhaseRender, 5*time.Millisecond)
	if got := p.Avg(PhaseRender); got != 5*time.Millisecond {
		t.Errorf("Avg(render) = %v, want 5ms", got)
	}
	if p.Total() != before+5*time.Millisecond {
		t.Errorf("Total = %v, want %v", p.Total(), before+5*time.Millisecond)
	}

	names := p.SortedNames()
	if len(names) != 2 || names[0] != PhaseRender || names[1] != PhaseSimulate {
		t.Errorf("SortedNames = %v", names)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	p := NewPerfCollector(2)
	for i := 0; i < 5; i++ {
		p.StartCycle()
		p.StartPhase(PhaseSimulate)
		p.EndCycle()
	}
	// Only windowSize samples are retained.
	if p.sampleCount != 2 {
		t.Errorf("sampleCount = %d, want 2", p.sampleCount)
	}
}
