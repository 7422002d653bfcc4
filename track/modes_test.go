package track

import (
	"image"
	"math/rand"
	"testing"

	"github.com/kinetiklab/silhouette/particle"
)

func foundPair(dist float64) Pair {
	return Pair{P1: image.Pt(0, 0), P2: image.Pt(int(dist), 0), Dist: dist, Found: true}
}

func TestDetectorTriggersBelowThreshold(t *testing.T) {
	tests := []struct {
		name   string
		thresh float64
		pair   Pair
		fired  bool
	}{
		{"well below", 100, foundPair(20), true},
		{"above", 100, foundPair(113.14), false},
		{"just below", 120, foundPair(113.14), true},
		{"exactly at threshold", 100, foundPair(100), false},
		{"sentinel", 100, Pair{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector(tt.thresh, rand.New(rand.NewSource(3)))
			fired, _ := d.Observe(tt.pair)
			if fired != tt.fired {
				t.Errorf("Observe fired=%v, want %v", fired, tt.fired)
			}
			wantState := StateTracking
			if tt.fired {
				wantState = StateInterfering
			}
			if d.State() != wantState {
				t.Errorf("state = %v, want %v", d.State(), wantState)
			}
		})
	}
}

func TestDetectorEffectSelectionDeterministic(t *testing.T) {
	kinds1 := observedKinds(rand.New(rand.NewSource(99)))
	kinds2 := observedKinds(rand.New(rand.NewSource(99)))
	for i := range kinds1 {
		if kinds1[i] != kinds2[i] {
			t.Fatalf("selection %d differs under identical seeds: %v vs %v", i, kinds1[i], kinds2[i])
		}
	}
}

func observedKinds(rng *rand.Rand) []particle.Kind {
	var kinds []particle.Kind
	for i := 0; i < 10; i++ {
		d := NewDetector(100, rng)
		_, k := d.Observe(foundPair(5))
		kinds = append(kinds, k)
	}
	return kinds
}

func TestDetectorFullTransitionCycle(t *testing.T) {
	d := NewDetector(50, rand.New(rand.NewSource(5)))

	// Tracking: far pairs do nothing.
	if fired, _ := d.Observe(foundPair(80)); fired {
		t.Fatal("fired above threshold")
	}

	// Trigger.
	fired, kind := d.Observe(foundPair(10))
	if !fired {
		t.Fatal("did not fire below threshold")
	}
	if kind != particle.KindPush && kind != particle.KindBreak && kind != particle.KindExplosion {
		t.Fatalf("selected kind %v out of range", kind)
	}
	if d.State() != StateInterfering {
		t.Fatalf("state = %v, want interfering", d.State())
	}

	// Interfering observes nothing further.
	if fired, _ := d.Observe(foundPair(1)); fired {
		t.Error("re-fired while interfering")
	}

	// Playback starts; stays animating while ensembles run.
	d.Animate()
	if d.State() != StateAnimating {
		t.Fatalf("state = %v, want animating", d.State())
	}
	d.Resolve(true)
	if d.State() != StateAnimating {
		t.Error("resolved early while still animating")
	}

	// All ensembles settled: back to tracking.
	d.Resolve(false)
	if d.State() != StateTracking {
		t.Errorf("state = %v, want tracking", d.State())
	}
}

func TestDetectorAdvanceSignal(t *testing.T) {
	d := NewDetector(50, rand.New(rand.NewSource(5)))
	d.Observe(foundPair(10))
	d.Animate()

	// External advance signal cuts the animation short.
	d.Advance()
	if d.State() != StateTracking {
		t.Errorf("state = %v, want tracking after advance", d.State())
	}
}
