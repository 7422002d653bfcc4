package particle

import "math/rand"

// Kind identifies a particle update rule.
type Kind int

const (
	// KindPush repels particles near the drive point; they settle back home.
	KindPush Kind = iota
	// KindBreak drops particles to the floor under gravity.
	KindBreak
	// KindExplosion flings particles away from the drive point.
	KindExplosion

	numKinds
)

// String returns the kind's name for logs and telemetry.
func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindBreak:
		return "break"
	case KindExplosion:
		return "explosion"
	}
	return "unknown"
}

// Effect selects an ensemble's update rule. RadiusSq is the squared
// influence radius and applies to Push only; the push target and explosion
// center are supplied per step as the drive point.
type Effect struct {
	Kind     Kind
	RadiusSq float64
}

// RandomKind draws a uniformly distributed effect kind from the injected
// source. Exactly the three defined kinds are reachable.
func RandomKind(rng *rand.Rand) Kind {
	return Kind(rng.Intn(int(numKinds)))
}
