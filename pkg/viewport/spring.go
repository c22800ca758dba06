package viewport

import "math"

// Spring constants tuned for the map feel; near critical damping so motion
// settles without visible oscillation.
const (
	springTension  = 170.0
	springFriction = 23.0

	// settleEpsilon bounds both displacement and velocity below which a spring
	// snaps to its target.
	settleEpsilon = 1e-4
)

// spring relaxes a single scalar toward a target. Gesture recognition only ever
// moves the target; the integration step is the sole writer of value/velocity,
// which keeps cancellation and override semantics deterministic.
type spring struct {
	value    float64
	velocity float64
	target   float64
}

// step advances the spring by dt seconds using semi-implicit Euler.
func (s *spring) step(dt float64) {
	accel := -springTension*(s.value-s.target) - springFriction*s.velocity
	s.velocity += accel * dt
	s.value += s.velocity * dt

	if s.settled() {
		s.value = s.target
		s.velocity = 0
	}
}

func (s *spring) settled() bool {
	return math.Abs(s.value-s.target) < settleEpsilon && math.Abs(s.velocity) < settleEpsilon
}

// jump snaps the spring to v without animation.
func (s *spring) jump(v float64) {
	s.value = v
	s.target = v
	s.velocity = 0
}
