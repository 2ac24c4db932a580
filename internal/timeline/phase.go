package timeline

import "time"

// Phase is a segment of the animation cycle.
type Phase int

const (
	Ball Phase = iota
	GroundToKey
	KeyJump
	KeyToDoor
)

// PhaseCount is the number of phases in a cycle.
const PhaseCount = 4

var (
	durations = [PhaseCount]time.Duration{
		5000 * time.Millisecond,
		4000 * time.Millisecond,
		2000 * time.Millisecond,
		3000 * time.Millisecond,
	}
	phaseNames = [PhaseCount]string{"ball", "ground_to_key", "key_jump", "key_to_door"}
)

// Duration is the nominal length of the phase.
func (p Phase) Duration() time.Duration {
	if p < 0 || p >= PhaseCount {
		return 0
	}
	return durations[p]
}

func (p Phase) String() string {
	if p < 0 || p >= PhaseCount {
		return "unknown"
	}
	return phaseNames[p]
}

// Next is the phase that follows p in the cycle.
func (p Phase) Next() Phase {
	return transitions[p].next
}

// Progress normalises elapsed time against a nominal duration into [0, 1].
func Progress(elapsed, nominal time.Duration) float64 {
	if nominal <= 0 || elapsed <= 0 {
		return 0
	}
	if elapsed >= nominal {
		return 1
	}
	return float64(elapsed) / float64(nominal)
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(name string) (Phase, bool) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), true
		}
	}
	return 0, false
}
