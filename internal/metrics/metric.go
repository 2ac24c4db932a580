// Package metrics summarises a run of the animation loop.
package metrics

import (
	"github.com/san-kum/asciikey/internal/engine"
	"github.com/san-kum/asciikey/internal/timeline"
)

type Metric interface {
	Name() string
	Observe(t engine.Tick)
	Value() float64
	Reset()
}

// Set fans ticks out to several metrics. It is an engine.Observer.
type Set []Metric

// Default is the set stored with every trace.
func Default() Set {
	s := Set{NewCycleTime(), NewRenderFailures(), NewKeyPeak()}
	for p := range timeline.Phase(timeline.PhaseCount) {
		s = append(s, NewPhaseTime(p))
	}
	return s
}

func (s Set) OnTick(t engine.Tick) {
	for _, m := range s {
		m.Observe(t)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

func ms(t engine.Tick) float64 {
	return float64(t.Now.Microseconds()) / 1000
}
