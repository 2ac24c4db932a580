package metrics

import (
	"github.com/san-kum/asciikey/internal/engine"
	"github.com/san-kum/asciikey/internal/timeline"
)

// CycleTime is the mean length of completed cycles in milliseconds.
type CycleTime struct {
	name    string
	started bool
	cycle   int
	start   float64
	sum     float64
	count   int
}

func NewCycleTime() *CycleTime {
	return &CycleTime{name: "cycle_ms"}
}

func (c *CycleTime) Name() string { return c.name }

func (c *CycleTime) Observe(t engine.Tick) {
	now := ms(t)
	if !c.started {
		c.started, c.cycle, c.start = true, t.State.Cycle, now
		return
	}
	if t.State.Cycle != c.cycle {
		c.sum += now - c.start
		c.count++
		c.cycle, c.start = t.State.Cycle, now
	}
}

func (c *CycleTime) Value() float64 {
	if c.count == 0 {
		return 0
	}
	return c.sum / float64(c.count)
}

func (c *CycleTime) Reset() {
	*c = CycleTime{name: c.name}
}

// PhaseTime is the mean time spent in one phase, over completed visits.
type PhaseTime struct {
	name  string
	phase timeline.Phase
	in    bool
	start float64
	sum   float64
	count int
}

func NewPhaseTime(p timeline.Phase) *PhaseTime {
	return &PhaseTime{name: p.String() + "_ms", phase: p}
}

func (p *PhaseTime) Name() string { return p.name }

func (p *PhaseTime) Observe(t engine.Tick) {
	now := ms(t)
	switch {
	case t.State.Phase == p.phase && !p.in:
		p.in, p.start = true, now
	case t.State.Phase != p.phase && p.in:
		p.in = false
		p.sum += now - p.start
		p.count++
	}
}

func (p *PhaseTime) Value() float64 {
	if p.count == 0 {
		return 0
	}
	return p.sum / float64(p.count)
}

func (p *PhaseTime) Reset() {
	*p = PhaseTime{name: p.name, phase: p.phase}
}
