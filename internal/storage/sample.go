package storage

import (
	"fmt"
	"sort"

	"github.com/san-kum/asciikey/internal/engine"
	"github.com/san-kum/asciikey/internal/scene"
	"github.com/san-kum/asciikey/internal/timeline"
)

// Sample is the observable state of one tick.
type Sample struct {
	TimeMS       float64        `json:"time_ms"`
	Cycle        int            `json:"cycle"`
	Phase        timeline.Phase `json:"phase"`
	Progress     float64        `json:"progress"`
	Split        bool           `json:"split"`
	KeyY         float64        `json:"key_y"`
	KeyScale     float64        `json:"key_scale"`
	GroundScale  float64        `json:"ground_scale"`
	DoorScale    float64        `json:"door_scale"`
	DoorVisible  bool           `json:"door_visible"`
	BallsVisible int            `json:"balls_visible"`
	HandsVisible bool           `json:"hands_visible"`
}

// SampleOf reads a sample from a completed tick.
func SampleOf(t engine.Tick) Sample {
	reg := t.Registry
	key, door := reg.MustGet(scene.Key), reg.MustGet(scene.Door)
	s := Sample{
		TimeMS:       float64(t.Now.Microseconds()) / 1000,
		Cycle:        t.State.Cycle,
		Phase:        t.State.Phase,
		Progress:     t.State.Progress,
		Split:        len(t.Placements) > 1,
		KeyY:         key.Transform.Position.Y,
		KeyScale:     key.Transform.Scale.X,
		GroundScale:  reg.MustGet(scene.Ground).Transform.Scale.X,
		DoorScale:    door.Transform.Scale.X,
		DoorVisible:  door.Visible,
		HandsVisible: reg.MustGet(scene.HandLeft).Visible,
	}
	for _, id := range scene.BallIDs {
		if reg.MustGet(id).Visible {
			s.BallsVisible++
		}
	}
	return s
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var channels = map[string]func(Sample) float64{
	"cycle":         func(s Sample) float64 { return float64(s.Cycle) },
	"phase":         func(s Sample) float64 { return float64(s.Phase) },
	"progress":      func(s Sample) float64 { return s.Progress },
	"split":         func(s Sample) float64 { return boolf(s.Split) },
	"key_y":         func(s Sample) float64 { return s.KeyY },
	"key_scale":     func(s Sample) float64 { return s.KeyScale },
	"ground_scale":  func(s Sample) float64 { return s.GroundScale },
	"door_scale":    func(s Sample) float64 { return s.DoorScale },
	"door_visible":  func(s Sample) float64 { return boolf(s.DoorVisible) },
	"balls_visible": func(s Sample) float64 { return float64(s.BallsVisible) },
	"hands_visible": func(s Sample) float64 { return boolf(s.HandsVisible) },
}

// Channels lists the plottable sample columns.
func Channels() []string {
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Channel extracts one named column from samples.
func Channel(samples []Sample, name string) ([]float64, error) {
	get, ok := channels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = get(s)
	}
	return out, nil
}

// Recorder collects a sample on every tick.
type Recorder struct {
	Samples []Sample
}

func (r *Recorder) OnTick(t engine.Tick) {
	r.Samples = append(r.Samples, SampleOf(t))
}
