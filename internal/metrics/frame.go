package metrics

import (
	"github.com/san-kum/asciikey/internal/engine"
	"github.com/san-kum/asciikey/internal/scene"
)

// RenderFailures is the fraction of ticks that presented no frame.
type RenderFailures struct {
	name     string
	failures int
	samples  int
}

func NewRenderFailures() *RenderFailures {
	return &RenderFailures{name: "render_failures"}
}

func (r *RenderFailures) Name() string { return r.name }

func (r *RenderFailures) Observe(t engine.Tick) {
	r.samples++
	if t.Frame == nil {
		r.failures++
	}
}

func (r *RenderFailures) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.failures) / float64(r.samples)
}

func (r *RenderFailures) Reset() {
	r.failures = 0
	r.samples = 0
}

// KeyPeak is the highest the key rose above the ground.
type KeyPeak struct {
	name string
	peak float64
}

func NewKeyPeak() *KeyPeak {
	return &KeyPeak{name: "key_peak"}
}

func (k *KeyPeak) Name() string { return k.name }

func (k *KeyPeak) Observe(t engine.Tick) {
	key := t.Registry.MustGet(scene.Key)
	if !key.Visible {
		return
	}
	k.peak = max(k.peak, key.Transform.Position.Y-scene.GroundY)
}

func (k *KeyPeak) Value() float64 { return k.peak }

func (k *KeyPeak) Reset() { k.peak = 0 }
