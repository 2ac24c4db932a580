package timeline

import (
	"time"

	"github.com/san-kum/asciikey/internal/camera"
	"github.com/san-kum/asciikey/internal/scene"
)

// Timeline binds a State to the registry it animates.
// It is not safe for concurrent use; the animation loop is its only caller.
type Timeline struct {
	reg   *scene.Registry
	state State
}

// New resets reg and starts a cycle at now.
func New(reg *scene.Registry, now time.Duration) *Timeline {
	return &Timeline{reg: reg, state: Reset(reg, now)}
}

func (t *Timeline) Advance(now time.Duration) State {
	t.state = Advance(t.state, t.reg, now)
	return t.state
}

func (t *Timeline) State() State { return t.state }

func (t *Timeline) CameraMode() camera.Mode { return t.state.Camera }

func (t *Timeline) Registry() *scene.Registry { return t.reg }
