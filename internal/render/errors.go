package render

import "errors"

var (
	// ErrNoSurface indicates the output surface has zero area.
	ErrNoSurface = errors.New("render: output surface has zero area")

	// ErrViewport indicates a placement viewport outside the output surface.
	ErrViewport = errors.New("render: viewport outside the output surface")

	// ErrEffect indicates an unknown or misconfigured effect.
	ErrEffect = errors.New("render: invalid effect")
)
