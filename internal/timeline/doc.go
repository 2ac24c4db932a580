// Package timeline implements the phase state machine that animates the scene.
//
// The cycle runs four phases in a fixed order and wraps forever:
//
//   - [Ball]: the door folds open, then six balls are released one after
//     another and fly past the camera while the ground zooms out.
//   - [GroundToKey]: the ground shrinks away and the key grows in, turning
//     to face the camera; the view splits into front and top halves.
//   - [KeyJump]: the key jumps once; the hands appear on the way down.
//   - [KeyToDoor]: the key shrinks while the door grows back, then the whole
//     scene is reset and the cycle restarts at [Ball].
//
// All timeline state lives in a [State] value that [Advance] takes and
// returns, so tests can drive the machine with synthetic timestamps. The
// only side effect of Advance is mutating transforms and visibility of
// objects in the [scene.Registry]. Phase boundaries are declared in a
// transition table; each entry names the exit action, the next phase and
// its entry action.
//
// Easing is time based: progress is elapsed phase time over the nominal
// duration, clamped to [0, 1]. The door opening rate and ball speeds are
// per tick.
package timeline
