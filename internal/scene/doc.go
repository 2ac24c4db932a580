// Package scene holds the scene graph the animation manipulates.
//
// The set of named entities is declared once in a descriptor table
// ([Descriptors]) and built into a [Registry]. After construction the
// registry never gains or loses objects; the timeline only moves, scales,
// rotates, shows and hides them. Geometry is kept as wireframe meshes in
// each node's local space.
package scene
