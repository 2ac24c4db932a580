// Package render turns the scene graph into a character frame.
//
// A [Rasterizer] projects every visible wireframe through a look-at
// perspective camera into a sub-cell luminance raster with a depth test,
// then an [Effect] folds each cell's samples into one character: either a
// brightness ramp (the ASCII effect) or a braille dot pattern. Each call
// to Render only touches its placement's viewport, so a split view is
// two renders into two halves of the same [Surface].
package render
