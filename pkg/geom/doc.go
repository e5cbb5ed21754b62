// Package geom provides the 2D primitives shared by the layout engine and the
// renderers: points, angles and bounding boxes in drawing units.
//
// Coordinates follow the mathematical convention: x grows to the right and y
// grows upward. Renderers that target screen space (SVG) flip the y axis on
// output.
//
// Vector arithmetic is delegated to gonum's spatial/r2 package. Rotations by
// multiples of 90 degrees are special-cased so that a component rotated onto a
// cardinal heading lands exactly on the same coordinates as one placed there
// directly.
package geom
