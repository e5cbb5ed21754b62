// Package scene holds finalized drawings.
//
// A [Scene] is an ordered list of items (components, junctions, wires) in
// absolute drawing coordinates. It is produced by drawing.Builder.Finalize and
// consumed read-only by renderers; the builder hands out deep copies so a
// scene never changes after it is created.
//
// Scene IDs are name-based UUIDs over the scene content, so rebuilding the
// same drawing yields the same ID and renderers can cache on it.
//
// [Scene.Nets] groups component terminals that touch through coincident
// points and wires. It exists for overview renderings; it does not validate
// the circuit.
package scene
