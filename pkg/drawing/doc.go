// Package drawing is the cursor-based layout engine. A [Builder] places
// components edge to edge, routes wires between anchors and free points, and
// finalizes the result into an immutable [scene.Scene].
//
// # Cursor model
//
// The builder keeps a cursor (position and heading). Placing an element
// consumes the cursor as the element's start point and leaves the cursor on
// the element's exit anchor, so consecutive placements chain:
//
//	b := drawing.New()
//	b.LineBy(geom.Right, 0.5)
//	b.PlaceJunction(false)
//	b.Push()
//	r, _ := element.TwoTerminal(element.KindResistor, 3, element.Params{})
//	b.Place(r, drawing.Toward(geom.Down), drawing.WithLabel(drawing.Label("R1", drawing.LocBottom)))
//	b.Pop()
//
// Push and Pop save and restore the cursor; popping an empty stack fails
// with EMPTY_STACK. Every step returns a [Result] carrying the emitted item
// and the new cursor, and accepts an explicit start point (At, From) so that
// chains can be written without relying on the implicit cursor.
//
// # Anchors
//
// Components placed with an ID can be referenced later with ResolveRef,
// MoveToRef and LineToRef. Referencing a component that is not placed yet
// fails with UNRESOLVED_ANCHOR; naming an anchor the component does not
// declare fails with UNKNOWN_ANCHOR. The first error stops the drawing.
//
// Connectivity is implied by coincident coordinates only; the builder does
// not snap, merge or validate wires.
package drawing
