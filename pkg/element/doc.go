// Package element is the component model: templates that declare named
// anchors in local coordinates, and instances that pin a template to an
// origin and orientation in the drawing.
//
// # Templates
//
// A [Template] is created once with [Declare] (or one of the catalog
// constructors) and never changes. Its anchors are ordered; unless told
// otherwise the first anchor is placed at the cursor and the cursor advances
// to the last one.
//
// Two-terminal elements (resistor, capacitor, diode, zener, LED, inductor,
// fuse) stretch between a start anchor at (0,0) and an end anchor at (L,0):
//
//	r, _ := element.TwoTerminal(element.KindResistor, 3, element.Params{})
//
// ICs are declared from pins assigned to a side and a fractional slot:
//
//	ic, err := element.DeclareIC([]element.Pin{
//	    {Name: "VIN", Number: "1", Side: element.SideLeft, Slot: element.Slot{Index: 3, Count: 3}},
//	    {Name: "GND", Number: "3", Side: element.SideLeft, Slot: element.Slot{Index: 1, Count: 3}},
//	}, element.ICOptions{PadW: 2.5, PadH: 0.8})
//
// # Instances
//
// [Instantiate] resolves every anchor to origin + rotate(offset, orientation)
// immediately. Looking up a name the template does not declare fails with
// UNKNOWN_ANCHOR; placing a template at an orientation it does not support
// fails with UNSUPPORTED_ORIENTATION.
package element
