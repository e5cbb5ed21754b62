// Package expr parses and evaluates the coordinate expressions used in
// circuit documents.
//
// Values are numbers or points. Supported syntax:
//
//	1.5  -2  gap * 2          numbers, parameters, arithmetic
//	(3, -1)                   point literal
//	U2.VIN  U2["pin.1"]       instance anchors
//	R1.end.x  here.y          coordinates
//	U2.VIN + (gap, 0)         point arithmetic
//
// Points add and subtract with points and scale by numbers. Names resolve
// through an [Env]: variables first, then instance anchors.
package expr
