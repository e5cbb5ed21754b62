// Package script loads circuit drawings from declarative documents and
// replays them into a [drawing.Builder].
//
// A [Document] has drawing settings, named parameters with variants, part
// declarations (ICs and transformers) and an ordered list of steps. Three
// encodings decode into the same Document:
//
//   - TOML (.toml), one [[steps]] table per step
//   - JSON (.json), the same shape as TOML
//   - the .circ statement language, one statement per line:
//
//     part LM7812 padw=2 padh=0.8
//     pin GND side=left slot="1/2" num="2"
//     pin IN side=left slot="2/2" num="1"
//     pin OUT side=right slot="1/1" num="3"
//     U6: LM7812 label.center="U6\nLM7812"
//     line at=U6.GND down 1
//     ground
//
// Numeric and point fields are expressions (see package expr) evaluated
// while the document runs, so they may reference parameters, marks, the
// cursor (here) and anchors of instances placed earlier. Referencing an
// instance that is placed later fails with UNRESOLVED_ANCHOR.
//
// Variants overlay the base parameters. Choosing a different variant is
// how a layout is tuned without editing steps.
package script
