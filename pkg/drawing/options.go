package drawing

import "github.com/matzehuels/circuitdraw/pkg/geom"

// Option configures a Builder.
type Option func(*Builder)

// WithUnit sets the default two-terminal length recorded on the scene.
func WithUnit(unit float64) Option {
	return func(b *Builder) {
		if unit > 0 && geom.Finite(unit) {
			b.unit = unit
		}
	}
}

// WithStart sets the initial cursor.
func WithStart(c Cursor) Option {
	return func(b *Builder) {
		if c.Pos.IsFinite() {
			b.cursor = c
		}
	}
}

type placeOptions struct {
	id      string
	at      *geom.Point
	to      *geom.Point
	anchor  string
	toward  *geom.Angle
	orient  *geom.Angle
	length  float64
	labels  []LabelSpec
	reverse bool
}

// PlaceOption adjusts a single placement.
type PlaceOption func(*placeOptions)

// ID names the instance so that later steps can reference its anchors.
func ID(id string) PlaceOption { return func(o *placeOptions) { o.id = id } }

// At places the element at p instead of the cursor.
func At(p geom.Point) PlaceOption { return func(o *placeOptions) { o.at = &p } }

// Anchor selects which anchor lands on the start point.
func Anchor(name string) PlaceOption { return func(o *placeOptions) { o.anchor = name } }

// Toward sets the heading for this placement; the cursor keeps it.
func Toward(dir geom.Angle) PlaceOption { return func(o *placeOptions) { o.toward = &dir } }

// Orient forces an orientation regardless of heading.
func Orient(a geom.Angle) PlaceOption { return func(o *placeOptions) { o.orient = &a } }

// Length stretches a two-terminal element.
func Length(l float64) PlaceOption { return func(o *placeOptions) { o.length = l } }

// To stretches a two-terminal element from the start point to p.
func To(p geom.Point) PlaceOption { return func(o *placeOptions) { o.to = &p } }

// Reverse flips a polarized symbol without moving its anchors.
func Reverse() PlaceOption { return func(o *placeOptions) { o.reverse = true } }

// WithLabel attaches labels to the placed element.
func WithLabel(labels ...LabelSpec) PlaceOption {
	return func(o *placeOptions) { o.labels = append(o.labels, labels...) }
}

type routeOptions struct {
	from   *geom.Point
	labels []LabelSpec
}

// RouteOption adjusts a wire segment.
type RouteOption func(*routeOptions)

// From starts the segment at p instead of the cursor.
func From(p geom.Point) RouteOption { return func(o *routeOptions) { o.from = &p } }

// WireLabel attaches labels to the segment.
func WireLabel(labels ...LabelSpec) RouteOption {
	return func(o *routeOptions) { o.labels = append(o.labels, labels...) }
}
