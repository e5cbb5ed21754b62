package element

import (
	"slices"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
)

// Kind identifies a component type.
type Kind string

// Component kinds known to the catalog and the renderers.
const (
	KindResistor    Kind = "resistor"
	KindCapacitor   Kind = "capacitor"
	KindDiode       Kind = "diode"
	KindZener       Kind = "zener"
	KindLED         Kind = "led"
	KindInductor    Kind = "inductor"
	KindFuse        Kind = "fuse"
	KindIC          Kind = "ic"
	KindTransformer Kind = "transformer"
	KindGround      Kind = "ground"
	KindDot         Kind = "dot"
	KindText        Kind = "text"
)

// Rotation describes which orientations a template accepts.
type Rotation int

const (
	// RotateNone accepts orientation 0 only.
	RotateNone Rotation = iota
	// RotateQuarter accepts multiples of 90 degrees.
	RotateQuarter
	// RotateAny accepts any angle.
	RotateAny
)

func (r Rotation) allows(a geom.Angle) bool {
	switch r {
	case RotateAny:
		return true
	case RotateQuarter:
		return a.IsCardinal()
	default:
		return a.Eq(0)
	}
}

func (r Rotation) String() string {
	switch r {
	case RotateAny:
		return "any angle"
	case RotateQuarter:
		return "quarter turns"
	default:
		return "fixed"
	}
}

// Anchor is a named point. On a Template the point is relative to the
// template origin; on an Instance it is absolute.
type Anchor struct {
	Name  string     `json:"name"`
	Point geom.Point `json:"point"`
}

// Params are render hints carried alongside the geometry.
type Params struct {
	Polar   bool    `json:"polar,omitempty"`
	Reverse bool    `json:"reverse,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
	Open    bool    `json:"open,omitempty"`
	Turns   [2]int  `json:"turns,omitempty"`
}

// Template is a reusable component definition: an ordered anchor set, a
// local footprint and the rules for placing it. Templates are immutable once
// declared.
type Template struct {
	Kind      Kind
	Name      string
	Footprint geom.Box
	Rotation  Rotation
	Params    Params

	// Start is the anchor placed at the cursor, Exit is where the cursor
	// lands after placement.
	Start string
	Exit  string

	// FollowHeading templates take the cursor heading as orientation.
	FollowHeading bool

	// Length is the start-to-end distance of stretchable two-terminal
	// elements and zero otherwise.
	Length float64

	// Body and Pins describe IC geometry in local coordinates.
	Body geom.Box
	Pins []PinGeometry

	anchors []Anchor
	index   map[string]int
}

// TemplateOption configures a Template during Declare.
type TemplateOption func(*Template)

// WithRotation sets the accepted orientations (default RotateQuarter).
func WithRotation(r Rotation) TemplateOption { return func(t *Template) { t.Rotation = r } }

// WithStart sets the anchor placed at the cursor (default: first anchor).
func WithStart(name string) TemplateOption { return func(t *Template) { t.Start = name } }

// WithExit sets the anchor the cursor advances to (default: last anchor).
func WithExit(name string) TemplateOption { return func(t *Template) { t.Exit = name } }

// WithParams attaches render hints.
func WithParams(p Params) TemplateOption { return func(t *Template) { t.Params = p } }

// WithName sets a display name, used for IC parts.
func WithName(name string) TemplateOption { return func(t *Template) { t.Name = name } }

// WithFollowHeading makes placements inherit the cursor heading.
func WithFollowHeading() TemplateOption { return func(t *Template) { t.FollowHeading = true } }

// Declare creates a template from an ordered anchor set and a footprint.
// Anchor names must be unique and non-empty.
func Declare(kind Kind, anchors []Anchor, footprint geom.Box, opts ...TemplateOption) (*Template, error) {
	if len(anchors) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: template needs at least one anchor", kind)
	}
	if !footprint.Min.IsFinite() || !footprint.Max.IsFinite() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: footprint is not finite", kind)
	}
	t := &Template{
		Kind:      kind,
		Footprint: footprint,
		Rotation:  RotateQuarter,
		anchors:   slices.Clone(anchors),
		index:     make(map[string]int, len(anchors)),
	}
	for i, a := range anchors {
		if err := errors.ValidateAnchorName(a.Name); err != nil {
			return nil, errors.Context(err, errors.ErrCodeInvalidInput, "%s", kind)
		}
		if !a.Point.IsFinite() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: anchor %q at %s is not finite", kind, a.Name, a.Point)
		}
		if _, dup := t.index[a.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: duplicate anchor %q", kind, a.Name)
		}
		t.index[a.Name] = i
	}
	t.Start = anchors[0].Name
	t.Exit = anchors[len(anchors)-1].Name
	for _, opt := range opts {
		opt(t)
	}
	if !geom.Finite(t.Params.Scale) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: scale %g is not finite", kind, t.Params.Scale)
	}
	for _, name := range []string{t.Start, t.Exit} {
		if _, ok := t.index[name]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownAnchor, "%s has no anchor %q", kind, name)
		}
	}
	return t, nil
}

// Anchors returns the template's anchors in declaration order.
func (t *Template) Anchors() []Anchor { return slices.Clone(t.anchors) }

// Anchor returns the relative offset of the named anchor.
func (t *Template) Anchor(name string) (geom.Point, error) {
	i, ok := t.index[name]
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeUnknownAnchor, "%s has no anchor %q", t.DisplayName(), name)
	}
	return t.anchors[i].Point, nil
}

// HasAnchor reports whether the template declares name.
func (t *Template) HasAnchor(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Stretchable reports whether the template can be re-declared at another length.
func (t *Template) Stretchable() bool { return t.Length > 0 }

// DisplayName is the part name if set, else the kind.
func (t *Template) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return string(t.Kind)
}

// Instance is a template placed in the drawing. Its anchors are absolute
// and computed once, at instantiation.
type Instance struct {
	ID          string
	Label       string
	Template    *Template
	Origin      geom.Point
	Orientation geom.Angle

	anchors []Anchor
}

// Instantiate places t at origin with the given orientation. Each anchor is
// resolved to origin + rotate(offset, orientation).
func Instantiate(t *Template, origin geom.Point, orientation geom.Angle, label string) (*Instance, error) {
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "instantiate: nil template")
	}
	orientation = orientation.Normalize()
	if !t.Rotation.allows(orientation) {
		return nil, errors.New(errors.ErrCodeUnsupportedOrientation,
			"%s cannot be oriented at %v degrees (supports %s)", t.DisplayName(), float64(orientation), t.Rotation)
	}
	inst := &Instance{
		Label:       label,
		Template:    t,
		Origin:      origin,
		Orientation: orientation,
		anchors:     make([]Anchor, len(t.anchors)),
	}
	for i, a := range t.anchors {
		inst.anchors[i] = Anchor{Name: a.Name, Point: inst.ToWorld(a.Point)}
	}
	return inst, nil
}

// ToWorld maps a point in template coordinates to drawing coordinates.
func (i *Instance) ToWorld(p geom.Point) geom.Point {
	return i.Origin.Add(p.Rotate(float64(i.Orientation)))
}

// Anchor returns the absolute position of the named anchor.
func (i *Instance) Anchor(name string) (geom.Point, error) {
	idx, ok := i.Template.index[name]
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeUnknownAnchor, "%s has no anchor %q", i.Name(), name)
	}
	return i.anchors[idx].Point, nil
}

// Anchors returns all absolute anchors in declaration order.
func (i *Instance) Anchors() []Anchor { return slices.Clone(i.anchors) }

// Exit returns the point where the cursor lands after placing i.
func (i *Instance) Exit() geom.Point {
	p, _ := i.Anchor(i.Template.Exit)
	return p
}

// Bounds returns the footprint in drawing coordinates.
func (i *Instance) Bounds() geom.Box {
	return i.Template.Footprint.Transform(i.Origin, i.Orientation)
}

// Name identifies the instance in messages: its ID, else its template name.
func (i *Instance) Name() string {
	if i.ID != "" {
		return i.ID
	}
	return i.Template.DisplayName()
}
