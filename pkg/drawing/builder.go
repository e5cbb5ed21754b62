package drawing

import (
	"github.com/matzehuels/circuitdraw/pkg/element"
	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

// DefaultUnit is the default two-terminal element length.
const DefaultUnit = 3.0

// junctionRadius is the footprint used to place junction labels.
const junctionRadius = 0.1

// Cursor is the current drawing position and heading.
type Cursor struct {
	Pos     geom.Point `json:"pos"`
	Heading geom.Angle `json:"heading"`
}

// Result is what a placement or routing step produced: the emitted item
// and the cursor after the step.
type Result struct {
	Item     scene.Item
	Instance *element.Instance
	Cursor   Cursor
}

// Builder accumulates a drawing. It owns a cursor, a LIFO stack of saved
// cursors, the placed instances and the emitted scene items. A Builder is
// not safe for concurrent use; use one per drawing.
type Builder struct {
	unit   float64
	cursor Cursor
	stack  []Cursor

	items     []scene.Item
	byID      map[string]*element.Instance
	placed    map[*element.Instance]*scene.Component
	last      *element.Instance
	anonymous int
}

// New returns a builder with the cursor at the origin heading right.
func New(opts ...Option) *Builder {
	b := &Builder{
		unit:   DefaultUnit,
		byID:   map[string]*element.Instance{},
		placed: map[*element.Instance]*scene.Component{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Unit returns the default two-terminal length.
func (b *Builder) Unit() float64 { return b.unit }

// Cursor returns the current cursor.
func (b *Builder) Cursor() Cursor { return b.cursor }

// Here returns the current position.
func (b *Builder) Here() geom.Point { return b.cursor.Pos }

// Depth returns the number of saved cursors.
func (b *Builder) Depth() int { return len(b.stack) }

// Last returns the most recently placed instance, or nil.
func (b *Builder) Last() *element.Instance { return b.last }

// MoveBy advances the cursor by distance along dir and adopts dir as the
// heading. Nothing is drawn.
func (b *Builder) MoveBy(dir geom.Angle, distance float64) (Cursor, error) {
	p := b.cursor.Pos.Translate(dir, distance)
	if err := checkFinite("move", p); err != nil {
		return b.cursor, err
	}
	b.cursor = Cursor{Pos: p, Heading: dir.Normalize()}
	return b.cursor, nil
}

// MoveTo jumps to p, keeping the heading.
func (b *Builder) MoveTo(p geom.Point) (Cursor, error) {
	if err := checkFinite("move", p); err != nil {
		return b.cursor, err
	}
	b.cursor.Pos = p
	return b.cursor, nil
}

// checkFinite rejects coordinates that overflowed. Every point entering the
// scene passes through it.
func checkFinite(op string, pts ...geom.Point) error {
	for _, p := range pts {
		if !p.IsFinite() {
			return errors.New(errors.ErrCodeInvalidInput, "%s: coordinate %s is not finite", op, p)
		}
	}
	return nil
}

// MoveToAnchor jumps to an anchor of a placed instance.
func (b *Builder) MoveToAnchor(inst *element.Instance, name string) (Cursor, error) {
	p, err := b.Resolve(inst, name)
	if err != nil {
		return b.cursor, err
	}
	return b.MoveTo(p)
}

// MoveToRef jumps to an anchor of the instance with the given ID.
func (b *Builder) MoveToRef(id, name string) (Cursor, error) {
	p, err := b.ResolveRef(id, name)
	if err != nil {
		return b.cursor, err
	}
	return b.MoveTo(p)
}

// Push saves the cursor.
func (b *Builder) Push() {
	b.stack = append(b.stack, b.cursor)
}

// Pop restores the most recently saved cursor.
func (b *Builder) Pop() (Cursor, error) {
	if len(b.stack) == 0 {
		return b.cursor, errors.New(errors.ErrCodeEmptyStack, "pop without a matching push")
	}
	n := len(b.stack) - 1
	b.cursor = b.stack[n]
	b.stack = b.stack[:n]
	return b.cursor, nil
}

// Instance returns the placed instance with the given ID.
func (b *Builder) Instance(id string) (*element.Instance, bool) {
	inst, ok := b.byID[id]
	return inst, ok
}

// Resolve returns the absolute position of an anchor on a placed instance.
// Instances that were never placed through this builder are unresolved.
func (b *Builder) Resolve(inst *element.Instance, name string) (geom.Point, error) {
	if inst == nil {
		return geom.Point{}, errors.New(errors.ErrCodeUnresolvedAnchor, "anchor %q referenced on a component that is not placed", name)
	}
	if _, ok := b.placed[inst]; !ok {
		return geom.Point{}, errors.New(errors.ErrCodeUnresolvedAnchor, "%s is not placed in this drawing", inst.Name())
	}
	return inst.Anchor(name)
}

// ResolveRef resolves id.name.
func (b *Builder) ResolveRef(id, name string) (geom.Point, error) {
	inst, ok := b.byID[id]
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeUnresolvedAnchor, "%s.%s: %s is not placed yet", id, name, id)
	}
	return inst.Anchor(name)
}

// Place instantiates t at the cursor (or the At option), appends it to the
// scene and moves the cursor to its exit anchor.
func (b *Builder) Place(t *element.Template, opts ...PlaceOption) (Result, error) {
	if t == nil {
		return Result{Cursor: b.cursor}, errors.New(errors.ErrCodeInvalidInput, "place: nil template")
	}
	var o placeOptions
	for _, opt := range opts {
		opt(&o)
	}

	start := b.cursor.Pos
	if o.at != nil {
		start = *o.at
	}
	heading := b.cursor.Heading
	if o.toward != nil {
		heading = o.toward.Normalize()
	}

	tmpl := t
	switch {
	case o.to != nil:
		if !t.Stretchable() {
			return Result{Cursor: b.cursor}, errors.New(errors.ErrCodeInvalidInput, "%s cannot be stretched to a point", t.DisplayName())
		}
		d := start.Dist(*o.to)
		if d < geom.Epsilon {
			return Result{Cursor: b.cursor}, errors.New(errors.ErrCodeInvalidInput, "%s: end point equals start point", t.DisplayName())
		}
		heading = geom.AngleOf(start, *o.to)
		s, err := t.Stretch(d)
		if err != nil {
			return Result{Cursor: b.cursor}, err
		}
		tmpl = s
	case !geom.Finite(o.length):
		return Result{Cursor: b.cursor}, errors.New(errors.ErrCodeInvalidInput, "%s: length %g is not finite", t.DisplayName(), o.length)
	case o.length > 0:
		s, err := t.Stretch(o.length)
		if err != nil {
			return Result{Cursor: b.cursor}, err
		}
		tmpl = s
	}
	if o.reverse {
		cp := *tmpl
		cp.Params.Reverse = !cp.Params.Reverse
		tmpl = &cp
	}

	var orientation geom.Angle
	if tmpl.FollowHeading {
		orientation = heading
	}
	if o.orient != nil {
		orientation = *o.orient
	}

	anchorName := tmpl.Start
	if o.anchor != "" {
		anchorName = o.anchor
	}
	offset, err := tmpl.Anchor(anchorName)
	if err != nil {
		return Result{Cursor: b.cursor}, err
	}
	origin := start.Sub(offset.Rotate(float64(orientation)))

	label := ""
	if len(o.labels) > 0 {
		label = o.labels[0].Text
	}
	inst, err := element.Instantiate(tmpl, origin, orientation, label)
	if err != nil {
		return Result{Cursor: b.cursor}, err
	}
	for _, a := range inst.Anchors() {
		if err := checkFinite(tmpl.DisplayName(), a.Point); err != nil {
			return Result{Cursor: b.cursor}, err
		}
	}

	if o.id != "" {
		if err := errors.ValidateInstanceName(o.id); err != nil {
			return Result{Cursor: b.cursor}, err
		}
		if _, dup := b.byID[o.id]; dup {
			return Result{Cursor: b.cursor}, errors.New(errors.ErrCodeInvalidInput, "component id %q is already used", o.id)
		}
		inst.ID = o.id
	}

	labels, err := instanceFrame(inst).resolveAll(o.labels)
	if err != nil {
		return Result{Cursor: b.cursor}, err
	}

	b.anonymous++
	comp := scene.NewComponent(inst, labels, b.anonymous)
	b.items = append(b.items, comp)
	b.placed[inst] = comp
	if inst.ID != "" {
		b.byID[inst.ID] = inst
	}
	b.last = inst
	b.cursor = Cursor{Pos: inst.Exit(), Heading: heading}
	return Result{Item: comp, Instance: inst, Cursor: b.cursor}, nil
}

// Annotate adds labels to an already placed instance.
func (b *Builder) Annotate(inst *element.Instance, labels ...LabelSpec) error {
	comp, ok := b.placed[inst]
	if inst == nil || !ok {
		return errors.New(errors.ErrCodeUnresolvedAnchor, "annotate: component is not placed in this drawing")
	}
	resolved, err := instanceFrame(inst).resolveAll(labels)
	if err != nil {
		return err
	}
	comp.Labels = append(comp.Labels, resolved...)
	return nil
}

func instanceFrame(inst *element.Instance) frame {
	return frame{
		origin:      inst.Origin,
		orientation: inst.Orientation,
		box:         inst.Template.Footprint,
		anchor:      inst.Anchor,
	}
}

// LineTo emits a segment from the cursor (or From) to p and moves the
// cursor to p. The heading becomes the segment direction.
func (b *Builder) LineTo(p geom.Point, opts ...RouteOption) (Result, error) {
	var o routeOptions
	for _, opt := range opts {
		opt(&o)
	}
	from := b.cursor.Pos
	if o.from != nil {
		from = *o.from
	}
	if err := checkFinite("line", from, p); err != nil {
		return Result{Cursor: b.cursor}, err
	}
	heading := b.cursor.Heading
	if !from.Eq(p) {
		heading = geom.AngleOf(from, p)
	}

	w := &scene.Wire{From: from, To: p}
	labels, err := frame{
		origin:      from,
		orientation: heading,
		box:         geom.BoxOf(geom.Point{}, geom.Pt(from.Dist(p), 0)),
	}.resolveAll(o.labels)
	if err != nil {
		return Result{Cursor: b.cursor}, err
	}
	w.Labels = labels

	b.items = append(b.items, w)
	b.cursor = Cursor{Pos: p, Heading: heading}
	return Result{Item: w, Cursor: b.cursor}, nil
}

// LineBy emits a segment of the given length along dir.
func (b *Builder) LineBy(dir geom.Angle, distance float64, opts ...RouteOption) (Result, error) {
	var o routeOptions
	for _, opt := range opts {
		opt(&o)
	}
	from := b.cursor.Pos
	if o.from != nil {
		from = *o.from
	}
	res, err := b.LineTo(from.Translate(dir, distance), opts...)
	if err != nil {
		return res, err
	}
	b.cursor.Heading = dir.Normalize()
	res.Cursor = b.cursor
	return res, nil
}

// LineToAnchor routes to an anchor of a placed instance.
func (b *Builder) LineToAnchor(inst *element.Instance, name string, opts ...RouteOption) (Result, error) {
	p, err := b.Resolve(inst, name)
	if err != nil {
		return Result{Cursor: b.cursor}, err
	}
	return b.LineTo(p, opts...)
}

// LineToRef routes to id.name.
func (b *Builder) LineToRef(id, name string, opts ...RouteOption) (Result, error) {
	p, err := b.ResolveRef(id, name)
	if err != nil {
		return Result{Cursor: b.cursor}, err
	}
	return b.LineTo(p, opts...)
}

// PlaceJunction marks the cursor position. The cursor does not move.
func (b *Builder) PlaceJunction(open bool, labels ...LabelSpec) (Result, error) {
	at := b.cursor.Pos
	resolved, err := frame{
		origin: at,
		box:    geom.NewBox(-junctionRadius, -junctionRadius, junctionRadius, junctionRadius),
	}.resolveAll(labels)
	if err != nil {
		return Result{Cursor: b.cursor}, err
	}
	j := &scene.Junction{At: at, Open: open, Labels: resolved}
	b.items = append(b.items, j)
	return Result{Item: j, Cursor: b.cursor}, nil
}

// Finalize returns a snapshot of the drawing. The builder stays usable and
// calling Finalize again without further steps yields an identical scene.
// Saved cursors still on the stack are reported as LeakedPushes.
func (b *Builder) Finalize() *scene.Scene {
	s, err := scene.New(b.items, b.unit, len(b.stack))
	if err != nil {
		// checkFinite guards every point the builder emits.
		panic("drawing: finalize: " + err.Error())
	}
	return s
}
