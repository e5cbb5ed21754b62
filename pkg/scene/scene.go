package scene

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/circuitdraw/pkg/element"
	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
)

// namespace seeds scene IDs so that equal scenes share an ID.
var namespace = uuid.MustParse("6f1f2c8e-3b7d-5a4e-9c1d-2e8b4f6a7d10")

// ItemKind tags the three kinds of scene items.
type ItemKind string

const (
	KindComponent ItemKind = "component"
	KindJunction  ItemKind = "junction"
	KindWire      ItemKind = "wire"
)

// Item is one drawable element of a scene, in emission order.
type Item interface {
	ItemKind() ItemKind
	Bounds() geom.Box
	clone() Item
}

// Align is the horizontal text anchor of a label.
type Align string

const (
	AlignStart  Align = "start"
	AlignMiddle Align = "middle"
	AlignEnd    Align = "end"
)

// VAlign is the vertical placement of a label relative to its point.
// VAlignBottom puts the text block above the point, VAlignTop below it.
type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
	VAlignBottom VAlign = "bottom"
)

// Label is text resolved to an absolute position.
type Label struct {
	Text     string     `json:"text"`
	At       geom.Point `json:"at"`
	Align    Align      `json:"align"`
	VAlign   VAlign     `json:"valign"`
	FontSize float64    `json:"fontsize,omitempty"`
}

// Component is a placed instance with everything a renderer needs.
// Footprint, Body and Pins are in local coordinates; Anchors are absolute.
type Component struct {
	ID          string                `json:"id,omitempty"`
	Kind        element.Kind          `json:"kind"`
	Part        string                `json:"part,omitempty"`
	Origin      geom.Point            `json:"origin"`
	Orientation geom.Angle            `json:"orientation"`
	Length      float64               `json:"length,omitempty"`
	Params      element.Params        `json:"params"`
	Footprint   geom.Box              `json:"footprint"`
	Body        geom.Box              `json:"body"`
	Pins        []element.PinGeometry `json:"pins,omitempty"`
	Anchors     []element.Anchor      `json:"anchors"`
	Labels      []Label               `json:"labels,omitempty"`

	seq int
}

// NewComponent snapshots a placed instance. seq numbers anonymous
// components for display.
func NewComponent(inst *element.Instance, labels []Label, seq int) *Component {
	t := inst.Template
	return &Component{
		ID:          inst.ID,
		Kind:        t.Kind,
		Part:        t.Name,
		Origin:      inst.Origin,
		Orientation: inst.Orientation,
		Length:      t.Length,
		Params:      t.Params,
		Footprint:   t.Footprint,
		Body:        t.Body,
		Pins:        slices.Clone(t.Pins),
		Anchors:     inst.Anchors(),
		Labels:      slices.Clone(labels),
		seq:         seq,
	}
}

func (c *Component) ItemKind() ItemKind { return KindComponent }

// Bounds returns the footprint in drawing coordinates.
func (c *Component) Bounds() geom.Box { return c.Footprint.Transform(c.Origin, c.Orientation) }

// ToWorld maps a local point into drawing coordinates.
func (c *Component) ToWorld(p geom.Point) geom.Point {
	return c.Origin.Add(p.Rotate(float64(c.Orientation)))
}

// Anchor looks up an absolute anchor by name.
func (c *Component) Anchor(name string) (geom.Point, bool) {
	for _, a := range c.Anchors {
		if a.Name == name {
			return a.Point, true
		}
	}
	return geom.Point{}, false
}

// Name is the ID, or kind#n for anonymous components.
func (c *Component) Name() string {
	if c.ID != "" {
		return c.ID
	}
	return fmt.Sprintf("%s#%d", c.Kind, c.seq)
}

func (c *Component) clone() Item {
	cp := *c
	cp.Pins = slices.Clone(c.Pins)
	cp.Anchors = slices.Clone(c.Anchors)
	cp.Labels = slices.Clone(c.Labels)
	return &cp
}

// Junction marks a connection point; open junctions are hollow terminals.
type Junction struct {
	At     geom.Point `json:"at"`
	Open   bool       `json:"open,omitempty"`
	Labels []Label    `json:"labels,omitempty"`
}

func (j *Junction) ItemKind() ItemKind { return KindJunction }
func (j *Junction) Bounds() geom.Box   { return geom.BoxOf(j.At) }

func (j *Junction) clone() Item {
	cp := *j
	cp.Labels = slices.Clone(j.Labels)
	return &cp
}

// Wire is a straight segment. Zero-length wires are kept as emitted.
type Wire struct {
	From   geom.Point `json:"from"`
	To     geom.Point `json:"to"`
	Labels []Label    `json:"labels,omitempty"`
}

func (w *Wire) ItemKind() ItemKind { return KindWire }
func (w *Wire) Bounds() geom.Box   { return geom.BoxOf(w.From, w.To) }

// Length returns the segment length.
func (w *Wire) Length() float64 { return w.From.Dist(w.To) }

func (w *Wire) clone() Item {
	cp := *w
	cp.Labels = slices.Clone(w.Labels)
	return &cp
}

// Scene is a finalized drawing: ordered items in absolute coordinates.
// Scenes are not modified after construction; renderers only read them.
type Scene struct {
	ID           string
	Unit         float64
	Items        []Item
	LeakedPushes int
}

// New builds a scene from a deep copy of items. The ID is derived from
// everything the scene exports, so identical scenes get identical IDs.
// Non-finite coordinates cannot be hashed and are rejected.
func New(items []Item, unit float64, leakedPushes int) (*Scene, error) {
	s := &Scene{
		Unit:         unit,
		Items:        make([]Item, len(items)),
		LeakedPushes: leakedPushes,
	}
	for i, it := range items {
		s.Items[i] = it.clone()
	}
	data, err := json.Marshal(struct {
		Unit         float64 `json:"unit"`
		LeakedPushes int     `json:"leaked_pushes"`
		Items        []Item  `json:"items"`
	}{s.Unit, s.LeakedPushes, s.Items})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "scene cannot be encoded")
	}
	s.ID = uuid.NewSHA1(namespace, data).String()
	return s, nil
}

// Components returns the placed components in order.
func (s *Scene) Components() []*Component { return itemsOf[*Component](s) }

// Junctions returns the junctions in order.
func (s *Scene) Junctions() []*Junction { return itemsOf[*Junction](s) }

// Wires returns the wire segments in order.
func (s *Scene) Wires() []*Wire { return itemsOf[*Wire](s) }

// Component finds a component by ID.
func (s *Scene) Component(id string) (*Component, bool) {
	for _, c := range s.Components() {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func itemsOf[T Item](s *Scene) []T {
	var out []T
	for _, it := range s.Items {
		if v, ok := it.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Labels returns every label in the scene, in item order.
func (s *Scene) Labels() []Label {
	var out []Label
	for _, it := range s.Items {
		switch v := it.(type) {
		case *Component:
			out = append(out, v.Labels...)
		case *Junction:
			out = append(out, v.Labels...)
		case *Wire:
			out = append(out, v.Labels...)
		}
	}
	return out
}

// Bounds is the union of all item bounds and label anchor points. Text
// extents depend on font metrics and are added by renderers.
func (s *Scene) Bounds() geom.Box {
	b := geom.EmptyBox()
	for _, it := range s.Items {
		b = b.Union(it.Bounds())
	}
	for _, l := range s.Labels() {
		b = b.Extend(l.At)
	}
	return b
}

// Stats counts scene items by kind.
type Stats struct {
	Components int `json:"components"`
	Junctions  int `json:"junctions"`
	Wires      int `json:"wires"`
	Labels     int `json:"labels"`
}

// Stats summarizes the scene.
func (s *Scene) Stats() Stats {
	return Stats{
		Components: len(s.Components()),
		Junctions:  len(s.Junctions()),
		Wires:      len(s.Wires()),
		Labels:     len(s.Labels()),
	}
}
