package script

import (
	"fmt"
	"strings"

	"github.com/matzehuels/circuitdraw/pkg/drawing"
	"github.com/matzehuels/circuitdraw/pkg/element"
	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
)

// Document is a circuit drawing in declarative form. TOML, JSON and .circ
// sources all decode into a Document.
type Document struct {
	Title    string                        `toml:"title" json:"title,omitempty"`
	Drawing  Drawing                       `toml:"drawing" json:"drawing"`
	Params   map[string]float64            `toml:"params" json:"params,omitempty"`
	Variants map[string]map[string]float64 `toml:"variants" json:"variants,omitempty"`
	Parts    []Part                        `toml:"parts" json:"parts,omitempty"`
	Steps    []Step                        `toml:"steps" json:"steps"`

	// Path is the file the document was loaded from, if any.
	Path string `toml:"-" json:"-"`
}

// Drawing holds document-wide drawing settings.
type Drawing struct {
	Unit        float64 `toml:"unit" json:"unit,omitempty"`
	Font        string  `toml:"font" json:"font,omitempty"`
	FontSize    float64 `toml:"fontsize" json:"fontsize,omitempty"`
	Color       string  `toml:"color" json:"color,omitempty"`
	Background  string  `toml:"background" json:"background,omitempty"`
	Transparent bool    `toml:"transparent" json:"transparent,omitempty"`
}

// Part declares a reusable component: an IC with named pins or a
// transformer with a winding ratio.
type Part struct {
	Name    string    `toml:"name" json:"name"`
	Kind    string    `toml:"kind" json:"kind,omitempty"`
	Pins    []PinSpec `toml:"pins" json:"pins,omitempty"`
	Width   float64   `toml:"width" json:"width,omitempty"`
	Height  float64   `toml:"height" json:"height,omitempty"`
	PadW    float64   `toml:"padw" json:"padw,omitempty"`
	PadH    float64   `toml:"padh" json:"padh,omitempty"`
	Spacing float64   `toml:"spacing" json:"spacing,omitempty"`
	Lead    float64   `toml:"lead" json:"lead,omitempty"`
	T1      int       `toml:"t1" json:"t1,omitempty"`
	T2      int       `toml:"t2" json:"t2,omitempty"`
}

// PinSpec declares one IC pin. Slot is "k/n".
type PinSpec struct {
	Name   string `toml:"name" json:"name,omitempty"`
	Number string `toml:"number" json:"number,omitempty"`
	Side   string `toml:"side" json:"side"`
	Slot   string `toml:"slot" json:"slot"`
	Anchor string `toml:"anchor" json:"anchor,omitempty"`
}

// Step is one drawing operation. Which fields apply depends on Op.
type Step struct {
	Op      string      `toml:"op" json:"op"`
	ID      string      `toml:"id" json:"id,omitempty"`
	Dir     string      `toml:"dir" json:"dir,omitempty"`
	Theta   *Expr       `toml:"theta" json:"theta,omitempty"`
	Length  *Expr       `toml:"length" json:"length,omitempty"`
	At      *Expr       `toml:"at" json:"at,omitempty"`
	To      *Expr       `toml:"to" json:"to,omitempty"`
	Rotate  *Expr       `toml:"rotate" json:"rotate,omitempty"`
	Anchor  string      `toml:"anchor" json:"anchor,omitempty"`
	Name    string      `toml:"name" json:"name,omitempty"`
	Text    string      `toml:"text" json:"text,omitempty"`
	Open    bool        `toml:"open" json:"open,omitempty"`
	Polar   bool        `toml:"polar" json:"polar,omitempty"`
	Reverse bool        `toml:"reverse" json:"reverse,omitempty"`
	Scale   float64     `toml:"scale" json:"scale,omitempty"`
	Labels  []LabelSpec `toml:"labels" json:"labels,omitempty"`

	// Line is the source line for .circ documents.
	Line int `toml:"-" json:"-"`
}

// LabelSpec is a label before placement. Offset may be a number (pushes
// the label outward) or a point (shifts it).
type LabelSpec struct {
	Text     string  `toml:"text" json:"text"`
	Loc      string  `toml:"loc" json:"loc,omitempty"`
	Anchor   string  `toml:"anchor" json:"anchor,omitempty"`
	Offset   *Expr   `toml:"offset" json:"offset,omitempty"`
	FontSize float64 `toml:"fontsize" json:"fontsize,omitempty"`
}

// Operations other than element placement.
const (
	OpLine     = "line"
	OpMove     = "move"
	OpPush     = "push"
	OpPop      = "pop"
	OpMark     = "mark"
	OpAnnotate = "annotate"
)

var controlOps = map[string]bool{
	OpLine: true, OpMove: true, OpPush: true, OpPop: true, OpMark: true, OpAnnotate: true,
}

// Part kinds.
const (
	PartIC          = "ic"
	PartTransformer = "transformer"
)

// where names a step in error messages.
func (s Step) where(i int) string {
	if s.Line > 0 {
		return fmt.Sprintf("line %d (%s)", s.Line, s.Op)
	}
	return fmt.Sprintf("step %d (%s)", i+1, s.Op)
}

// Validate checks the document structure. Anchors and expressions are
// checked when the document runs.
func (d *Document) Validate() error {
	if d.Drawing.Unit < 0 || !geom.Finite(d.Drawing.Unit) {
		return errors.New(errors.ErrCodeInvalidDocument, "drawing unit must be positive, got %g", d.Drawing.Unit)
	}
	parts := map[string]bool{}
	for _, p := range d.Parts {
		if err := errors.ValidateInstanceName(p.Name); err != nil {
			return errors.Context(err, errors.ErrCodeInvalidDocument, "part")
		}
		if _, isKind := element.Lookup(p.Name); isKind || controlOps[strings.ToLower(p.Name)] {
			return errors.New(errors.ErrCodeInvalidDocument, "part %q shadows a built-in operation", p.Name)
		}
		if parts[p.Name] {
			return errors.New(errors.ErrCodeInvalidDocument, "part %q declared twice", p.Name)
		}
		parts[p.Name] = true
		switch p.Kind {
		case "", PartIC:
			if len(p.Pins) == 0 {
				return errors.New(errors.ErrCodeInvalidDocument, "part %q: ic needs pins", p.Name)
			}
		case PartTransformer:
		default:
			return errors.New(errors.ErrCodeInvalidDocument, "part %q: unknown kind %q", p.Name, p.Kind)
		}
	}
	for name, v := range d.Params {
		if reservedNames[name] {
			return errors.New(errors.ErrCodeInvalidDocument, "parameter name %q is reserved", name)
		}
		if !geom.Finite(v) {
			return errors.New(errors.ErrCodeInvalidDocument, "parameter %s = %g is not finite", name, v)
		}
	}
	for name, vals := range d.Variants {
		if name == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "variant with empty name")
		}
		for k, v := range vals {
			if _, ok := d.Params[k]; !ok {
				return errors.New(errors.ErrCodeInvalidDocument, "variant %s sets undeclared parameter %q", name, k)
			}
			if !geom.Finite(v) {
				return errors.New(errors.ErrCodeInvalidDocument, "variant %s: %s = %g is not finite", name, k, v)
			}
		}
	}

	for i, s := range d.Steps {
		if err := d.validateStep(s, parts); err != nil {
			return errors.Context(err, errors.ErrCodeInvalidDocument, "%s", s.where(i))
		}
	}
	return d.validateNames()
}

// validateNames rejects a parameter, mark or dot id that reuses an
// instance id. Variables win lookups, so the instance would be unreachable.
func (d *Document) validateNames() error {
	vars := map[string]string{}
	for name := range d.Params {
		vars[name] = "parameter"
	}
	for _, s := range d.Steps {
		switch op := strings.ToLower(s.Op); {
		case op == OpMark:
			vars[s.Name] = "mark"
		case op == string(element.KindDot) && s.ID != "":
			vars[s.ID] = "dot"
		}
	}
	for i, s := range d.Steps {
		op := strings.ToLower(s.Op)
		if s.ID == "" || controlOps[op] || op == string(element.KindDot) {
			continue
		}
		if what, ok := vars[s.ID]; ok {
			return errors.New(errors.ErrCodeInvalidDocument, "%s: id %q is also a %s name", s.where(i), s.ID, what)
		}
	}
	return nil
}

func (d *Document) validateStep(s Step, parts map[string]bool) error {
	op := strings.ToLower(s.Op)
	_, isKind := element.Lookup(op)
	if !isKind && !controlOps[op] && !parts[s.Op] {
		return errors.New(errors.ErrCodeUnknownElement, "unknown operation %q", s.Op)
	}
	if s.ID != "" {
		if err := errors.ValidateInstanceName(s.ID); err != nil {
			return err
		}
	}
	if s.Dir != "" {
		if _, err := geom.ParseAngle(s.Dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "dir")
		}
	}
	if s.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "scale must be positive")
	}
	for _, l := range s.Labels {
		if l.Loc != "" {
			if _, ok := drawing.ParseLoc(l.Loc); !ok {
				return errors.New(errors.ErrCodeInvalidDocument, "label %q: unknown loc %q", l.Text, l.Loc)
			}
		}
		if l.Anchor != "" {
			if err := errors.ValidateAnchorName(l.Anchor); err != nil {
				return err
			}
		}
	}
	switch op {
	case OpMark:
		if s.Name == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "mark needs a name")
		}
		if err := errors.ValidateInstanceName(s.Name); err != nil {
			return err
		}
	case OpMove:
		if s.To == nil && s.Length == nil {
			return errors.New(errors.ErrCodeInvalidDocument, "move needs a length or a target")
		}
	case OpAnnotate:
		if len(s.Labels) == 0 && s.Text == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "annotate needs a label")
		}
	}
	return nil
}

// ParamNames lists declared parameters.
func (d *Document) ParamNames() []string {
	names := make([]string, 0, len(d.Params))
	for k := range d.Params {
		names = append(names, k)
	}
	return sortedStrings(names)
}

// VariantNames lists variants in name order.
func (d *Document) VariantNames() []string {
	names := make([]string, 0, len(d.Variants))
	for k := range d.Variants {
		names = append(names, k)
	}
	return sortedStrings(names)
}

// ResolveParams overlays the named variant and then overrides on the base
// parameters.
func (d *Document) ResolveParams(variant string, overrides map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(d.Params))
	for k, v := range d.Params {
		out[k] = v
	}
	if variant != "" {
		vals, ok := d.Variants[variant]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownName, "unknown variant %q (have %s)", variant, strings.Join(d.VariantNames(), ", "))
		}
		for k, v := range vals {
			out[k] = v
		}
	}
	for k, v := range overrides {
		if _, ok := out[k]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownName, "unknown parameter %q", k)
		}
		if !geom.Finite(v) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "parameter %s = %g is not finite", k, v)
		}
		out[k] = v
	}
	return out, nil
}

// Templates declares every part.
func (d *Document) Templates() (map[string]*element.Template, error) {
	out := make(map[string]*element.Template, len(d.Parts))
	for _, p := range d.Parts {
		t, err := p.Template()
		if err != nil {
			return nil, errors.Context(err, errors.ErrCodeInvalidDocument, "part %s", p.Name)
		}
		out[p.Name] = t
	}
	return out, nil
}

// Template declares the part.
func (p Part) Template() (*element.Template, error) {
	if p.Kind == PartTransformer {
		t1, t2 := p.T1, p.T2
		if t1 == 0 {
			t1 = element.DefaultTurns
		}
		if t2 == 0 {
			t2 = element.DefaultTurns
		}
		t, err := element.Transformer(t1, t2)
		if err != nil {
			return nil, err
		}
		cp := *t
		cp.Name = p.Name
		return &cp, nil
	}

	pins := make([]element.Pin, len(p.Pins))
	for i, ps := range p.Pins {
		side, err := element.ParseSide(ps.Side)
		if err != nil {
			return nil, err
		}
		slot, err := element.ParseSlot(ps.Slot)
		if err != nil {
			return nil, err
		}
		if ps.Anchor != "" {
			if err := errors.ValidateAnchorName(ps.Anchor); err != nil {
				return nil, err
			}
		}
		pins[i] = element.Pin{Name: ps.Name, Number: ps.Number, Side: side, Slot: slot, AnchorName: ps.Anchor}
	}
	return element.DeclareIC(pins, element.ICOptions{
		Name:       p.Name,
		Width:      p.Width,
		Height:     p.Height,
		PadW:       p.PadW,
		PadH:       p.PadH,
		PinSpacing: p.Spacing,
		LeadLen:    p.Lead,
	})
}

// reservedNames are always defined while a document runs.
var reservedNames = map[string]bool{"here": true, "unit": true}
