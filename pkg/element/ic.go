package element

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
)

// Side is the edge of an IC body a pin leaves from.
type Side string

// IC sides.
const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// ParseSide accepts left, right, top, bottom (and the short forms l r t b).
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return SideLeft, nil
	case "right", "r":
		return SideRight, nil
	case "top", "t":
		return SideTop, nil
	case "bottom", "bot", "b":
		return SideBottom, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid pin side %q", s)
}

func (s Side) vertical() bool { return s == SideLeft || s == SideRight }

// Slot is a fractional position k/n along a side. Slot 1 is the bottom of a
// vertical side and the left end of a horizontal one.
type Slot struct {
	Index int `json:"index"`
	Count int `json:"count"`
}

// ParseSlot parses "k/n".
func ParseSlot(s string) (Slot, error) {
	k, n, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return Slot{}, errors.New(errors.ErrCodeInvalidInput, "invalid slot %q: want k/n", s)
	}
	ki, err1 := strconv.Atoi(strings.TrimSpace(k))
	ni, err2 := strconv.Atoi(strings.TrimSpace(n))
	if err1 != nil || err2 != nil {
		return Slot{}, errors.New(errors.ErrCodeInvalidInput, "invalid slot %q: want k/n", s)
	}
	sl := Slot{Index: ki, Count: ni}
	return sl, sl.validate()
}

func (s Slot) validate() error {
	if s.Count < 1 || s.Index < 1 || s.Index > s.Count {
		return errors.New(errors.ErrCodeInvalidInput, "invalid slot %s: index must be in 1..count", s)
	}
	return nil
}

// Fraction is the slot's relative position along its side, (k-0.5)/n.
func (s Slot) Fraction() float64 {
	return (float64(s.Index) - 0.5) / float64(s.Count)
}

func (s Slot) String() string { return fmt.Sprintf("%d/%d", s.Index, s.Count) }

// Pin declares one IC pin.
type Pin struct {
	Name       string `json:"name,omitempty" toml:"name"`
	Number     string `json:"number,omitempty" toml:"number"`
	Side       Side   `json:"side" toml:"side"`
	Slot       Slot   `json:"slot" toml:"-"`
	AnchorName string `json:"anchor,omitempty" toml:"anchor"`
}

// Anchor returns the anchor name the pin is reachable under.
func (p Pin) Anchor() string {
	switch {
	case p.AnchorName != "":
		return p.AnchorName
	case p.Name != "":
		return p.Name
	default:
		return "pin" + p.Number
	}
}

// PinGeometry is a resolved pin in IC-local coordinates: the lead runs from
// Base (on the body edge) to Tip (the anchor).
type PinGeometry struct {
	Name   string     `json:"name,omitempty"`
	Number string     `json:"number,omitempty"`
	Side   Side       `json:"side"`
	Base   geom.Point `json:"base"`
	Tip    geom.Point `json:"tip"`
}

// Default IC dimensions, in drawing units.
const (
	DefaultPinSpacing = 1.0
	DefaultLeadLen    = 1.0
	DefaultPadW       = 1.5
	DefaultPadH       = 0.0
)

// ICOptions controls IC body dimensions. Zero values select defaults; use
// negative pads to force zero padding.
type ICOptions struct {
	Name       string
	Width      float64
	Height     float64
	PadW       float64
	PadH       float64
	PinSpacing float64
	LeadLen    float64
}

func (o ICOptions) withDefaults() ICOptions {
	if o.PinSpacing <= 0 {
		o.PinSpacing = DefaultPinSpacing
	}
	if o.LeadLen <= 0 {
		o.LeadLen = DefaultLeadLen
	}
	switch {
	case o.PadW == 0:
		o.PadW = DefaultPadW
	case o.PadW < 0:
		o.PadW = 0
	}
	switch {
	case o.PadH == 0:
		o.PadH = DefaultPadH
	case o.PadH < 0:
		o.PadH = 0
	}
	return o
}

// DeclareIC builds an IC template. The body spans [0,W]x[0,H]; a pin in slot
// k/n on a vertical side sits at y = PadH + (H-2*PadH)*(k-0.5)/n and on a
// horizontal side at x = PadW + (W-2*PadW)*(k-0.5)/n. Pins on the same side
// may not share a slot or a resolved position.
func DeclareIC(pins []Pin, opts ICOptions) (*Template, error) {
	if len(pins) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "ic %s: at least one pin is required", opts.Name)
	}
	o := opts.withDefaults()

	pins = slices.Clone(pins)
	perSide := map[Side]int{}
	for i, p := range pins {
		side, err := ParseSide(string(p.Side))
		if err != nil {
			return nil, errors.Context(err, errors.ErrCodeInvalidInput, "pin %s", p.Anchor())
		}
		pins[i].Side = side
		if err := p.Slot.validate(); err != nil {
			return nil, errors.Context(err, errors.ErrCodeInvalidInput, "pin %s", p.Anchor())
		}
		perSide[side] = max(perSide[side], p.Slot.Count)
	}

	w, h := o.Width, o.Height
	if h <= 0 {
		h = float64(max(perSide[SideLeft], perSide[SideRight], 1))*o.PinSpacing + 2*o.PadH
	}
	if w <= 0 {
		w = float64(max(perSide[SideTop], perSide[SideBottom]))*o.PinSpacing + 2*o.PadW
	}
	if 2*o.PadH >= h || 2*o.PadW >= w {
		if perSide[SideLeft]+perSide[SideRight] > 0 && 2*o.PadH >= h {
			return nil, errors.New(errors.ErrCodeInvalidInput, "ic %s: vertical padding leaves no room for pins", o.Name)
		}
		if perSide[SideTop]+perSide[SideBottom] > 0 && 2*o.PadW >= w {
			return nil, errors.New(errors.ErrCodeInvalidInput, "ic %s: horizontal padding leaves no room for pins", o.Name)
		}
	}

	type slotKey struct {
		side Side
		slot Slot
	}
	taken := map[slotKey]string{}
	positions := map[Side]map[float64]string{}

	body := geom.NewBox(0, 0, w, h)
	anchors := make([]Anchor, 0, len(pins)*2+1)
	geoms := make([]PinGeometry, 0, len(pins))
	for _, p := range pins {
		name := p.Anchor()
		key := slotKey{p.Side, p.Slot}
		if other, dup := taken[key]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateSlot,
				"ic %s: pins %s and %s both claim %s slot %s", o.Name, other, name, p.Side, p.Slot)
		}
		taken[key] = name

		var base, tip geom.Point
		if p.Side.vertical() {
			y := o.PadH + (h-2*o.PadH)*p.Slot.Fraction()
			if p.Side == SideLeft {
				base, tip = geom.Pt(0, y), geom.Pt(-o.LeadLen, y)
			} else {
				base, tip = geom.Pt(w, y), geom.Pt(w+o.LeadLen, y)
			}
		} else {
			x := o.PadW + (w-2*o.PadW)*p.Slot.Fraction()
			if p.Side == SideBottom {
				base, tip = geom.Pt(x, 0), geom.Pt(x, -o.LeadLen)
			} else {
				base, tip = geom.Pt(x, h), geom.Pt(x, h+o.LeadLen)
			}
		}

		pos := roundKey(base)
		if positions[p.Side] == nil {
			positions[p.Side] = map[float64]string{}
		}
		if other, dup := positions[p.Side][pos]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateSlot,
				"ic %s: pins %s and %s resolve to the same %s position", o.Name, other, name, p.Side)
		}
		positions[p.Side][pos] = name

		anchors = append(anchors, Anchor{Name: name, Point: tip})
		geoms = append(geoms, PinGeometry{Name: p.Name, Number: p.Number, Side: p.Side, Base: base, Tip: tip})
	}

	// pinN aliases, added after the named anchors so that names win.
	names := map[string]bool{"center": true}
	for _, a := range anchors {
		names[a.Name] = true
	}
	exit := anchors[len(anchors)-1].Name
	for i, p := range pins {
		alias := "pin" + p.Number
		if p.Number == "" || names[alias] {
			continue
		}
		names[alias] = true
		anchors = append(anchors, Anchor{Name: alias, Point: geoms[i].Tip})
	}
	anchors = append(anchors, Anchor{Name: "center", Point: body.Center()})

	footprint := body.Extend(geom.Pt(-o.LeadLen, 0)).Extend(geom.Pt(w+o.LeadLen, h))
	if perSide[SideTop] > 0 {
		footprint = footprint.Extend(geom.Pt(0, h+o.LeadLen))
	}
	if perSide[SideBottom] > 0 {
		footprint = footprint.Extend(geom.Pt(0, -o.LeadLen))
	}
	if perSide[SideLeft] == 0 {
		footprint.Min.X = 0
	}
	if perSide[SideRight] == 0 {
		footprint.Max.X = w
	}

	t, err := Declare(KindIC, anchors, footprint,
		WithName(o.Name),
		WithRotation(RotateQuarter),
		WithStart("center"),
		WithExit(exit),
	)
	if err != nil {
		return nil, err
	}
	t.Body = body
	t.Pins = geoms
	return t, nil
}

// roundKey quantizes a side coordinate for coincidence checks.
func roundKey(p geom.Point) float64 {
	return math.Round((p.X+p.Y)*1e6) / 1e6
}
