package drawing

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

// LabelGap is the clearance between a footprint edge and its label.
const LabelGap = 0.1

// Loc is where a label sits relative to the thing it annotates, in that
// thing's local frame: top is the +y side, left is the start side.
type Loc string

const (
	LocTop    Loc = "top"
	LocBottom Loc = "bot"
	LocLeft   Loc = "left"
	LocRight  Loc = "right"
	LocCenter Loc = "center"
)

// ParseLoc accepts top, bot (or bottom), left, right and center. ok is false
// for anything else, which callers may treat as an anchor name.
func ParseLoc(s string) (Loc, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "top":
		return LocTop, true
	case "bot", "bottom":
		return LocBottom, true
	case "left":
		return LocLeft, true
	case "right":
		return LocRight, true
	case "center", "centre":
		return LocCenter, true
	}
	return "", false
}

// LabelSpec describes a label before it is resolved to a position.
type LabelSpec struct {
	Text string
	Loc  Loc
	// Anchor pins the label to a component anchor instead of the footprint.
	Anchor string
	// Offset is added in drawing coordinates after placement.
	Offset geom.Point
	// Distance pushes the label further out along Loc.
	Distance float64
	FontSize float64
}

// Label is shorthand for a LabelSpec at loc.
func Label(text string, loc Loc) LabelSpec { return LabelSpec{Text: text, Loc: loc} }

// frame is the local coordinate system of a labelled item.
type frame struct {
	origin      geom.Point
	orientation geom.Angle
	box         geom.Box
	anchor      func(name string) (geom.Point, error)
}

func (f frame) toWorld(p geom.Point) geom.Point {
	return f.origin.Add(p.Rotate(float64(f.orientation)))
}

func (f frame) resolve(spec LabelSpec) (scene.Label, error) {
	loc := spec.Loc
	if loc == "" {
		// Anchored labels sit on the anchor unless told otherwise.
		loc = LocTop
		if spec.Anchor != "" {
			loc = LocCenter
		}
	}
	var dir geom.Point
	switch loc {
	case LocTop:
		dir = geom.Pt(0, 1)
	case LocBottom:
		dir = geom.Pt(0, -1)
	case LocLeft:
		dir = geom.Pt(-1, 0)
	case LocRight:
		dir = geom.Pt(1, 0)
	case LocCenter:
	default:
		return scene.Label{}, errors.New(errors.ErrCodeInvalidInput, "invalid label location %q", loc)
	}
	world := dir.Rotate(float64(f.orientation))

	var at geom.Point
	if spec.Anchor != "" {
		if f.anchor == nil {
			return scene.Label{}, errors.New(errors.ErrCodeUnknownAnchor, "label anchor %q on an item without anchors", spec.Anchor)
		}
		p, err := f.anchor(spec.Anchor)
		if err != nil {
			return scene.Label{}, err
		}
		gap := 0.0
		if loc != LocCenter {
			gap = LabelGap
		}
		at = p.Add(world.Scale(gap + spec.Distance))
	} else {
		c := f.box.Center()
		var local geom.Point
		switch loc {
		case LocTop:
			local = geom.Pt(c.X, f.box.Max.Y+LabelGap)
		case LocBottom:
			local = geom.Pt(c.X, f.box.Min.Y-LabelGap)
		case LocLeft:
			local = geom.Pt(f.box.Min.X-LabelGap, c.Y)
		case LocRight:
			local = geom.Pt(f.box.Max.X+LabelGap, c.Y)
		default:
			local = c
		}
		at = f.toWorld(local.Add(dir.Scale(spec.Distance)))
	}

	at = at.Add(spec.Offset)
	if err := checkFinite("label "+strconv.Quote(spec.Text), at); err != nil {
		return scene.Label{}, err
	}
	if !geom.Finite(spec.FontSize) {
		return scene.Label{}, errors.New(errors.ErrCodeInvalidInput, "label %q: font size %g is not finite", spec.Text, spec.FontSize)
	}

	align, valign := alignFor(world)
	return scene.Label{
		Text:     spec.Text,
		At:       at.Round(),
		Align:    align,
		VAlign:   valign,
		FontSize: spec.FontSize,
	}, nil
}

// alignFor picks text alignment so that the text grows away from the item.
func alignFor(d geom.Point) (scene.Align, scene.VAlign) {
	switch {
	case d.Eq(geom.Point{}):
		return scene.AlignMiddle, scene.VAlignMiddle
	case math.Abs(d.X) > math.Abs(d.Y)+geom.Epsilon:
		if d.X > 0 {
			return scene.AlignStart, scene.VAlignMiddle
		}
		return scene.AlignEnd, scene.VAlignMiddle
	case d.Y > 0:
		return scene.AlignMiddle, scene.VAlignBottom
	default:
		return scene.AlignMiddle, scene.VAlignTop
	}
}

func (f frame) resolveAll(specs []LabelSpec) ([]scene.Label, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]scene.Label, 0, len(specs))
	for _, s := range specs {
		l, err := f.resolve(s)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
