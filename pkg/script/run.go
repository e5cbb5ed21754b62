package script

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circuitdraw/pkg/drawing"
	"github.com/matzehuels/circuitdraw/pkg/element"
	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/scene"
	"github.com/matzehuels/circuitdraw/pkg/script/expr"
)

// RunOptions configure document execution.
type RunOptions struct {
	Logger *log.Logger

	// Variant selects a parameter overlay; empty uses the base params.
	Variant string
	// Overrides are applied after the variant.
	Overrides map[string]float64
}

// Run executes doc in a fresh builder and returns the finalized scene.
func Run(ctx context.Context, doc *Document, opts RunOptions) (*scene.Scene, error) {
	unit := doc.Drawing.Unit
	if unit == 0 {
		unit = drawing.DefaultUnit
	}
	b := drawing.New(drawing.WithUnit(unit))
	if err := Execute(ctx, doc, b, opts); err != nil {
		return nil, err
	}
	return b.Finalize(), nil
}

// Execute replays the document steps into b. It stops at the first
// failing step; the error keeps the step's code and names the step.
func Execute(ctx context.Context, doc *Document, b *drawing.Builder, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	params, err := doc.ResolveParams(opts.Variant, opts.Overrides)
	if err != nil {
		return err
	}
	templates, err := doc.Templates()
	if err != nil {
		return err
	}

	r := &runner{b: b, templates: templates, vars: map[string]expr.Value{}, logger: logger}
	for k, v := range params {
		r.vars[k] = expr.Scalar(v)
	}
	for i, s := range doc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.step(s); err != nil {
			return errors.Context(err, errors.ErrCodeInvalidDocument, "%s", s.where(i))
		}
	}
	logger.Debug("document executed", "title", doc.Title, "steps", len(doc.Steps), "variant", opts.Variant)
	return nil
}

type runner struct {
	b         *drawing.Builder
	templates map[string]*element.Template
	vars      map[string]expr.Value
	logger    *log.Logger
}

// Lookup implements expr.Env.
func (r *runner) Lookup(name string) (expr.Value, bool) {
	switch name {
	case "here":
		return expr.PointValue(r.b.Here()), true
	case "unit":
		return expr.Scalar(r.b.Unit()), true
	}
	v, ok := r.vars[name]
	return v, ok
}

// Anchor implements expr.Env.
func (r *runner) Anchor(id, anchor string) (geom.Point, error) {
	return r.b.ResolveRef(id, anchor)
}

func (r *runner) number(e *Expr) (float64, error) {
	return e.AST().Number(r)
}

func (r *runner) point(e *Expr) (geom.Point, error) {
	return e.AST().Point(r)
}

// anchorRef returns id and anchor when e is exactly Inst.Anchor.
func (r *runner) anchorRef(e *Expr) (id, anchor string, ok bool) {
	ref, ok := e.AST().Ref()
	if !ok || len(ref.Path) != 1 {
		return "", "", false
	}
	if _, isVar := r.Lookup(ref.Name); isVar {
		return "", "", false
	}
	return ref.Name, ref.Path[0].Name(), true
}

// heading returns the step direction, or false to keep the cursor heading.
func (r *runner) heading(s Step) (geom.Angle, bool, error) {
	switch {
	case s.Theta != nil:
		v, err := r.number(s.Theta)
		return geom.Angle(v).Normalize(), true, err
	case s.Dir != "":
		a, err := geom.ParseAngle(s.Dir)
		if err != nil {
			return 0, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "dir")
		}
		return a, true, nil
	}
	return 0, false, nil
}

func (r *runner) labels(s Step) ([]drawing.LabelSpec, error) {
	out := make([]drawing.LabelSpec, 0, len(s.Labels))
	for _, l := range s.Labels {
		loc, ok := drawing.ParseLoc(l.Loc)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "label %q: unknown loc %q", l.Text, l.Loc)
		}
		spec := drawing.LabelSpec{Text: l.Text, Loc: loc, Anchor: l.Anchor, FontSize: l.FontSize}
		if l.Offset != nil {
			v, err := l.Offset.AST().Eval(r)
			if err != nil {
				return nil, errors.Context(err, errors.ErrCodeInvalidInput, "label %q offset", l.Text)
			}
			if v.IsPoint {
				spec.Offset = v.Point
			} else {
				spec.Distance = v.Scalar
			}
		}
		out = append(out, spec)
	}
	return out, nil
}

func (r *runner) step(s Step) error {
	switch strings.ToLower(s.Op) {
	case OpPush:
		r.b.Push()
		return nil
	case OpPop:
		_, err := r.b.Pop()
		return err
	case OpMark:
		at := r.b.Here()
		if s.At != nil {
			p, err := r.point(s.At)
			if err != nil {
				return err
			}
			at = p
		}
		return r.bind(s.Name, at)
	case OpMove:
		return r.move(s)
	case OpLine:
		return r.line(s)
	case OpAnnotate:
		return r.annotate(s)
	case string(element.KindDot):
		return r.junction(s)
	}
	return r.place(s)
}

func (r *runner) move(s Step) error {
	if s.To != nil {
		if id, anchor, ok := r.anchorRef(s.To); ok {
			_, err := r.b.MoveToRef(id, anchor)
			return err
		}
		p, err := r.point(s.To)
		if err != nil {
			return err
		}
		_, err = r.b.MoveTo(p)
		return err
	}
	dir, ok, err := r.heading(s)
	if err != nil {
		return err
	}
	if !ok {
		dir = r.b.Cursor().Heading
	}
	if s.Length == nil {
		return errors.New(errors.ErrCodeInvalidInput, "move needs a length or a target")
	}
	d, err := r.number(s.Length)
	if err != nil {
		return err
	}
	_, err = r.b.MoveBy(dir, d)
	return err
}

func (r *runner) line(s Step) error {
	labels, err := r.labels(s)
	if err != nil {
		return err
	}
	opts := []drawing.RouteOption{drawing.WireLabel(labels...)}
	if s.At != nil {
		from, err := r.point(s.At)
		if err != nil {
			return err
		}
		opts = append(opts, drawing.From(from))
	}

	if s.To != nil {
		if id, anchor, ok := r.anchorRef(s.To); ok {
			_, err := r.b.LineToRef(id, anchor, opts...)
			return err
		}
		p, err := r.point(s.To)
		if err != nil {
			return err
		}
		_, err = r.b.LineTo(p, opts...)
		return err
	}

	dir, ok, err := r.heading(s)
	if err != nil {
		return err
	}
	if !ok {
		dir = r.b.Cursor().Heading
	}
	length := r.b.Unit()
	if s.Length != nil {
		if length, err = r.number(s.Length); err != nil {
			return err
		}
	}
	_, err = r.b.LineBy(dir, length, opts...)
	return err
}

func (r *runner) annotate(s Step) error {
	inst := r.b.Last()
	if s.ID != "" {
		var ok bool
		if inst, ok = r.b.Instance(s.ID); !ok {
			return errors.New(errors.ErrCodeUnresolvedAnchor, "annotate: %s is not placed yet", s.ID)
		}
	}
	if inst == nil {
		return errors.New(errors.ErrCodeInvalidInput, "annotate: nothing placed yet")
	}
	labels, err := r.labels(s)
	if err != nil {
		return err
	}
	if s.Text != "" {
		labels = append([]drawing.LabelSpec{drawing.Label(s.Text, drawing.LocTop)}, labels...)
	}
	return r.b.Annotate(inst, labels...)
}

// junction handles dot steps: a connection marker at the cursor, or at At
// (which also moves the cursor there).
func (r *runner) junction(s Step) error {
	if s.At != nil {
		p, err := r.point(s.At)
		if err != nil {
			return err
		}
		if _, err := r.b.MoveTo(p); err != nil {
			return err
		}
	}
	labels, err := r.labels(s)
	if err != nil {
		return err
	}
	if s.Text != "" {
		labels = append([]drawing.LabelSpec{drawing.Label(s.Text, drawing.LocTop)}, labels...)
	}
	if _, err := r.b.PlaceJunction(s.Open, labels...); err != nil {
		return err
	}
	if s.ID != "" {
		return r.bind(s.ID, r.b.Here())
	}
	return nil
}

// bind names a point. Instance ids cannot be reused as variable names.
func (r *runner) bind(name string, p geom.Point) error {
	if _, placed := r.b.Instance(name); placed {
		return errors.New(errors.ErrCodeInvalidInput, "%q is already an instance id", name)
	}
	r.vars[name] = expr.PointValue(p)
	return nil
}

func (r *runner) template(s Step) (*element.Template, error) {
	if t, ok := r.templates[s.Op]; ok {
		return t, nil
	}
	kind, ok := element.Lookup(s.Op)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownElement, "unknown element %q", s.Op)
	}
	if !element.IsTwoTerminal(kind) {
		return element.New(kind, element.Options{})
	}

	length := r.b.Unit()
	if s.Scale > 0 {
		length *= s.Scale
	}
	if s.Length != nil {
		var err error
		if length, err = r.number(s.Length); err != nil {
			return nil, err
		}
	}
	return element.TwoTerminal(kind, length, element.Params{Polar: s.Polar, Scale: s.Scale})
}

func (r *runner) place(s Step) error {
	t, err := r.template(s)
	if err != nil {
		return err
	}
	labels, err := r.labels(s)
	if err != nil {
		return err
	}
	if s.Text != "" {
		loc := drawing.LocTop
		if t.Kind == element.KindText {
			loc = drawing.LocCenter
		}
		labels = append([]drawing.LabelSpec{drawing.Label(s.Text, loc)}, labels...)
	}

	opts := []drawing.PlaceOption{drawing.WithLabel(labels...)}
	if s.ID != "" {
		if _, isVar := r.vars[s.ID]; isVar {
			return errors.New(errors.ErrCodeInvalidInput, "id %q is already a parameter or mark", s.ID)
		}
		opts = append(opts, drawing.ID(s.ID))
	}
	dir, ok, err := r.heading(s)
	if err != nil {
		return err
	}
	if ok {
		opts = append(opts, drawing.Toward(dir))
	}
	if s.At != nil {
		p, err := r.point(s.At)
		if err != nil {
			return err
		}
		opts = append(opts, drawing.At(p))
	}
	if s.To != nil {
		p, err := r.point(s.To)
		if err != nil {
			return err
		}
		opts = append(opts, drawing.To(p))
	}
	if s.Anchor != "" {
		opts = append(opts, drawing.Anchor(s.Anchor))
	}
	if s.Rotate != nil {
		a, err := r.number(s.Rotate)
		if err != nil {
			return err
		}
		opts = append(opts, drawing.Orient(geom.Angle(a).Normalize()))
	}
	if s.Reverse {
		opts = append(opts, drawing.Reverse())
	}

	res, err := r.b.Place(t, opts...)
	if err != nil {
		return err
	}
	r.logger.Debug("placed", "element", res.Instance.Name(), "at", res.Instance.Origin, "exit", res.Cursor.Pos)
	return nil
}
