package script

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/circuitdraw/pkg/drawing"
	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/script/expr"
)

// circFile is a .circ document: one statement per line (or per ';').
//
//	drawing unit=3 font="Arial" fontsize=11 transparent
//	param gap=2
//	part LM7812 padw=2 padh=0.8
//	pin GND side=left slot="1/2" num="2"
//	U6: LM7812 label.center="U6\nLM7812"
//	line at=U6.GND down 1
//	ground
type circFile struct {
	Statements []*circStatement `( @@ | EOL )*`
}

type circStatement struct {
	Pos     lexer.Position
	ID      string     `( @Ident ":" )?`
	Command string     `@Ident`
	Args    []*circArg `@@*`
}

type circArg struct {
	Pos   lexer.Position
	Key   string     `@Key?`
	Str   *string    `( @String`
	Value *expr.Expr `| @@ )`
}

var circParser = participle.MustBuild[circFile](expr.ParserOptions...)

func (a *circArg) key() string {
	return strings.TrimRight(a.Key, " \t=")
}

// ident returns the argument as a bare name.
func (a *circArg) ident() (string, bool) {
	if a.Value == nil {
		return "", false
	}
	r, ok := a.Value.Ref()
	if !ok || len(r.Path) > 0 {
		return "", false
	}
	return r.Name, true
}

// text accepts a string or a bare name.
func (a *circArg) text() (string, error) {
	if a.Str != nil {
		return *a.Str, nil
	}
	if name, ok := a.ident(); ok {
		return name, nil
	}
	if n, ok := a.literal(); ok {
		return strconv.FormatFloat(n, 'g', -1, 64), nil
	}
	return "", a.errorf("expected text")
}

// literal returns the argument as a plain number, sign included.
func (a *circArg) literal() (float64, bool) {
	if a.Value == nil || len(a.Value.Tail) > 0 || len(a.Value.Head.Tail) > 0 {
		return 0, false
	}
	f, sign := a.Value.Head.Head, 1.0
	for f.Neg != nil {
		f, sign = f.Neg, -sign
	}
	if f.Number == nil {
		return 0, false
	}
	return sign * *f.Number, true
}

func (a *circArg) expr() (*Expr, error) {
	if a.Value == nil {
		return nil, a.errorf("expected an expression")
	}
	return exprOf(a.Value), nil
}

// number evaluates a constant expression against the parameters declared
// so far.
func (a *circArg) number(params map[string]float64) (float64, error) {
	if a.Value == nil {
		return 0, a.errorf("expected a number")
	}
	vars := make(map[string]expr.Value, len(params))
	for k, v := range params {
		vars[k] = expr.Scalar(v)
	}
	return a.Value.Number(expr.MapEnv{Vars: vars})
}

func (a *circArg) errorf(format string, args ...any) error {
	name := a.key()
	if name == "" {
		name = "argument"
	}
	return errors.New(errors.ErrCodeInvalidDocument, "%s: "+format, append([]any{name}, args...)...)
}

// ParseCirc parses the .circ statement language.
func ParseCirc(data []byte, name string) (*Document, error) {
	f, err := circParser.ParseBytes(name, data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse %s", name)
	}
	doc := &Document{Params: map[string]float64{}}
	for _, st := range f.Statements {
		if err := doc.apply(st); err != nil {
			return nil, errors.Context(err, errors.ErrCodeInvalidDocument, "%s:%d", name, st.Pos.Line)
		}
	}
	if len(doc.Params) == 0 {
		doc.Params = nil
	}
	return doc, nil
}

func (d *Document) apply(st *circStatement) error {
	if st.ID != "" {
		switch st.Command {
		case "title", "drawing", "param", "variant", "part", "pin":
			return errors.New(errors.ErrCodeInvalidDocument, "%s does not take an id", st.Command)
		}
	}
	switch st.Command {
	case "title":
		for _, a := range st.Args {
			t, err := a.text()
			if err != nil {
				return err
			}
			d.Title = t
		}
		return nil
	case "drawing":
		return d.applyDrawing(st.Args)
	case "param":
		return d.applyParams(st.Args, d.Params)
	case "variant":
		return d.applyVariant(st.Args)
	case "part":
		return d.applyPart(st.Args)
	case "pin":
		return d.applyPin(st.Args)
	}
	s, err := d.step(st)
	if err != nil {
		return err
	}
	d.Steps = append(d.Steps, s)
	return nil
}

func (d *Document) applyDrawing(args []*circArg) error {
	for _, a := range args {
		var err error
		switch a.key() {
		case "unit":
			d.Drawing.Unit, err = a.number(d.Params)
		case "fontsize":
			d.Drawing.FontSize, err = a.number(d.Params)
		case "font":
			d.Drawing.Font, err = a.text()
		case "color":
			d.Drawing.Color, err = a.text()
		case "background":
			d.Drawing.Background, err = a.text()
		case "":
			if name, ok := a.ident(); ok && name == "transparent" {
				d.Drawing.Transparent = true
				continue
			}
			return a.errorf("unexpected drawing setting")
		default:
			return a.errorf("unknown drawing setting")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) applyParams(args []*circArg, into map[string]float64) error {
	for _, a := range args {
		k := a.key()
		if k == "" || strings.Contains(k, ".") {
			return a.errorf("want name=value")
		}
		if reservedNames[k] {
			return a.errorf("%q is reserved", k)
		}
		v, err := a.number(d.Params)
		if err != nil {
			return err
		}
		into[k] = v
	}
	return nil
}

func (d *Document) applyVariant(args []*circArg) error {
	if len(args) == 0 || args[0].key() != "" {
		return errors.New(errors.ErrCodeInvalidDocument, "variant needs a name")
	}
	name, err := args[0].text()
	if err != nil {
		return err
	}
	if d.Variants == nil {
		d.Variants = map[string]map[string]float64{}
	}
	vals := d.Variants[name]
	if vals == nil {
		vals = map[string]float64{}
		d.Variants[name] = vals
	}
	return d.applyParams(args[1:], vals)
}

func (d *Document) applyPart(args []*circArg) error {
	if len(args) == 0 || args[0].key() != "" {
		return errors.New(errors.ErrCodeInvalidDocument, "part needs a name")
	}
	name, ok := args[0].ident()
	if !ok {
		return args[0].errorf("part name must be an identifier")
	}
	p := Part{Name: name}
	for _, a := range args[1:] {
		var err error
		var n float64
		switch a.key() {
		case "kind":
			p.Kind, err = a.text()
		case "width":
			p.Width, err = a.number(d.Params)
		case "height":
			p.Height, err = a.number(d.Params)
		case "padw":
			p.PadW, err = a.number(d.Params)
		case "padh":
			p.PadH, err = a.number(d.Params)
		case "spacing":
			p.Spacing, err = a.number(d.Params)
		case "lead":
			p.Lead, err = a.number(d.Params)
		case "t1":
			n, err = a.number(d.Params)
			p.T1 = int(n)
		case "t2":
			n, err = a.number(d.Params)
			p.T2 = int(n)
		default:
			return a.errorf("unknown part setting")
		}
		if err != nil {
			return err
		}
	}
	d.Parts = append(d.Parts, p)
	return nil
}

func (d *Document) applyPin(args []*circArg) error {
	if len(d.Parts) == 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "pin before any part")
	}
	part := &d.Parts[len(d.Parts)-1]
	var pin PinSpec
	for _, a := range args {
		var err error
		switch a.key() {
		case "":
			pin.Name, err = a.text()
		case "side":
			pin.Side, err = a.text()
		case "num", "number":
			pin.Number, err = a.text()
		case "anchor":
			pin.Anchor, err = a.text()
		case "slot":
			pin.Slot, err = slotText(a)
		default:
			return a.errorf("unknown pin setting")
		}
		if err != nil {
			return err
		}
	}
	part.Pins = append(part.Pins, pin)
	return nil
}

// slotText accepts slot="k/n" or slot=(k, n).
func slotText(a *circArg) (string, error) {
	if a.Str != nil {
		return *a.Str, nil
	}
	if a.Value != nil && len(a.Value.Tail) == 0 && len(a.Value.Head.Tail) == 0 {
		if g := a.Value.Head.Head.Group; g != nil && g.Y != nil {
			k, err := g.X.Number(expr.MapEnv{})
			if err != nil {
				return "", err
			}
			n, err := g.Y.Number(expr.MapEnv{})
			if err != nil {
				return "", err
			}
			return strconv.Itoa(int(k)) + "/" + strconv.Itoa(int(n)), nil
		}
	}
	return "", a.errorf("want \"k/n\" or (k, n)")
}

var flags = map[string]func(*Step){
	"open":    func(s *Step) { s.Open = true },
	"polar":   func(s *Step) { s.Polar = true },
	"reverse": func(s *Step) { s.Reverse = true },
}

func (d *Document) step(st *circStatement) (Step, error) {
	s := Step{Op: st.Command, ID: st.ID, Line: st.Pos.Line}
	lastLabel := func(a *circArg) (*LabelSpec, error) {
		if len(s.Labels) == 0 {
			return nil, a.errorf("needs a preceding label")
		}
		return &s.Labels[len(s.Labels)-1], nil
	}
	for _, a := range st.Args {
		var err error
		key := a.key()
		switch {
		case key == "":
			err = d.positional(&s, a)
		case key == "label" || strings.HasPrefix(key, "label."):
			err = addLabel(&s, a, strings.TrimPrefix(strings.TrimPrefix(key, "label"), "."))
		case key == "offset" || key == "ofst":
			var l *LabelSpec
			if l, err = lastLabel(a); err == nil {
				l.Offset, err = a.expr()
			}
		case key == "fontsize":
			var l *LabelSpec
			if l, err = lastLabel(a); err == nil {
				l.FontSize, err = a.number(d.Params)
			}
		case key == "id":
			s.ID, err = a.text()
		case key == "dir":
			s.Dir, err = a.text()
		case key == "theta":
			s.Theta, err = a.expr()
		case key == "length" || key == "l":
			s.Length, err = a.expr()
		case key == "at":
			s.At, err = a.expr()
		case key == "to":
			s.To, err = a.expr()
		case key == "rotate":
			s.Rotate, err = a.expr()
		case key == "anchor":
			s.Anchor, err = a.text()
		case key == "name":
			s.Name, err = a.text()
		case key == "text":
			s.Text, err = a.text()
		case key == "scale":
			s.Scale, err = a.number(d.Params)
		default:
			return s, a.errorf("unknown argument for %s", st.Command)
		}
		if err != nil {
			return s, err
		}
	}
	return s, nil
}

// positional handles unkeyed arguments: directions, flags, the mark name
// or annotate target, text, and a length.
func (d *Document) positional(s *Step, a *circArg) error {
	if a.Str != nil {
		s.Text = *a.Str
		return nil
	}
	if name, ok := a.ident(); ok {
		switch {
		case geom.IsDirectionName(name):
			s.Dir = name
		case flags[name] != nil:
			flags[name](s)
		case s.Op == OpMark && s.Name == "":
			s.Name = name
		case s.Op == OpAnnotate && s.ID == "":
			s.ID = name
		case hasParam(d, name):
			return d.length(s, a)
		default:
			return a.errorf("unexpected %q", name)
		}
		return nil
	}
	return d.length(s, a)
}

func hasParam(d *Document, name string) bool {
	_, ok := d.Params[name]
	return ok
}

func (d *Document) length(s *Step, a *circArg) error {
	if s.Length != nil {
		return a.errorf("length given twice")
	}
	e, err := a.expr()
	s.Length = e
	return err
}

func addLabel(s *Step, a *circArg, where string) error {
	text, err := a.text()
	if err != nil {
		return err
	}
	l := LabelSpec{Text: text}
	if where != "" {
		if _, ok := drawing.ParseLoc(where); ok {
			l.Loc = where
		} else {
			l.Anchor = where
		}
	}
	s.Labels = append(s.Labels, l)
	return nil
}
