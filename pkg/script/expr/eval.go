package expr

import (
	"fmt"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/geom"
)

// Value is a scalar or a point.
type Value struct {
	Scalar  float64
	Point   geom.Point
	IsPoint bool
}

// Scalar wraps a number.
func Scalar(v float64) Value { return Value{Scalar: v} }

// PointValue wraps a point.
func PointValue(p geom.Point) Value { return Value{Point: p, IsPoint: true} }

func (v Value) String() string {
	if v.IsPoint {
		return v.Point.String()
	}
	return fmt.Sprintf("%g", v.Scalar)
}

// checkFinite rejects values that overflowed to infinity or NaN.
func (v Value) checkFinite() error {
	if v.IsPoint && !v.Point.IsFinite() || !v.IsPoint && !geom.Finite(v.Scalar) {
		return errors.New(errors.ErrCodeInvalidInput, "result %s is out of range", v)
	}
	return nil
}

// Env resolves references during evaluation.
type Env interface {
	// Lookup returns a named value (parameters, marks, here).
	Lookup(name string) (Value, bool)
	// Anchor resolves an instance anchor to a point.
	Anchor(id, anchor string) (geom.Point, error)
}

// MapEnv is an Env over a fixed set of names. AnchorFunc may be nil.
type MapEnv struct {
	Vars       map[string]Value
	AnchorFunc func(id, anchor string) (geom.Point, error)
}

func (m MapEnv) Lookup(name string) (Value, bool) {
	v, ok := m.Vars[name]
	return v, ok
}

func (m MapEnv) Anchor(id, anchor string) (geom.Point, error) {
	if m.AnchorFunc == nil {
		return geom.Point{}, errors.New(errors.ErrCodeUnresolvedAnchor, "%s.%s: no instances in scope", id, anchor)
	}
	return m.AnchorFunc(id, anchor)
}

// Eval evaluates e in env.
func (e *Expr) Eval(env Env) (Value, error) {
	acc, err := e.Head.eval(env)
	if err != nil {
		return Value{}, err
	}
	for _, t := range e.Tail {
		rhs, err := t.Term.eval(env)
		if err != nil {
			return Value{}, err
		}
		if acc.IsPoint != rhs.IsPoint {
			return Value{}, errors.New(errors.ErrCodeInvalidInput, "%s: cannot %s a point and a number", e, verb(t.Op))
		}
		if t.Op == "-" {
			rhs = negate(rhs)
		}
		acc = Value{Scalar: acc.Scalar + rhs.Scalar, Point: acc.Point.Add(rhs.Point), IsPoint: acc.IsPoint}
	}
	// Sums of non-finite values stay non-finite, so one check suffices.
	if err := acc.checkFinite(); err != nil {
		return Value{}, err
	}
	return acc, nil
}

// Number evaluates e and requires a scalar.
func (e *Expr) Number(env Env) (float64, error) {
	v, err := e.Eval(env)
	if err != nil {
		return 0, err
	}
	if v.IsPoint {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: expected a number, got point %s", e, v.Point)
	}
	return v.Scalar, nil
}

// Point evaluates e and requires a point.
func (e *Expr) Point(env Env) (geom.Point, error) {
	v, err := e.Eval(env)
	if err != nil {
		return geom.Point{}, err
	}
	if !v.IsPoint {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidInput, "%s: expected a point, got %g", e, v.Scalar)
	}
	return v.Point, nil
}

func verb(op string) string {
	if op == "-" {
		return "subtract"
	}
	return "add"
}

func negate(v Value) Value {
	return Value{Scalar: -v.Scalar, Point: v.Point.Scale(-1), IsPoint: v.IsPoint}
}

func (t *Term) eval(env Env) (Value, error) {
	acc, err := t.Head.eval(env)
	if err != nil {
		return Value{}, err
	}
	if err := acc.checkFinite(); err != nil {
		return Value{}, err
	}
	for _, f := range t.Tail {
		rhs, err := f.Factor.eval(env)
		if err != nil {
			return Value{}, err
		}
		if err := rhs.checkFinite(); err != nil {
			return Value{}, err
		}
		switch {
		case acc.IsPoint && rhs.IsPoint:
			return Value{}, errors.New(errors.ErrCodeInvalidInput, "cannot %s two points", opName(f.Op))
		case f.Op == "/":
			if rhs.IsPoint {
				return Value{}, errors.New(errors.ErrCodeInvalidInput, "cannot divide by a point")
			}
			if rhs.Scalar == 0 {
				return Value{}, errors.New(errors.ErrCodeInvalidInput, "division by zero")
			}
			acc = Value{Scalar: acc.Scalar / rhs.Scalar, Point: acc.Point.Scale(1 / rhs.Scalar), IsPoint: acc.IsPoint}
		case acc.IsPoint:
			acc = PointValue(acc.Point.Scale(rhs.Scalar))
		case rhs.IsPoint:
			acc = PointValue(rhs.Point.Scale(acc.Scalar))
		default:
			acc = Scalar(acc.Scalar * rhs.Scalar)
		}
		if err := acc.checkFinite(); err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

func opName(op string) string {
	if op == "/" {
		return "divide"
	}
	return "multiply"
}

func (f *Factor) eval(env Env) (Value, error) {
	switch {
	case f.Neg != nil:
		v, err := f.Neg.eval(env)
		return negate(v), err
	case f.Number != nil:
		return Scalar(*f.Number), nil
	case f.Group != nil:
		x, err := f.Group.X.Eval(env)
		if err != nil || f.Group.Y == nil {
			return x, err
		}
		y, err := f.Group.Y.Eval(env)
		if err != nil {
			return Value{}, err
		}
		if x.IsPoint || y.IsPoint {
			return Value{}, errors.New(errors.ErrCodeInvalidInput, "point coordinates must be numbers")
		}
		return PointValue(geom.Pt(x.Scalar, y.Scalar)), nil
	case f.Ref != nil:
		return f.Ref.eval(env)
	}
	return Value{}, errors.New(errors.ErrCodeInternal, "empty expression")
}

// eval resolves a variable, or an instance anchor when the name is not a
// variable. Trailing .x and .y select a coordinate.
func (r *Ref) eval(env Env) (Value, error) {
	path := r.Path
	v, ok := env.Lookup(r.Name)
	if !ok {
		if len(path) == 0 {
			return Value{}, errors.New(errors.ErrCodeUnknownName, "unknown name %q", r.Name)
		}
		p, err := env.Anchor(r.Name, path[0].Name())
		if err != nil {
			return Value{}, err
		}
		v, path = PointValue(p), path[1:]
	}
	for _, s := range path {
		if !v.IsPoint || s.Key != nil || (s.Field != "x" && s.Field != "y") {
			return Value{}, errors.New(errors.ErrCodeInvalidInput, "%s: cannot select %q from %s", r, s.Name(), v)
		}
		if s.Field == "x" {
			v = Scalar(v.Point.X)
		} else {
			v = Scalar(v.Point.Y)
		}
	}
	return v, nil
}

// Eval parses and evaluates src.
func Eval(src string, env Env) (Value, error) {
	e, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return e.Eval(env)
}
