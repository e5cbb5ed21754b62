package script

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/matzehuels/circuitdraw/pkg/errors"
	"github.com/matzehuels/circuitdraw/pkg/script/expr"
)

// Expr is an expression field in a document. In TOML and JSON it may be
// written as a number, an expression string or a two-element [x, y] array.
type Expr struct {
	src string
	ast *expr.Expr
}

// NewExpr parses src.
func NewExpr(src string) (*Expr, error) {
	ast, err := expr.Parse(src)
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, ast: ast}, nil
}

// MustExpr is NewExpr for literals.
func MustExpr(src string) *Expr {
	e, err := NewExpr(src)
	if err != nil {
		panic(err)
	}
	return e
}

func exprOf(ast *expr.Expr) *Expr {
	return &Expr{src: ast.String(), ast: ast}
}

// AST returns the parsed expression.
func (e *Expr) AST() *expr.Expr { return e.ast }

func (e *Expr) String() string {
	if e == nil {
		return ""
	}
	return e.src
}

// UnmarshalTOML implements toml.Unmarshaler.
func (e *Expr) UnmarshalTOML(v any) error {
	src, err := exprSource(v)
	if err != nil {
		return err
	}
	return e.set(src)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Expr) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	src, err := exprSource(v)
	if err != nil {
		return err
	}
	return e.set(src)
}

// MarshalText writes the canonical expression text.
func (e Expr) MarshalText() ([]byte, error) {
	if e.ast == nil {
		return []byte(e.src), nil
	}
	return []byte(e.ast.String()), nil
}

func (e *Expr) set(src string) error {
	ast, err := expr.Parse(src)
	if err != nil {
		return err
	}
	e.src, e.ast = src, ast
	return nil
}

func exprSource(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case []any:
		if len(x) != 2 {
			return "", errors.New(errors.ErrCodeInvalidDocument, "point needs two coordinates, got %d", len(x))
		}
		xs, err := exprSource(x[0])
		if err != nil {
			return "", err
		}
		ys, err := exprSource(x[1])
		if err != nil {
			return "", err
		}
		return "(" + xs + ", " + ys + ")", nil
	}
	return "", errors.New(errors.ErrCodeInvalidDocument, "expected a number, expression or [x, y], got %T", v)
}

func sortedStrings(s []string) []string {
	slices.Sort(s)
	return s
}
