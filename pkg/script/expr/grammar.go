package expr

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/circuitdraw/pkg/errors"
)

// Expr is a sum of terms.
type Expr struct {
	Pos  lexer.Position
	Head *Term    `@@`
	Tail []*OpTerm `@@*`
}

type OpTerm struct {
	Op   string `@("+" | "-")`
	Term *Term  `@@`
}

// Term is a product of factors.
type Term struct {
	Head *Factor     `@@`
	Tail []*OpFactor `@@*`
}

type OpFactor struct {
	Op     string  `@("*" | "/")`
	Factor *Factor `@@`
}

// Factor is a negation, number, parenthesized expression or point
// literal, or a reference.
type Factor struct {
	Pos    lexer.Position
	Neg    *Factor  `  "-" @@`
	Number *float64 `| @Number`
	Group  *Group   `| @@`
	Ref    *Ref     `| @@`
}

// Group is (e) or the point literal (x, y).
type Group struct {
	X *Expr `"(" @@`
	Y *Expr `( "," @@ )? ")"`
}

// Ref names a variable or an instance anchor: gap, here, U2.VIN,
// U2["pin.1"], R1.end.x.
type Ref struct {
	Pos  lexer.Position
	Name string      `@Ident`
	Path []*Selector `@@*`
}

type Selector struct {
	Field string  `  "." @Ident`
	Key   *string `| "[" @String "]"`
}

// Name returns the selector text.
func (s *Selector) Name() string {
	if s.Key != nil {
		return *s.Key
	}
	return s.Field
}

// Options shared by every parser built on [Lexer].
var ParserOptions = []participle.Option{
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
}

var parser = participle.MustBuild[Expr](ParserOptions...)

// Parse parses a standalone expression.
func Parse(src string) (*Expr, error) {
	e, err := parser.ParseString("", src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "expression %q", src)
	}
	return e, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Ref returns the reference when e is nothing but a reference.
func (e *Expr) Ref() (*Ref, bool) {
	if e == nil || len(e.Tail) > 0 || len(e.Head.Tail) > 0 {
		return nil, false
	}
	f := e.Head.Head
	return f.Ref, f.Ref != nil
}

func (e *Expr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Expr) write(b *strings.Builder) {
	e.Head.write(b)
	for _, t := range e.Tail {
		b.WriteString(" " + t.Op + " ")
		t.Term.write(b)
	}
}

func (t *Term) write(b *strings.Builder) {
	t.Head.write(b)
	for _, f := range t.Tail {
		b.WriteString(" " + f.Op + " ")
		f.Factor.write(b)
	}
}

func (f *Factor) write(b *strings.Builder) {
	switch {
	case f.Neg != nil:
		b.WriteString("-")
		f.Neg.write(b)
	case f.Number != nil:
		b.WriteString(strconv.FormatFloat(*f.Number, 'g', -1, 64))
	case f.Group != nil:
		b.WriteString("(")
		f.Group.X.write(b)
		if f.Group.Y != nil {
			b.WriteString(", ")
			f.Group.Y.write(b)
		}
		b.WriteString(")")
	case f.Ref != nil:
		b.WriteString(f.Ref.String())
	}
}

func (r *Ref) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	for _, s := range r.Path {
		if s.Key != nil {
			b.WriteString("[" + strconv.Quote(*s.Key) + "]")
		} else {
			b.WriteString("." + s.Field)
		}
	}
	return b.String()
}
