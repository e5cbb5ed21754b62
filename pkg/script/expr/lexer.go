package expr

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes expressions and the statement language built on them.
// Key must precede Ident so that `name=` lexes as one token.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Key", Pattern: `[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)?[ \t]*=`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[-+*/(),.:\[\]]`},
	{Name: "EOL", Pattern: `[\n;]+`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})
