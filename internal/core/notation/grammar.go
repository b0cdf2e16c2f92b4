package notation

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The grammar recognizes a flat operand/operator chain. Precedence and
// associativity are resolved afterwards by the climber in parse.go, which is
// what lets the dice operator be right-associative while arithmetic stays
// left-associative.

var notationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `0|[1-9][0-9]*`},
	{Name: "Ident", Pattern: `[a-zA-Z]+`},
	{Name: "Punct", Pattern: `[-+*/()\[\],!]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var notationParser = participle.MustBuild[chain](
	participle.Lexer(notationLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Ident"),
)

// chain is `operand (operator operand)*`.
type chain struct {
	Head *operand  `@@`
	Tail []*binary `@@*`
}

type binary struct {
	Pos     lexer.Position
	Op      string   `@( "+" | "-" | "*" | "/" | "d" )`
	Operand *operand `@@`
}

// operand is an atom plus the roll suffix it may carry. The suffix is only
// legal when the atom is the sides of a dice operator.
type operand struct {
	Pos      lexer.Position
	Atom     *atom     `@@`
	Explode  bool      `@"!"?`
	Modifier *modifier `@@?`
}

type atom struct {
	Pos    lexer.Position
	Number *integer   `  @@`
	Group  *chain     `| "(" @@ ")"`
	Faces  []*integer `| "[" @@ ( "," @@ )* "]"`
}

// integer is a literal with an optional sign. The sign and the digits are
// separate tokens, so adjacency is checked by the climber.
type integer struct {
	Pos      lexer.Position
	Negative bool    `@"-"?`
	Digits   *digits `@@`
}

type digits struct {
	Pos   lexer.Position
	Value string `@Int`
}

type modifier struct {
	Pos          lexer.Position
	Best         *integer `  "best" @@`
	Worst        *integer `| "worst" @@`
	Advantage    bool     `| @"adv"`
	Disadvantage bool     `| @"dis"`
}
