// Package notation parses and evaluates dice notation such as "3d6+2",
// "-2d[5,6,7]" or "4d6best3".
//
// # Grammar
//
//	expr     := term (("+" | "-") term)*
//	term     := factor (("*" | "/") factor)*
//	factor   := roll | "(" expr ")" | integer
//	roll     := factor ("d"|"D") (factor | "[" integer ("," integer)* "]") "!"? modifier?
//	modifier := "best" integer | "worst" integer | "adv" | "dis"
//	integer  := "-"? digit+
//
// The dice operator binds tighter than "*" and "/", which bind tighter than
// "+" and "-". Arithmetic is left-associative; the dice operator is
// right-associative, so "2d3d4" rolls 2 dice whose sides come from "3d4".
// Whitespace between tokens is ignored and keywords are case-insensitive.
// "!" after the sides makes the dice explode on their maximum face.
//
// # Evaluation
//
// Parse builds a fresh tree per call and never consumes randomness; Evaluate
// walks a tree and draws every sample from the Source it is given.
package notation

import (
	"strconv"
	"strings"

	"github.com/louisbranch/dicenotation/internal/core/dice"
)

// Expr is a node of the parse tree. The set of node types is closed.
type Expr interface {
	// Pos is the byte offset of the node's first token in the input.
	Pos() int
	// String renders the node as canonical notation.
	String() string
	expr()
}

// Number is a signed integer literal.
type Number struct {
	Offset int
	Value  int64
}

// Operator is an arithmetic operator.
type Operator int

const (
	Plus Operator = iota
	Minus
	Times
	Slash
)

func (o Operator) String() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Times:
		return "*"
	case Slash:
		return "/"
	default:
		return "?"
	}
}

// BinaryOp applies an arithmetic operator to two evaluated operands.
type BinaryOp struct {
	Offset int
	Op     Operator
	Left   Expr
	Right  Expr
}

// StandardDiceRoll rolls Count dice with Sides sides. Both are evaluated
// sub-expressions, so rolls can be nested.
type StandardDiceRoll struct {
	Offset    int
	Count     Expr
	Sides     Expr
	Exploding bool
	Modifier  dice.Modifier
}

// CustomDiceRoll rolls Count dice whose faces are listed explicitly.
type CustomDiceRoll struct {
	Offset   int
	Count    Expr
	Faces    []int64
	Modifier dice.Modifier
}

// Group is a parenthesized sub-expression.
type Group struct {
	Offset int
	Inner  Expr
}

func (n *Number) Pos() int           { return n.Offset }
func (n *BinaryOp) Pos() int         { return n.Offset }
func (n *StandardDiceRoll) Pos() int { return n.Offset }
func (n *CustomDiceRoll) Pos() int   { return n.Offset }
func (n *Group) Pos() int            { return n.Offset }

func (*Number) expr()           {}
func (*BinaryOp) expr()         {}
func (*StandardDiceRoll) expr() {}
func (*CustomDiceRoll) expr()   {}
func (*Group) expr()            {}

func (n *Number) String() string {
	return strconv.FormatInt(n.Value, 10)
}

func (n *BinaryOp) String() string {
	return n.Left.String() + " " + n.Op.String() + " " + n.Right.String()
}

func (n *StandardDiceRoll) String() string {
	var b strings.Builder
	b.WriteString(n.Count.String())
	b.WriteString("d")
	b.WriteString(n.Sides.String())
	if n.Exploding {
		b.WriteString("!")
	}
	b.WriteString(n.Modifier.String())
	return b.String()
}

func (n *CustomDiceRoll) String() string {
	faces := make([]string, len(n.Faces))
	for i, face := range n.Faces {
		faces[i] = strconv.FormatInt(face, 10)
	}
	return n.Count.String() + "d[" + strings.Join(faces, ", ") + "]" + n.Modifier.String()
}

func (n *Group) String() string {
	return "(" + n.Inner.String() + ")"
}
