package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/louisbranch/dicenotation/internal/core/dice"
)

// precedence table; higher binds tighter.
type operatorInfo struct {
	precedence int
	rightAssoc bool
}

const diceOperator = "d"

var operators = map[string]operatorInfo{
	"+":          {precedence: 1},
	"-":          {precedence: 1},
	"*":          {precedence: 2},
	"/":          {precedence: 2},
	diceOperator: {precedence: 3, rightAssoc: true},
}

var arithmetic = map[string]Operator{
	"+": Plus,
	"-": Minus,
	"*": Times,
	"/": Slash,
}

// Parse recognizes input and returns its parse tree. Errors are syntax
// errors carrying the offending position (see IsSyntaxError).
func Parse(input string) (Expr, error) {
	tree, err := notationParser.ParseString("", input)
	if err != nil {
		return nil, syntaxErrorFromParser(input, err)
	}
	return build(input, tree)
}

// build resolves one flat chain into a tree by precedence climbing.
func build(input string, c *chain) (Expr, error) {
	cl := &climber{input: input, operands: []*operand{c.Head}}
	for _, tail := range c.Tail {
		cl.ops = append(cl.ops, tail)
		cl.operands = append(cl.operands, tail.Operand)
	}

	result, err := cl.climb(1)
	if err != nil {
		return nil, err
	}
	if err := cl.settled(result); err != nil {
		return nil, err
	}
	return result.expr, nil
}

// pending is a subtree under construction. suffix is non-nil while the
// subtree is still a bare operand that carries faces, "!" or a modifier not
// yet claimed by a dice operator.
type pending struct {
	expr   Expr
	suffix *operand
}

type climber struct {
	input    string
	operands []*operand
	ops      []*binary
	// consumed counts operands taken so far; the next operator is
	// ops[consumed-1].
	consumed int
}

func (c *climber) climb(minPrecedence int) (pending, error) {
	lhs, err := c.operand()
	if err != nil {
		return pending{}, err
	}

	for c.consumed-1 < len(c.ops) {
		op := c.ops[c.consumed-1]
		symbol := strings.ToLower(op.Op)
		info := operators[symbol]
		if info.precedence < minPrecedence {
			break
		}

		next := info.precedence + 1
		if info.rightAssoc {
			next = info.precedence
		}
		rhs, err := c.climb(next)
		if err != nil {
			return pending{}, err
		}

		if symbol == diceOperator {
			lhs, err = c.roll(lhs, rhs)
		} else {
			lhs, err = c.arithmetic(symbol, lhs, rhs)
		}
		if err != nil {
			return pending{}, err
		}
	}
	return lhs, nil
}

func (c *climber) operand() (pending, error) {
	o := c.operands[c.consumed]
	c.consumed++

	p := pending{}
	if o.Explode || o.Modifier != nil || o.Atom.Faces != nil {
		p.suffix = o
	}

	switch {
	case o.Atom.Number != nil:
		value, err := c.integer(o.Atom.Number)
		if err != nil {
			return pending{}, err
		}
		p.expr = &Number{Offset: o.Atom.Pos.Offset, Value: value}
	case o.Atom.Group != nil:
		inner, err := build(c.input, o.Atom.Group)
		if err != nil {
			return pending{}, err
		}
		p.expr = &Group{Offset: o.Atom.Pos.Offset, Inner: inner}
	}
	return p, nil
}

func (c *climber) arithmetic(symbol string, lhs, rhs pending) (pending, error) {
	if err := c.settled(lhs); err != nil {
		return pending{}, err
	}
	if err := c.settled(rhs); err != nil {
		return pending{}, err
	}
	return pending{expr: &BinaryOp{
		Offset: lhs.expr.Pos(),
		Op:     arithmetic[symbol],
		Left:   lhs.expr,
		Right:  rhs.expr,
	}}, nil
}

func (c *climber) roll(lhs, rhs pending) (pending, error) {
	if err := c.settled(lhs); err != nil {
		return pending{}, err
	}

	mod := dice.Modifier{}
	explode := false
	var faces []*integer
	if rhs.suffix != nil {
		var err error
		if mod, err = c.modifier(rhs.suffix.Modifier); err != nil {
			return pending{}, err
		}
		explode = rhs.suffix.Explode
		faces = rhs.suffix.Atom.Faces
	}

	if faces == nil {
		return pending{expr: &StandardDiceRoll{
			Offset:    lhs.expr.Pos(),
			Count:     lhs.expr,
			Sides:     rhs.expr,
			Exploding: explode,
			Modifier:  mod,
		}}, nil
	}

	if explode {
		return pending{}, c.syntaxError(rhs.suffix.Pos, "exploding dice need numeric sides, not a face list")
	}
	values := make([]int64, 0, len(faces))
	for _, face := range faces {
		value, err := c.integer(face)
		if err != nil {
			return pending{}, err
		}
		values = append(values, value)
	}
	return pending{expr: &CustomDiceRoll{
		Offset:   lhs.expr.Pos(),
		Count:    lhs.expr,
		Faces:    values,
		Modifier: mod,
	}}, nil
}

// settled rejects a roll suffix or face list outside the sides of a roll.
func (c *climber) settled(p pending) error {
	if p.suffix == nil {
		return nil
	}
	switch {
	case p.suffix.Atom.Faces != nil:
		return c.syntaxError(p.suffix.Atom.Pos, "face list must follow the dice operator")
	case p.suffix.Modifier != nil:
		return c.syntaxError(p.suffix.Modifier.Pos, "modifier must follow the sides of a roll")
	default:
		return c.syntaxError(p.suffix.Pos, `"!" must follow the sides of a roll`)
	}
}

func (c *climber) modifier(m *modifier) (dice.Modifier, error) {
	switch {
	case m == nil:
		return dice.Modifier{}, nil
	case m.Best != nil:
		keep, err := c.integer(m.Best)
		return dice.Best(keep), err
	case m.Worst != nil:
		keep, err := c.integer(m.Worst)
		return dice.Worst(keep), err
	case m.Advantage:
		return dice.Advantage(), nil
	default:
		return dice.Disadvantage(), nil
	}
}

func (c *climber) integer(i *integer) (int64, error) {
	literal := i.Digits.Value
	if i.Negative {
		if i.Digits.Pos.Offset != i.Pos.Offset+1 {
			return 0, c.syntaxError(i.Digits.Pos, `"-" must be directly followed by digits`)
		}
		literal = "-" + literal
	}
	value, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return 0, c.syntaxError(i.Pos, fmt.Sprintf("integer %s is out of range", literal))
	}
	return value, nil
}

func (c *climber) syntaxError(pos lexer.Position, message string) error {
	return newSyntaxError(c.input, pos, message)
}

func syntaxErrorFromParser(input string, err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return newSyntaxError(input, perr.Position(), perr.Message())
	}
	return newSyntaxError(input, lexer.Position{}, err.Error())
}
