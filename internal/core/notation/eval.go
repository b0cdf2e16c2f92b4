package notation

import (
	"fmt"

	"github.com/louisbranch/dicenotation/internal/core/dice"
)

// Evaluate computes expr, drawing every die sample from rng.
//
// Arithmetic is native int64 with truncating division and no overflow
// checks. Rolls evaluate Count and Sides first, then validate: sides below
// one, a zero count, an invalid keep count or a zero divisor abort the whole
// evaluation with a validation error (see IsValidationError). Nothing is
// retried and no partial total is returned.
//
// A nil rng is rejected with dice.ErrNilSource before any node is visited.
func Evaluate(expr Expr, rng dice.Source) (int64, error) {
	if rng == nil {
		return 0, fmt.Errorf("evaluate: %w", dice.ErrNilSource)
	}
	return evaluate(expr, rng)
}

func evaluate(expr Expr, rng dice.Source) (int64, error) {
	switch n := expr.(type) {
	case *Number:
		return n.Value, nil
	case *Group:
		return evaluate(n.Inner, rng)
	case *BinaryOp:
		return evaluateBinary(n, rng)
	case *StandardDiceRoll:
		return evaluateStandard(n, rng)
	case *CustomDiceRoll:
		return evaluateCustom(n, rng)
	default:
		return 0, fmt.Errorf("evaluate: unsupported node %T", expr)
	}
}

func evaluateBinary(n *BinaryOp, rng dice.Source) (int64, error) {
	left, err := evaluate(n.Left, rng)
	if err != nil {
		return 0, err
	}
	right, err := evaluate(n.Right, rng)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case Plus:
		return left + right, nil
	case Minus:
		return left - right, nil
	case Times:
		return left * right, nil
	case Slash:
		if right == 0 {
			return 0, newValidationError(n, ErrDivisionByZero)
		}
		return left / right, nil
	default:
		return 0, fmt.Errorf("evaluate: unsupported operator %d", n.Op)
	}
}

func evaluateStandard(n *StandardDiceRoll, rng dice.Source) (int64, error) {
	count, err := evaluate(n.Count, rng)
	if err != nil {
		return 0, err
	}
	sides, err := evaluate(n.Sides, rng)
	if err != nil {
		return 0, err
	}

	var die dice.Die
	if n.Exploding {
		if sides < 1 {
			return 0, newValidationError(n, dice.ErrInvalidSides)
		}
		die, err = dice.Exploding(rng, sides)
	} else {
		die, err = dice.Standard(rng, sides)
	}
	if err != nil {
		return 0, newValidationError(n, err)
	}

	total, err := dice.Roll(die, count, n.Modifier)
	if err != nil {
		return 0, newValidationError(n, err)
	}
	return total, nil
}

func evaluateCustom(n *CustomDiceRoll, rng dice.Source) (int64, error) {
	count, err := evaluate(n.Count, rng)
	if err != nil {
		return 0, err
	}

	die, err := dice.Custom(rng, n.Faces)
	if err != nil {
		return 0, newValidationError(n, err)
	}

	total, err := dice.Roll(die, count, n.Modifier)
	if err != nil {
		return 0, newValidationError(n, err)
	}
	return total, nil
}
