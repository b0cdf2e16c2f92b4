// Package roll evaluates dice notation in one call.
//
// Evaluate suits untrusted input: it returns syntax and validation failures
// as errors. MustEvaluate suits trusted call sites and panics instead.
// Each call seeds its own generator, so concurrent calls share nothing.
package roll

import (
	"fmt"

	"github.com/louisbranch/dicenotation/internal/core/dice"
	"github.com/louisbranch/dicenotation/internal/core/notation"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
	"github.com/louisbranch/dicenotation/internal/random"
)

// seedFunc is swapped in tests to simulate entropy failures.
var seedFunc = random.NewSeed

// Evaluate parses and rolls input with a freshly seeded generator.
func Evaluate(input string) (int64, error) {
	rng, err := newRand()
	if err != nil {
		return 0, err
	}
	return EvaluateWithSource(input, rng)
}

// EvaluateWithSource parses and rolls input, drawing from rng. A nil rng
// fails with dice.ErrNilSource.
func EvaluateWithSource(input string, rng dice.Source) (int64, error) {
	if rng == nil {
		return 0, fmt.Errorf("roll %q: %w", input, dice.ErrNilSource)
	}
	expr, err := notation.Parse(input)
	if err != nil {
		return 0, err
	}
	return notation.Evaluate(expr, rng)
}

// MustEvaluate is Evaluate for trusted input. It panics with a descriptive
// error on syntax or validation failure.
func MustEvaluate(input string) int64 {
	total, err := Evaluate(input)
	if err != nil {
		panic(fmt.Errorf("roll %q: %w", input, err))
	}
	return total
}

func newRand() (dice.Source, error) {
	seed, err := seedFunc()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSeedUnavailable, "seed dice generator", err)
	}
	return random.NewRand(seed), nil
}
