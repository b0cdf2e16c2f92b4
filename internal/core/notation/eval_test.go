package notation

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/louisbranch/dicenotation/internal/core/dice"
)

// scriptedSource replays fixed Int63n results.
type scriptedSource struct {
	draws []int64
}

func (s *scriptedSource) Int63n(n int64) int64 {
	if len(s.draws) == 0 {
		panic("scripted source exhausted")
	}
	next := s.draws[0]
	s.draws = s.draws[1:]
	if next < 0 || next >= n {
		panic(fmt.Sprintf("scripted draw %d outside [0, %d)", next, n))
	}
	return next
}

// faces scripts a source whose standard dice show the given faces.
func faces(values ...int64) *scriptedSource {
	draws := make([]int64, len(values))
	for i, v := range values {
		draws[i] = v - 1
	}
	return &scriptedSource{draws: draws}
}

func evaluate(t *testing.T, input string, rng dice.Source) int64 {
	t.Helper()
	total, err := Evaluate(mustParse(t, input), rng)
	if err != nil {
		t.Fatalf("Evaluate(%q) returned error: %v", input, err)
	}
	return total
}

func assertRange(t *testing.T, input string, low, high int64, rng dice.Source) int64 {
	t.Helper()
	got := evaluate(t, input, rng)
	if got < low || got > high {
		t.Fatalf("Evaluate(%q) = %d, want within [%d, %d]", input, got, low, high)
	}
	return got
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"7", 7},
		{"-7", -7},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10 - 2 - 3", 5},
		{"8/2/2", 2},
		{"7/2", 3},
		{"-7/2", -3},
		{"3 - -2", 5},
		{"((4))", 4},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := evaluate(t, tt.input, &scriptedSource{}); got != tt.want {
				t.Fatalf("Evaluate(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluateStandardRollRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int64{-5, -1, 1, 3, 10} {
		for _, s := range []int64{1, 2, 6, 20} {
			input := fmt.Sprintf("%dd%d", n, s)
			abs := n
			sign := int64(1)
			if n < 0 {
				abs, sign = -n, -1
			}
			low, high := sign*abs, sign*abs*s
			if low > high {
				low, high = high, low
			}
			for i := 0; i < 20; i++ {
				assertRange(t, input, low, high, rng)
			}
		}
	}
}

func TestEvaluateRollProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		assertRange(t, "4d6", 4, 24, rng)
	}
	assertRange(t, "2d6 + 4", 6, 16, rng)
	assertRange(t, "-3d6", -18, -3, rng)
	assertRange(t, "4d6best3", 3, 18, rng)
	assertRange(t, "-2d[5,6,7]", -14, -10, rng)
	assertRange(t, "2d[-1,0]", -2, 0, rng)
	assertRange(t, "1d20adv", 1, 20, rng)
	assertRange(t, "1d20dis", 1, 20, rng)
	assertRange(t, "3d6!", 3, 1<<20, rng)
}

func TestEvaluateDiceOperatorIsCaseInsensitive(t *testing.T) {
	upper := evaluate(t, "1D6", rand.New(rand.NewSource(3)))
	lower := evaluate(t, "1d6", rand.New(rand.NewSource(3)))
	if upper != lower {
		t.Fatalf("1D6 = %d, 1d6 = %d; want identical rolls for the same seed", upper, lower)
	}
	if upper < 1 || upper > 6 {
		t.Fatalf("1D6 = %d, want within [1, 6]", upper)
	}
}

func TestEvaluateCustomListIgnoresWhitespace(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		compact := assertRange(t, "2d[5,6,7]", 10, 14, rand.New(rand.NewSource(seed)))
		spaced := assertRange(t, "2d[5, 6, 7]", 10, 14, rand.New(rand.NewSource(seed)))
		if compact != spaced {
			t.Fatalf("seed %d: 2d[5,6,7] = %d, 2d[5, 6, 7] = %d", seed, compact, spaced)
		}
	}
}

func TestEvaluateScriptedRolls(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rng   *scriptedSource
		want  int64
	}{
		{name: "best three of four", input: "4d6best3", rng: faces(1, 6, 3, 2), want: 11},
		{name: "worst one of four", input: "4d6worst1", rng: faces(4, 6, 3, 2), want: 2},
		{name: "best clamps to count", input: "2d6best9", rng: faces(4, 5), want: 9},
		{name: "advantage", input: "1d20adv", rng: faces(3, 17), want: 17},
		{name: "disadvantage", input: "1d20dis", rng: faces(3, 17), want: 3},
		{name: "negative count", input: "-3d6", rng: faces(1, 2, 3), want: -6},
		{name: "roll plus constant", input: "2d6 + 4", rng: faces(6, 6), want: 16},
		{name: "custom faces", input: "2d[5,6,7]", rng: &scriptedSource{draws: []int64{0, 2}}, want: 12},
		{name: "negative custom count", input: "-2d[5,6,7]", rng: &scriptedSource{draws: []int64{1, 1}}, want: -12},
		{name: "custom with best", input: "3d[1,10,100]best1", rng: &scriptedSource{draws: []int64{0, 2, 1}}, want: 100},
		{name: "exploding", input: "1d6!", rng: faces(6, 6, 1), want: 13},
		{name: "exploding with best", input: "2d6!best1", rng: faces(6, 2, 5), want: 8},
		{name: "right associative chain", input: "2d3d4", rng: faces(1, 2, 3, 5, 6), want: 11},
		{name: "rolled count", input: "(1d2)d6", rng: faces(2, 3, 4), want: 7},
		{name: "multiplied roll", input: "2 * 1d6", rng: faces(5), want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluate(t, tt.input, tt.rng); got != tt.want {
				t.Fatalf("Evaluate(%q) = %d, want %d", tt.input, got, tt.want)
			}
			if len(tt.rng.draws) != 0 {
				t.Fatalf("expected every scripted draw consumed, %d left", len(tt.rng.draws))
			}
		})
	}
}

func TestEvaluateValidationErrors(t *testing.T) {
	tests := []struct {
		input   string
		cause   error
		message string
	}{
		{input: "0d6", cause: dice.ErrZeroCount, message: "zero"},
		{input: "3d-6", cause: dice.ErrInvalidSides, message: "greater than zero"},
		{input: "3d0", cause: dice.ErrInvalidSides, message: "greater than zero"},
		{input: "0d0", cause: dice.ErrInvalidSides, message: "greater than zero"},
		{input: "(0d6)d6", cause: dice.ErrZeroCount, message: "0d6"},
		{input: "2d(3d-1)", cause: dice.ErrInvalidSides, message: "3d-1"},
		{input: "2d6best0", cause: dice.ErrInvalidKeep, message: "at least one"},
		{input: "2d6worst-2", cause: dice.ErrInvalidKeep, message: "at least one"},
		{input: "3d1!", cause: dice.ErrExplodingSides, message: "more than one side"},
		{input: "3d0!", cause: dice.ErrInvalidSides, message: "greater than zero"},
		{input: "0d[1,2]", cause: dice.ErrZeroCount, message: "zero"},
		{input: "1/0", cause: ErrDivisionByZero, message: "division by zero"},
		{input: "1 + 6/(2-2)", cause: ErrDivisionByZero, message: "division by zero"},
		{input: "4000000000000000000d6best1", cause: dice.ErrCountOutOfRange, message: "out of range"},
		{input: "20000000d6adv", cause: dice.ErrCountOutOfRange, message: "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Evaluate(mustParse(t, tt.input), rand.New(rand.NewSource(4)))
			if err == nil {
				t.Fatalf("Evaluate(%q) expected error", tt.input)
			}
			if !IsValidationError(err) {
				t.Fatalf("Evaluate(%q) error = %v, want validation error", tt.input, err)
			}
			if IsSyntaxError(err) {
				t.Fatalf("Evaluate(%q) error classified as syntax", tt.input)
			}
			if !errors.Is(err, tt.cause) {
				t.Fatalf("Evaluate(%q) error = %v, want cause %v", tt.input, err, tt.cause)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("Evaluate(%q) error = %q, want it to mention %q", tt.input, err.Error(), tt.message)
			}
		})
	}
}

func TestEvaluateRejectsNilSource(t *testing.T) {
	for _, input := range []string{"1 + 2", "2d6"} {
		_, err := Evaluate(mustParse(t, input), nil)
		if !errors.Is(err, dice.ErrNilSource) {
			t.Fatalf("Evaluate(%q, nil) error = %v, want %v", input, err, dice.ErrNilSource)
		}
		if IsValidationError(err) || IsSyntaxError(err) {
			t.Fatalf("Evaluate(%q, nil) error classified as notation error: %v", input, err)
		}
	}
}

func TestEvaluateDeterministicForSeed(t *testing.T) {
	const input = "4d6best3 + 2d[1,3,5]adv - 1d8!"
	a := evaluate(t, input, rand.New(rand.NewSource(99)))
	b := evaluate(t, input, rand.New(rand.NewSource(99)))
	if a != b {
		t.Fatalf("seeded evaluations differ: %d vs %d", a, b)
	}
}
