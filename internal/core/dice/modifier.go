package dice

import (
	"errors"
	"strconv"
)

// ErrInvalidKeep indicates a best/worst modifier keeping fewer than one die.
var ErrInvalidKeep = errors.New("keep count must be at least one")

// ErrUnknownModifier indicates a modifier kind outside the known set.
var ErrUnknownModifier = errors.New("unknown roll modifier")

// ModifierKind selects how drawn samples are aggregated.
type ModifierKind int

const (
	ModifierNone ModifierKind = iota
	ModifierBest
	ModifierWorst
	ModifierAdvantage
	ModifierDisadvantage
)

func (k ModifierKind) String() string {
	switch k {
	case ModifierNone:
		return "None"
	case ModifierBest:
		return "Best"
	case ModifierWorst:
		return "Worst"
	case ModifierAdvantage:
		return "Advantage"
	case ModifierDisadvantage:
		return "Disadvantage"
	default:
		return "Unknown"
	}
}

// Modifier is a roll-selection policy. The zero value keeps every sample.
//
// Best and Worst keep Keep samples. A Keep larger than the number of dice is
// clamped to the number of dice rather than rejected: "2d6best5" is the same
// roll as "2d6". This permissive policy is deliberate.
type Modifier struct {
	Kind ModifierKind
	Keep int64
}

// Best keeps the k highest samples.
func Best(k int64) Modifier {
	return Modifier{Kind: ModifierBest, Keep: k}
}

// Worst keeps the k lowest samples.
func Worst(k int64) Modifier {
	return Modifier{Kind: ModifierWorst, Keep: k}
}

// Advantage doubles the draws and keeps the higher half.
func Advantage() Modifier {
	return Modifier{Kind: ModifierAdvantage}
}

// Disadvantage doubles the draws and keeps the lower half.
func Disadvantage() Modifier {
	return Modifier{Kind: ModifierDisadvantage}
}

// Validate reports whether the modifier can be applied.
func (m Modifier) Validate() error {
	switch m.Kind {
	case ModifierNone, ModifierAdvantage, ModifierDisadvantage:
		return nil
	case ModifierBest, ModifierWorst:
		if m.Keep < 1 {
			return ErrInvalidKeep
		}
		return nil
	default:
		return ErrUnknownModifier
	}
}

// String renders the modifier as a notation suffix.
func (m Modifier) String() string {
	switch m.Kind {
	case ModifierBest:
		return "best" + strconv.FormatInt(m.Keep, 10)
	case ModifierWorst:
		return "worst" + strconv.FormatInt(m.Keep, 10)
	case ModifierAdvantage:
		return "adv"
	case ModifierDisadvantage:
		return "dis"
	default:
		return ""
	}
}
