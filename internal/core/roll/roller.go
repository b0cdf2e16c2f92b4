package roll

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/louisbranch/dicenotation/internal/core/dice"
)

// Roller keeps a notation string together with its most recent total, so a
// kind of roll can be stored once and repeated on demand.
//
// A Roller owns its generator and is not safe for concurrent use.
type Roller struct {
	notation string
	total    int64
	rng      dice.Source
}

// New rolls notation once and returns the Roller. It panics when notation
// cannot be rolled.
func New(notation string) *Roller {
	r, err := NewOrFail(notation)
	if err != nil {
		panic(fmt.Errorf("roll %q: %w", notation, err))
	}
	return r
}

// NewOrFail rolls notation once with a freshly seeded generator.
func NewOrFail(notation string) (*Roller, error) {
	rng, err := newRand()
	if err != nil {
		return nil, err
	}
	return NewWithSource(notation, rng)
}

// NewWithSource rolls notation once, drawing from rng for this and every
// later reroll.
func NewWithSource(notation string, rng dice.Source) (*Roller, error) {
	r := &Roller{notation: notation, rng: rng}
	if _, err := r.RerollOrFail(); err != nil {
		return nil, err
	}
	return r, nil
}

// Notation returns the stored notation string.
func (r *Roller) Notation() string {
	return r.notation
}

// Total returns the result of the last roll.
func (r *Roller) Total() int64 {
	return r.total
}

// Reroll rolls again, stores the new total and returns it. It panics when
// the roll fails, which only happens for notation whose validity depends on
// earlier dice, such as "(1d2-1)d6".
func (r *Roller) Reroll() int64 {
	total, err := r.RerollOrFail()
	if err != nil {
		panic(fmt.Errorf("roll %q: %w", r.notation, err))
	}
	return total
}

// RerollOrFail rolls again. On failure the stored total is left unchanged.
func (r *Roller) RerollOrFail() (int64, error) {
	total, err := EvaluateWithSource(r.notation, r.rng)
	if err != nil {
		return 0, err
	}
	r.total = total
	return total, nil
}

// Iter returns an infinite sequence of rerolls. Every value drawn also
// becomes the stored total; callers must stop ranging themselves.
func (r *Roller) Iter() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for {
			if !yield(r.Reroll()) {
				return
			}
		}
	}
}

// Compare orders Rollers by their current totals.
func (r *Roller) Compare(other *Roller) int {
	return cmp.Compare(r.total, other.total)
}

// Equal reports whether both Rollers currently hold the same total.
func (r *Roller) Equal(other *Roller) bool {
	return r.total == other.total
}

// String renders the Roller as "[notation: total]".
func (r *Roller) String() string {
	return fmt.Sprintf("[%s: %d]", r.notation, r.total)
}
