// Package dice draws samples from standard, custom and exploding dice and
// aggregates them under selection modifiers.
//
// # Randomness
//
// Dice never reach for a global generator. Every die is bound to a Source
// supplied by the caller, so a seeded Source makes every draw reproducible.
// *math/rand.Rand satisfies Source.
//
// # Sequences
//
// A Die is an unbounded, non-restartable sequence: each Roll call consumes
// randomness and returns the next sample. Samples adapts a Die to iter.Seq for
// range-over-func use; callers must stop the iteration themselves.
package dice

import (
	"errors"
	"iter"
	"slices"
)

// ErrInvalidSides indicates a standard die with fewer than one side.
var ErrInvalidSides = errors.New("sides must be greater than zero")

// ErrEmptyFaces indicates a custom die without face values.
var ErrEmptyFaces = errors.New("custom dice must have at least one face")

// ErrExplodingSides indicates an exploding die that would explode forever.
var ErrExplodingSides = errors.New("exploding dice must have more than one side")

// ErrNilSource indicates a die or roll without a random source.
var ErrNilSource = errors.New("dice source is nil")

// Source is the random capability dice draw from.
type Source interface {
	// Int63n returns a uniform value in [0, n). n is always positive.
	Int63n(n int64) int64
}

// Die produces one sample per Roll.
type Die interface {
	Roll() int64
}

type standardDie struct {
	rng   Source
	sides int64
}

// Standard returns a die that samples uniformly from [1, sides].
func Standard(rng Source, sides int64) (Die, error) {
	if sides < 1 {
		return nil, ErrInvalidSides
	}
	if rng == nil {
		return nil, ErrNilSource
	}
	return standardDie{rng: rng, sides: sides}, nil
}

func (d standardDie) Roll() int64 {
	return d.rng.Int63n(d.sides) + 1
}

type customDie struct {
	rng   Source
	faces []int64
}

// Custom returns a die that picks uniformly from faces. Any value, including
// zero or a negative number, is a valid face.
func Custom(rng Source, faces []int64) (Die, error) {
	if len(faces) == 0 {
		return nil, ErrEmptyFaces
	}
	if rng == nil {
		return nil, ErrNilSource
	}
	return customDie{rng: rng, faces: slices.Clone(faces)}, nil
}

func (d customDie) Roll() int64 {
	return d.faces[d.rng.Int63n(int64(len(d.faces)))]
}

type explodingDie struct {
	rng   Source
	sides int64
}

// Exploding returns a die that rolls again and adds whenever it shows its
// maximum face. One Roll is one logical die: the running sum up to and
// including the first draw below sides.
func Exploding(rng Source, sides int64) (Die, error) {
	if sides <= 1 {
		return nil, ErrExplodingSides
	}
	if rng == nil {
		return nil, ErrNilSource
	}
	return explodingDie{rng: rng, sides: sides}, nil
}

func (d explodingDie) Roll() int64 {
	var total int64
	for {
		value := d.rng.Int63n(d.sides) + 1
		total += value
		if value < d.sides {
			return total
		}
	}
}

// Samples returns the die's draws as a lazy, infinite sequence.
func Samples(d Die) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for {
			if !yield(d.Roll()) {
				return
			}
		}
	}
}
