package dice

import (
	"errors"
	"math"
	"slices"
)

// ErrZeroCount indicates a roll of zero dice.
var ErrZeroCount = errors.New("count must not be zero")

// ErrCountOutOfRange indicates a dice count whose magnitude cannot be drawn.
var ErrCountOutOfRange = errors.New("count is out of range")

// MaxBufferedSamples bounds how many samples a modified roll may hold at once.
// Best, worst, advantage and disadvantage sort their draws, so their sample
// count is limited to this; plain sums stream and are not.
const MaxBufferedSamples = 1 << 24

// Roll draws |count| samples from die and aggregates them under mod.
//
// The sign of count is the sign of the result: "-3d6" rolls three ordinary
// dice and negates their total. It never produces negative faces.
//
// # Aggregation
//
//   - ModifierNone sums every sample.
//   - ModifierBest and ModifierWorst draw |count| samples and sum the
//     min(Keep, |count|) highest or lowest.
//   - ModifierAdvantage and ModifierDisadvantage draw 2*|count| samples and
//     sum the |count| highest or lowest.
//
// Ties are broken arbitrarily; sample identity is not observable.
//
// # Errors
//
//   - count == 0 returns ErrZeroCount.
//   - an invalid modifier returns ErrInvalidKeep or ErrUnknownModifier.
//   - a count whose draws cannot be represented, or a modified roll that
//     would buffer more than MaxBufferedSamples, returns ErrCountOutOfRange.
//
// Sums use native int64 arithmetic and are not checked for overflow.
func Roll(die Die, count int64, mod Modifier) (int64, error) {
	if count == 0 {
		return 0, ErrZeroCount
	}
	if count == math.MinInt64 {
		return 0, ErrCountOutOfRange
	}
	if err := mod.Validate(); err != nil {
		return 0, err
	}

	sign := int64(1)
	if count < 0 {
		sign = -1
		count = -count
	}

	var subtotal int64
	switch mod.Kind {
	case ModifierBest, ModifierWorst:
		if count > MaxBufferedSamples {
			return 0, ErrCountOutOfRange
		}
		samples := draw(die, count)
		if mod.Kind == ModifierBest {
			subtotal = sumHighest(samples, min(mod.Keep, count))
		} else {
			subtotal = sumLowest(samples, min(mod.Keep, count))
		}
	case ModifierAdvantage, ModifierDisadvantage:
		if count > MaxBufferedSamples/2 {
			return 0, ErrCountOutOfRange
		}
		samples := draw(die, 2*count)
		if mod.Kind == ModifierAdvantage {
			subtotal = sumHighest(samples, count)
		} else {
			subtotal = sumLowest(samples, count)
		}
	default:
		for sample := range Samples(die) {
			subtotal += sample
			count--
			if count == 0 {
				break
			}
		}
	}

	return sign * subtotal, nil
}

// draw collects n samples, sorted ascending.
func draw(die Die, n int64) []int64 {
	samples := make([]int64, n)
	for i := range samples {
		samples[i] = die.Roll()
	}
	slices.Sort(samples)
	return samples
}

func sumLowest(sorted []int64, k int64) int64 {
	var total int64
	for _, sample := range sorted[:k] {
		total += sample
	}
	return total
}

func sumHighest(sorted []int64, k int64) int64 {
	var total int64
	for _, sample := range sorted[int64(len(sorted))-k:] {
		total += sample
	}
	return total
}
