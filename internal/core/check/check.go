// Package check compares roll totals against a difficulty.
package check

import "fmt"

// Result is the outcome of a difficulty check.
type Result struct {
	Success bool
	// Margin is total minus difficulty; negative on failure.
	Margin int64
}

// MeetsDifficulty reports whether total reaches difficulty. Ties succeed.
func MeetsDifficulty(total, difficulty int64) bool {
	return total >= difficulty
}

// Check compares total against difficulty.
func Check(total, difficulty int64) Result {
	return Result{
		Success: MeetsDifficulty(total, difficulty),
		Margin:  total - difficulty,
	}
}

// String renders the result as "success by 3", "failure by 2" or, on an
// exact tie, "success".
func (r Result) String() string {
	switch {
	case r.Margin == 0:
		return "success"
	case r.Success:
		return fmt.Sprintf("success by %d", r.Margin)
	default:
		return fmt.Sprintf("failure by %d", -r.Margin)
	}
}
