// Package check evaluates roll-under tests.
//
// A test succeeds when the dice total is at or below the tested attribute,
// so lower rolls are better.
package check

// Succeeds reports whether total passes a test against target.
func Succeeds(total, target int) bool {
	return total <= target
}

// Margin is how far the roll landed under (positive) or over (negative) the target.
func Margin(total, target int) int {
	return target - total
}

// Result represents the outcome of a roll-under test.
type Result struct {
	Total   int  `json:"total"`
	Target  int  `json:"target"`
	Success bool `json:"success"`
	Margin  int  `json:"margin"`
}

// Check performs a roll-under test and returns the result.
func Check(total, target int) Result {
	return Result{
		Total:   total,
		Target:  target,
		Success: Succeeds(total, target),
		Margin:  Margin(total, target),
	}
}
