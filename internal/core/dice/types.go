package dice

import apperrors "github.com/louisbranch/fightfantasy/internal/platform/errors"

var (
	// ErrMissingDice indicates a roll request had no dice specified.
	ErrMissingDice = apperrors.New(apperrors.CodeDiceMissing, "at least one die must be provided")
	// ErrInvalidDiceSpec indicates a die specification has invalid fields.
	ErrInvalidDiceSpec = apperrors.New(apperrors.CodeDiceInvalidSpec, "dice must have positive sides and count")
	// ErrTooManyDice indicates a request over MaxDice.
	ErrTooManyDice = apperrors.New(apperrors.CodeDiceTooMany, "too many dice in one roll")
)

// Spec describes how many dice of a given size to roll.
type Spec struct {
	Sides int `json:"sides"`
	Count int `json:"count"`
}

// Request is a seeded multi-spec roll.
type Request struct {
	Dice []Spec `json:"dice"`
	Seed int64  `json:"seed"`
}

// Roll holds the individual results for one Spec.
type Roll struct {
	Sides   int   `json:"sides"`
	Results []int `json:"results"`
	Total   int   `json:"total"`
}

// Result is the outcome of a Request.
type Result struct {
	Rolls []Roll `json:"rolls"`
	Total int    `json:"total"`
	Seed  int64  `json:"seed"`
}

// Pair is two independent d6 results and their sum.
type Pair struct {
	First  int `json:"first"`
	Second int `json:"second"`
	Sum    int `json:"sum"`
}

// NewPair builds a Pair from two face values.
func NewPair(first, second int) Pair {
	return Pair{First: first, Second: second, Sum: first + second}
}

// Values returns the pair as a slice in roll order.
func (p Pair) Values() []int {
	return []int{p.First, p.Second}
}
