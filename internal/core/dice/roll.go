package dice

import "math/rand"

// MaxDice caps the number of dice in a single free-form roll.
const MaxDice = 100

// RollDice rolls the free-form specs in request with a source seeded from
// request.Seed. The same seed and specs always produce the same Result, and
// Result.Rolls follows the order of request.Dice.
func RollDice(request Request) (Result, error) {
	result, err := RollWithRng(rand.New(rand.NewSource(request.Seed)), request.Dice)
	if err != nil {
		return Result{}, err
	}
	result.Seed = request.Seed
	return result, nil
}

// RollWithRng rolls specs using rng.
//
// It fails with ErrMissingDice for an empty slice, ErrInvalidDiceSpec when a
// spec has non-positive sides or count, and ErrTooManyDice past MaxDice.
func RollWithRng(rng *rand.Rand, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}
	count := 0
	for _, spec := range specs {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}
		if spec.Count > MaxDice-count {
			return Result{}, ErrTooManyDice
		}
		count += spec.Count
	}

	out := Result{Rolls: make([]Roll, 0, len(specs))}
	for _, spec := range specs {
		roll := Roll{Sides: spec.Sides, Results: make([]int, spec.Count)}
		for i := range roll.Results {
			roll.Results[i] = rollDie(rng, spec.Sides)
			roll.Total += roll.Results[i]
		}
		out.Rolls = append(out.Rolls, roll)
		out.Total += roll.Total
	}
	return out, nil
}

func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}
