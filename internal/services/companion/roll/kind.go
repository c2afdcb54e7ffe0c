package roll

// Kind names the action that currently owns the dice animation.
type Kind string

const (
	KindNone      Kind = "none"
	KindRollDie   Kind = "rollDie"
	KindRollDice  Kind = "rollDice"
	KindTestSkill Kind = "testSkill"
	KindTestLuck  Kind = "testLuck"
	KindFight     Kind = "fight"
	KindUseLuck   Kind = "useLuck"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNone, KindRollDie, KindRollDice, KindTestSkill, KindTestLuck, KindFight, KindUseLuck:
		return true
	default:
		return false
	}
}

// Result is a resolved roll.
type Result struct {
	Kind Kind  `json:"kind"`
	Dice []int `json:"dice"`
	Sum  int   `json:"sum"`
}

func newResult(kind Kind, dice []int) Result {
	sum := 0
	for _, d := range dice {
		sum += d
	}
	out := make([]int, len(dice))
	copy(out, dice)
	return Result{Kind: kind, Dice: out, Sum: sum}
}
