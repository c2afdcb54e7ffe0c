// Package fight implements hero-versus-monster combat rounds.
//
// A Fight is plain state and arithmetic. A Resolver drives a Fight through a
// roll orchestrator so each attack, luck use and attribute test waits for the
// dice animation before it is applied.
package fight

import apperrors "github.com/louisbranch/fightfantasy/internal/platform/errors"

var (
	// ErrRollInProgress indicates the table is already waiting on dice.
	ErrRollInProgress = apperrors.New(apperrors.CodeRollInProgress, "a roll is already in progress")
	// ErrInvalidStats indicates a stat block with a non-positive value.
	ErrInvalidStats = apperrors.New(apperrors.CodeStatsInvalid, "skill, health and luck must be positive")
)

// Stats is a combatant's stat block.
type Stats struct {
	Skill  int `json:"skill"`
	Health int `json:"health"`
	Luck   int `json:"luck"`
}

// Valid reports whether every stat is positive.
func (s Stats) Valid() bool {
	return s.Skill > 0 && s.Health > 0 && s.Luck > 0
}

// ValidHero reports whether s can describe a hero. A hero may have run out
// of luck; combat and luck controls stay disabled until Valid holds.
func (s Stats) ValidHero() bool {
	return s.Skill > 0 && s.Health > 0 && s.Luck >= 0
}

// ResultType tags the outcome of one attack round.
type ResultType string

const (
	ResultHeroWins    ResultType = "heroWins"
	ResultMonsterWins ResultType = "monsterWins"
	ResultTie         ResultType = "tie"
)

// Outcome is the terminal state of a fight. The zero value means ongoing.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// Finished reports whether the fight has ended.
func (o Outcome) Finished() bool {
	return o != OutcomeNone
}

// DamageRules sets the health lost by the loser of a round.
type DamageRules struct {
	Base int
}

// LuckRules sets how a luck roll adjusts the damage of the round before it.
//
// Win* values apply when the hero won the round, Loss* values when the
// monster did. Lucky rolls always favour the hero.
type LuckRules struct {
	// WinLucky is extra damage dealt to the monster.
	WinLucky int
	// WinUnlucky is damage given back to the monster.
	WinUnlucky int
	// LossLucky is damage given back to the hero.
	LossLucky int
	// LossUnlucky is extra damage dealt to the hero.
	LossUnlucky int
}

// Rules groups the tunable combat constants.
type Rules struct {
	Damage DamageRules
	Luck   LuckRules
}

// DefaultRules follows the gamebook tables: a hit costs 2 health and luck
// turns it into 4 or 1 for the monster, 1 or 3 for the hero.
func DefaultRules() Rules {
	return Rules{
		Damage: DamageRules{Base: 2},
		Luck: LuckRules{
			WinLucky:    2,
			WinUnlucky:  1,
			LossLucky:   1,
			LossUnlucky: 1,
		},
	}
}

func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.Damage.Base <= 0 {
		r.Damage.Base = d.Damage.Base
	}
	if r.Luck.WinLucky < 0 {
		r.Luck.WinLucky = 0
	}
	if r.Luck.WinUnlucky < 0 {
		r.Luck.WinUnlucky = 0
	}
	if r.Luck.LossLucky < 0 {
		r.Luck.LossLucky = 0
	}
	if r.Luck.LossUnlucky < 0 {
		r.Luck.LossUnlucky = 0
	}
	return r
}
