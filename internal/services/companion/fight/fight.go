package fight

import (
	"github.com/louisbranch/fightfantasy/internal/core/check"
	"github.com/louisbranch/fightfantasy/internal/core/dice"
)

// Message keys for round and luck results.
const (
	MessageHeroWins    = "fight.result.hero_wins"
	MessageMonsterWins = "fight.result.monster_wins"
	MessageTie         = "fight.result.tie"
	MessageLucky       = "fight.luck.lucky"
	MessageUnlucky     = "fight.luck.unlucky"
)

// RoundResult is one resolved attack round.
type RoundResult struct {
	Type         ResultType `json:"type"`
	MessageKey   string     `json:"message_key"`
	HeroTotal    int        `json:"hero_total"`
	MonsterTotal int        `json:"monster_total"`
	HeroRoll     dice.Pair  `json:"hero_roll"`
	MonsterRoll  dice.Pair  `json:"monster_roll"`
	Damage       int        `json:"damage"`
}

// LuckResult is one resolved luck use.
type LuckResult struct {
	Lucky      bool         `json:"lucky"`
	MessageKey string       `json:"message_key"`
	Roll       dice.Pair    `json:"roll"`
	Check      check.Result `json:"check"`
	// Adjustment is the health change applied to the side that lost the round.
	Adjustment int `json:"adjustment"`
}

// Fight is the state of one encounter. It is not safe for concurrent use.
type Fight struct {
	rules Rules

	heroStart    Stats
	monsterStart Stats
	hero         Stats
	monster      Stats

	outcome   Outcome
	last      *RoundResult
	luckOpen  bool
	luckUsed  bool
	lastLuck  *LuckResult
	roundsRun int
}

// New starts a fight between hero and monster.
func New(hero, monster Stats, rules Rules) *Fight {
	return &Fight{
		rules:        rules.normalized(),
		heroStart:    hero,
		monsterStart: monster,
		hero:         hero,
		monster:      monster,
	}
}

// Hero returns the hero's current stats.
func (f *Fight) Hero() Stats { return f.hero }

// Monster returns the monster's current stats.
func (f *Fight) Monster() Stats { return f.monster }

// Outcome returns the terminal state, or OutcomeNone while the fight goes on.
func (f *Fight) Outcome() Outcome { return f.outcome }

// LuckUsed reports whether luck was spent this fight.
func (f *Fight) LuckUsed() bool { return f.luckUsed }

// Rounds returns how many attack rounds were resolved.
func (f *Fight) Rounds() int { return f.roundsRun }

// CanAttack reports whether another round may be fought.
func (f *Fight) CanAttack() bool {
	return f.hero.Valid() && f.monster.Valid() && !f.outcome.Finished()
}

// CanUseLuck reports whether luck may modify the last round.
func (f *Fight) CanUseLuck() bool {
	return f.luckOpen && !f.luckUsed && f.hero.Luck > 0 && !f.outcome.Finished()
}

// DisplayResult returns the last round while the fight is ongoing.
func (f *Fight) DisplayResult() (RoundResult, bool) {
	if f.last == nil || f.outcome.Finished() {
		return RoundResult{}, false
	}
	return *f.last, true
}

// LastLuck returns the luck result of the current round, if any.
func (f *Fight) LastLuck() (LuckResult, bool) {
	if f.lastLuck == nil {
		return LuckResult{}, false
	}
	return *f.lastLuck, true
}

// ResolveRound applies one attack round. It returns false without changing
// state when CanAttack is false.
func (f *Fight) ResolveRound(heroRoll, monsterRoll dice.Pair) (RoundResult, bool) {
	if !f.CanAttack() {
		return RoundResult{}, false
	}
	result := RoundResult{
		HeroTotal:    f.hero.Skill + heroRoll.Sum,
		MonsterTotal: f.monster.Skill + monsterRoll.Sum,
		HeroRoll:     heroRoll,
		MonsterRoll:  monsterRoll,
	}
	switch {
	case result.HeroTotal > result.MonsterTotal:
		result.Type = ResultHeroWins
		result.MessageKey = MessageHeroWins
		result.Damage = f.rules.Damage.Base
		f.monster.Health -= result.Damage
	case result.MonsterTotal > result.HeroTotal:
		result.Type = ResultMonsterWins
		result.MessageKey = MessageMonsterWins
		result.Damage = f.rules.Damage.Base
		f.hero.Health -= result.Damage
	default:
		result.Type = ResultTie
		result.MessageKey = MessageTie
	}

	f.roundsRun++
	f.last = &result
	f.lastLuck = nil
	f.luckOpen = result.Type != ResultTie
	f.settle()
	return result, true
}

// ApplyLuck resolves a luck roll against the last round. It returns false
// without changing state when CanUseLuck is false.
func (f *Fight) ApplyLuck(roll dice.Pair) (LuckResult, bool) {
	if !f.CanUseLuck() || f.last == nil {
		return LuckResult{}, false
	}
	checked := check.Check(roll.Sum, f.hero.Luck)
	result := LuckResult{
		Lucky: checked.Success,
		Roll:  roll,
		Check: checked,
	}
	if result.Lucky {
		result.MessageKey = MessageLucky
	} else {
		result.MessageKey = MessageUnlucky
	}

	luck := f.rules.Luck
	switch f.last.Type {
	case ResultHeroWins:
		if result.Lucky {
			result.Adjustment = -luck.WinLucky
		} else {
			result.Adjustment = min(luck.WinUnlucky, f.last.Damage)
		}
		f.monster.Health += result.Adjustment
	case ResultMonsterWins:
		if result.Lucky {
			result.Adjustment = min(luck.LossLucky, f.last.Damage)
		} else {
			result.Adjustment = -luck.LossUnlucky
		}
		f.hero.Health += result.Adjustment
	}

	f.luckUsed = true
	f.luckOpen = false
	f.lastLuck = &result
	f.settle()
	return result, true
}

// SetMonster replaces the monster for the next fight and resets the encounter.
func (f *Fight) SetMonster(monster Stats) {
	f.monsterStart = monster
	f.Reset()
}

// Reset restores both combatants to their starting stats.
func (f *Fight) Reset() {
	f.hero = f.heroStart
	f.monster = f.monsterStart
	f.outcome = OutcomeNone
	f.last = nil
	f.lastLuck = nil
	f.luckOpen = false
	f.luckUsed = false
	f.roundsRun = 0
}

func (f *Fight) settle() {
	switch {
	case f.monster.Health <= 0:
		f.outcome = OutcomeWon
	case f.hero.Health <= 0:
		f.outcome = OutcomeLost
	}
	if f.outcome.Finished() {
		f.luckOpen = false
	}
}
