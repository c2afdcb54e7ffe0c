package fight

import (
	"sync"

	"github.com/louisbranch/fightfantasy/internal/core/check"
	"github.com/louisbranch/fightfantasy/internal/core/dice"
	"github.com/louisbranch/fightfantasy/internal/services/companion/roll"
)

// Roller is the dice source used by a Resolver.
type Roller interface {
	RollOne() int
	RollTwo() dice.Pair
}

// Event is delivered once a started action resolves.
type Event struct {
	Kind    roll.Kind     `json:"kind"`
	Dice    []int         `json:"dice"`
	Sum     int           `json:"sum"`
	Check   *check.Result `json:"check,omitempty"`
	Round   *RoundResult  `json:"round,omitempty"`
	Luck    *LuckResult   `json:"luck,omitempty"`
	Outcome Outcome       `json:"outcome,omitempty"`
}

// Controls lists which actions are currently allowed.
type Controls struct {
	RollDie   bool `json:"roll_die"`
	RollDice  bool `json:"roll_dice"`
	TestSkill bool `json:"test_skill"`
	TestLuck  bool `json:"test_luck"`
	Attack    bool `json:"attack"`
	UseLuck   bool `json:"use_luck"`
	Edit      bool `json:"edit"`
}

// State is a point-in-time view of a table's dice and fight.
type State struct {
	Rolling  roll.Kind    `json:"rolling"`
	Dice     []int        `json:"dice"`
	Hero     Stats        `json:"hero"`
	Monster  Stats        `json:"monster"`
	Round    *RoundResult `json:"round,omitempty"`
	Luck     *LuckResult  `json:"luck,omitempty"`
	LuckUsed bool         `json:"luck_used"`
	Outcome  Outcome      `json:"outcome,omitempty"`
	Controls Controls     `json:"controls"`
}

// Resolver runs dice actions and fight rounds for one table.
// It is safe for concurrent use.
type Resolver struct {
	orch   *roll.Orchestrator
	roller Roller

	mu      sync.Mutex
	fight   *Fight
	pending bool
	dice    []int
}

// NewResolver binds a fight to an orchestrator and dice source.
func NewResolver(f *Fight, orch *roll.Orchestrator, roller Roller) *Resolver {
	return &Resolver{fight: f, orch: orch, roller: roller}
}

// State returns the current table state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

func (r *Resolver) stateLocked() State {
	f := r.fight
	st := State{
		Rolling:  r.orch.Rolling(),
		Dice:     append([]int(nil), r.dice...),
		Hero:     f.Hero(),
		Monster:  f.Monster(),
		LuckUsed: f.LuckUsed(),
		Outcome:  f.Outcome(),
	}
	if round, ok := f.DisplayResult(); ok {
		st.Round = &round
	}
	if luck, ok := f.LastLuck(); ok {
		st.Luck = &luck
	}
	idle := !r.pending
	hero := f.Hero()
	st.Controls = Controls{
		RollDie:   idle,
		RollDice:  idle,
		TestSkill: idle && hero.Skill > 0,
		TestLuck:  idle && hero.Luck > 0,
		Attack:    idle && f.CanAttack(),
		UseLuck:   idle && f.CanUseLuck(),
		Edit:      idle,
	}
	return st
}

// RollDie rolls a single die.
func (r *Resolver) RollDie(done func(Event)) bool {
	return r.start(roll.KindRollDie, nil, func() []int {
		return []int{r.roller.RollOne()}
	}, func(res roll.Result) Event {
		return Event{}
	}, done)
}

// RollDice rolls two dice.
func (r *Resolver) RollDice(done func(Event)) bool {
	return r.start(roll.KindRollDice, nil, func() []int {
		return r.roller.RollTwo().Values()
	}, func(res roll.Result) Event {
		return Event{}
	}, done)
}

// TestSkill rolls two dice under the hero's skill.
func (r *Resolver) TestSkill(done func(Event)) bool {
	return r.testAttribute(roll.KindTestSkill, func(s Stats) int { return s.Skill }, done)
}

// TestLuck rolls two dice under the hero's luck.
func (r *Resolver) TestLuck(done func(Event)) bool {
	return r.testAttribute(roll.KindTestLuck, func(s Stats) int { return s.Luck }, done)
}

func (r *Resolver) testAttribute(kind roll.Kind, attr func(Stats) int, done func(Event)) bool {
	return r.start(kind, func(f *Fight) bool {
		return attr(f.Hero()) > 0
	}, func() []int {
		return r.roller.RollTwo().Values()
	}, func(res roll.Result) Event {
		c := check.Check(res.Sum, attr(r.fight.Hero()))
		return Event{Check: &c}
	}, done)
}

// Attack fights one round.
func (r *Resolver) Attack(done func(Event)) bool {
	return r.start(roll.KindFight, (*Fight).CanAttack, func() []int {
		hero, monster := r.roller.RollTwo(), r.roller.RollTwo()
		return append(hero.Values(), monster.Values()...)
	}, func(res roll.Result) Event {
		if len(res.Dice) != 4 {
			return Event{}
		}
		round, applied := r.fight.ResolveRound(
			dice.NewPair(res.Dice[0], res.Dice[1]),
			dice.NewPair(res.Dice[2], res.Dice[3]),
		)
		if !applied {
			return Event{}
		}
		return Event{Round: &round}
	}, done)
}

// UseLuck spends the fight's single luck roll on the last round.
func (r *Resolver) UseLuck(done func(Event)) bool {
	return r.start(roll.KindUseLuck, (*Fight).CanUseLuck, func() []int {
		return r.roller.RollTwo().Values()
	}, func(res roll.Result) Event {
		if len(res.Dice) != 2 {
			return Event{}
		}
		luck, applied := r.fight.ApplyLuck(dice.NewPair(res.Dice[0], res.Dice[1]))
		if !applied {
			return Event{}
		}
		return Event{Luck: &luck}
	}, done)
}

// SetMonster replaces the monster. It fails while a roll is pending or when
// the stats are not all positive.
func (r *Resolver) SetMonster(monster Stats) error {
	if !monster.Valid() {
		return ErrInvalidStats
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending {
		return ErrRollInProgress
	}
	r.fight.SetMonster(monster)
	r.dice = nil
	return nil
}

// Reset starts a new fight against the same monster.
func (r *Resolver) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending {
		return ErrRollInProgress
	}
	r.fight.Reset()
	r.dice = nil
	return nil
}

// Close cancels any pending roll.
func (r *Resolver) Close() {
	r.orch.Close()
	r.mu.Lock()
	r.pending = false
	r.mu.Unlock()
}

// start claims the table, then hands the roll to the orchestrator.
// precondition is checked under the resolver lock; a nil precondition always
// passes. apply runs under the same lock with the resolved dice.
func (r *Resolver) start(kind roll.Kind, precondition func(*Fight) bool, rollFn func() []int, apply func(roll.Result) Event, done func(Event)) bool {
	r.mu.Lock()
	if r.pending || (precondition != nil && !precondition(r.fight)) {
		r.mu.Unlock()
		return false
	}
	r.pending = true
	r.dice = nil
	r.mu.Unlock()

	started := r.orch.Start(kind, rollFn, true, func(res roll.Result) {
		r.mu.Lock()
		ev := apply(res)
		ev.Kind = res.Kind
		ev.Dice = res.Dice
		ev.Sum = res.Sum
		ev.Outcome = r.fight.Outcome()
		r.dice = append([]int(nil), res.Dice...)
		r.pending = false
		r.mu.Unlock()
		if done != nil {
			done(ev)
		}
	})
	if !started {
		r.mu.Lock()
		r.pending = false
		r.mu.Unlock()
	}
	return started
}
