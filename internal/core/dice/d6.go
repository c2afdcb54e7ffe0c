package dice

import (
	"math/rand"
	"sync"

	"github.com/louisbranch/fightfantasy/internal/random"
)

// Faces is the number of sides on the dice used by the companion.
const Faces = 6

// Roller produces d6 results from a shared random source.
// It is safe for concurrent use.
type Roller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller returns a Roller backed by rng.
func NewRoller(rng *rand.Rand) *Roller {
	return &Roller{rng: rng}
}

// NewSeededRoller returns a Roller seeded from crypto/rand.
func NewSeededRoller() (*Roller, error) {
	rng, err := random.NewRand()
	if err != nil {
		return nil, err
	}
	return NewRoller(rng), nil
}

// RollOne returns a uniformly random value in [1, 6].
func (r *Roller) RollOne() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rollDie(r.rng, Faces)
}

// RollTwo rolls two independent dice.
func (r *Roller) RollTwo() Pair {
	return NewPair(r.RollOne(), r.RollOne())
}
