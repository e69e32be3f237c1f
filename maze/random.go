package maze

import (
	"math/rand"
	"time"
)

// Random is the source of uniform choices used while carving and placing traps.
// *rand.Rand satisfies it.
type Random interface {
	// Intn returns a value in [0, n). n is always positive.
	Intn(n int) int
}

// NewRandom returns a seeded source. A zero seed uses the current time.
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// FirstChoice always picks the first candidate. It yields a reproducible maze.
type FirstChoice struct{}

// Intn implements Random.
func (FirstChoice) Intn(int) int { return 0 }
