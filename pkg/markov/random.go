package markov

import "math/rand/v2"

// RandSource is the randomness a Chain draws from during generation. Both
// seed selection and weighted word selection go through IntN, so a scripted
// implementation makes generation fully reproducible.
type RandSource interface {
	// IntN returns a uniform value in [0, n). n is always > 0.
	IntN(n int) int
}

// globalRand forwards to the top-level math/rand/v2 functions, which are safe
// for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRandSource returns the process-wide random source used when no other
// source is configured. It is safe for concurrent use.
func DefaultRandSource() RandSource {
	return globalRand{}
}

// NewSeededRand returns a deterministic source. The returned value is not safe
// for concurrent use.
func NewSeededRand(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
