package mastermind

import "math/rand"

// Selector picks one code from a non-empty candidate list. The selection
// strategy is an injected dependency so sessions can run with uniform
// randomness in production and a deterministic pick in tests. No look-ahead:
// uniform random among consistent candidates is the shipped policy.
type Selector func(codes []Code) Code

// NewRandomSelector returns a uniform-random selector with its own seeded
// source, so concurrent sessions never share rng state.
func NewRandomSelector(seed int64) Selector {
	rng := rand.New(rand.NewSource(seed))
	return func(codes []Code) Code {
		if len(codes) == 0 {
			return nil
		}
		return codes[rng.Intn(len(codes))]
	}
}

// First picks the first candidate. Deterministic; used by tests.
func First(codes []Code) Code {
	if len(codes) == 0 {
		return nil
	}
	return codes[0]
}
