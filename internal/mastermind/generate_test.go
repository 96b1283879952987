package mastermind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_WithRepetitionCount(t *testing.T) {
	rs := Ruleset{Colors: 6, Pins: 4, Repetition: WithRepetition}

	codes, err := Generate(rs)

	require.NoError(t, err)
	assert.Len(t, codes, 1296) // 6^4
	assert.Equal(t, rs.SpaceSize(), len(codes))
}

func TestGenerate_WithoutRepetitionCount(t *testing.T) {
	rs := Ruleset{Colors: 4, Pins: 4, Repetition: WithoutRepetition}

	codes, err := Generate(rs)

	require.NoError(t, err)
	assert.Len(t, codes, 24) // 4!
}

func TestGenerate_NoDuplicates(t *testing.T) {
	for _, rs := range []Ruleset{
		{Colors: 6, Pins: 4, Repetition: WithRepetition},
		{Colors: 6, Pins: 4, Repetition: WithoutRepetition},
	} {
		codes, err := Generate(rs)
		require.NoError(t, err)

		seen := make(map[string]bool, len(codes))
		for _, c := range codes {
			assert.False(t, seen[c.String()], "duplicate code %v", c)
			seen[c.String()] = true
		}
	}
}

func TestGenerate_EveryCodeSatisfiesRuleset(t *testing.T) {
	rs := Ruleset{Colors: 5, Pins: 4, Repetition: WithoutRepetition}

	codes, err := Generate(rs)
	require.NoError(t, err)
	require.Len(t, codes, 120) // 5*4*3*2

	for _, c := range codes {
		require.Len(t, c, rs.Pins)
		distinct := make(map[int]bool)
		for _, v := range c {
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, rs.Colors)
			assert.False(t, distinct[v], "repeated color in %v", c)
			distinct[v] = true
		}
	}
}

func TestGenerate_InvalidRuleset(t *testing.T) {
	// More pins than distinct colors: no code exists.
	_, err := Generate(Ruleset{Colors: 3, Pins: 4, Repetition: WithoutRepetition})
	assert.ErrorIs(t, err, ErrInvalidRuleset)

	_, err = Generate(Ruleset{Colors: 1, Pins: 4, Repetition: WithRepetition})
	assert.ErrorIs(t, err, ErrInvalidRuleset)

	_, err = Generate(Ruleset{Colors: 6, Pins: 0, Repetition: WithRepetition})
	assert.ErrorIs(t, err, ErrInvalidRuleset)
}
