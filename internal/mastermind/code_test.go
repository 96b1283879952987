package mastermind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	rs := Ruleset{Colors: 6, Pins: 4, Repetition: WithRepetition}

	code, err := ParseCode("1 2 3 4", rs)
	require.NoError(t, err)
	assert.Equal(t, Code{1, 2, 3, 4}, code)
	assert.Equal(t, "1 2 3 4", code.String())

	_, err = ParseCode("1 2 3", rs)
	assert.Error(t, err, "wrong pin count")

	_, err = ParseCode("1 2 3 9", rs)
	assert.Error(t, err, "color out of range")

	_, err = ParseCode("1 2 x 4", rs)
	assert.Error(t, err, "not a digit")
}

func TestParseCode_RepetitionPolicy(t *testing.T) {
	norepeat := Ruleset{Colors: 6, Pins: 4, Repetition: WithoutRepetition}

	_, err := ParseCode("1 2 2 3", norepeat)
	assert.Error(t, err)

	code, err := ParseCode("1 2 0 3", norepeat)
	require.NoError(t, err)
	assert.Equal(t, Code{1, 2, 0, 3}, code)
}

func TestCodeEqual(t *testing.T) {
	assert.True(t, Code{1, 2, 3}.Equal(Code{1, 2, 3}))
	assert.False(t, Code{1, 2, 3}.Equal(Code{1, 3, 2}))
	assert.False(t, Code{1, 2, 3}.Equal(Code{1, 2}))
}

func TestRulesetValidate(t *testing.T) {
	assert.NoError(t, Ruleset{Colors: 8, Pins: 4, Repetition: WithRepetition}.Validate())
	assert.NoError(t, Ruleset{Colors: 4, Pins: 4, Repetition: WithoutRepetition}.Validate())
	assert.ErrorIs(t, Ruleset{Colors: 3, Pins: 4, Repetition: WithoutRepetition}.Validate(), ErrInvalidRuleset)
}

func TestSpaceSize(t *testing.T) {
	assert.Equal(t, 1296, Ruleset{Colors: 6, Pins: 4, Repetition: WithRepetition}.SpaceSize())
	assert.Equal(t, 24, Ruleset{Colors: 4, Pins: 4, Repetition: WithoutRepetition}.SpaceSize())
	assert.Equal(t, 6561, Ruleset{Colors: 9, Pins: 4, Repetition: WithRepetition}.SpaceSize())
}
