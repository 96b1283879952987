package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superhirn/mastermind/internal/mastermind"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, 8, s.Colors)
	assert.Equal(t, 4, s.Pins)
	assert.Equal(t, 12, s.Limit)
	assert.True(t, s.Repeat)
}

func TestDefault_EnvOverrides(t *testing.T) {
	t.Setenv("MASTERMIND_COLORS", "6")
	t.Setenv("MASTERMIND_PINS", "5")
	t.Setenv("MASTERMIND_LIMIT", "10")
	t.Setenv("MASTERMIND_REPEAT", "false")

	s := Default()
	assert.Equal(t, 6, s.Colors)
	assert.Equal(t, 5, s.Pins)
	assert.Equal(t, 10, s.Limit)
	assert.False(t, s.Repeat)
}

func TestDefault_BadEnvKeepsDefaults(t *testing.T) {
	t.Setenv("MASTERMIND_COLORS", "99")
	t.Setenv("MASTERMIND_PINS", "three")

	s := Default()
	assert.Equal(t, 8, s.Colors)
	assert.Equal(t, 4, s.Pins)
}

func TestSet(t *testing.T) {
	s := Default()

	require.NoError(t, s.Set("colors", "6"))
	assert.Equal(t, 6, s.Colors)

	require.NoError(t, s.Set("pins", "5"))
	assert.Equal(t, 5, s.Pins)

	require.NoError(t, s.Set("limit", "10"))
	assert.Equal(t, 10, s.Limit)

	require.NoError(t, s.Set("repeat", "false"))
	assert.False(t, s.Repeat)
}

func TestSet_Invalid(t *testing.T) {
	s := Default()

	assert.Error(t, s.Set("colors", "3"))
	assert.Error(t, s.Set("colors", "10"))
	assert.Error(t, s.Set("pins", "6"))
	assert.Error(t, s.Set("limit", "11"))
	assert.Error(t, s.Set("repeat", "maybe"))
	assert.Error(t, s.Set("difficulty", "hard"))

	// Failed sets leave the settings untouched.
	assert.Equal(t, Default(), s)
}

func TestRuleset(t *testing.T) {
	s := Settings{Colors: 6, Pins: 4, Limit: 12, Repeat: true}
	assert.Equal(t, mastermind.Ruleset{Colors: 6, Pins: 4, Repetition: mastermind.WithRepetition}, s.Ruleset())

	s.Repeat = false
	assert.Equal(t, mastermind.WithoutRepetition, s.Ruleset().Repetition)
}

func TestCheckSpace(t *testing.T) {
	assert.NoError(t, Settings{Colors: 9, Pins: 5, Limit: 12, Repeat: true}.CheckSpace())

	t.Setenv("MASTERMIND_MAX_SPACE", "1000")
	assert.Error(t, Settings{Colors: 9, Pins: 5, Limit: 12, Repeat: true}.CheckSpace())
	assert.NoError(t, Settings{Colors: 4, Pins: 4, Limit: 12, Repeat: true}.CheckSpace())
}
