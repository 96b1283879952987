package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superhirn/mastermind/internal/mastermind"
)

func classic() mastermind.Ruleset {
	return mastermind.Ruleset{Colors: 6, Pins: 4, Repetition: mastermind.WithRepetition}
}

func TestNewCodemaker(t *testing.T) {
	s, err := NewCodemaker(classic(), 12, mastermind.First)
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, ModeCodemaker, s.Mode)
	assert.Equal(t, 1296, s.SpaceSize())
	assert.Equal(t, 1296, s.Remaining())
	// First selector: secret is the first generated code.
	assert.Equal(t, mastermind.Code{0, 0, 0, 0}, s.Secret)
	assert.Equal(t, "playing", s.State())
}

func TestCodemaker_WinOnExactGuess(t *testing.T) {
	s, err := NewCodemaker(classic(), 12, mastermind.First)
	require.NoError(t, err)

	fb, err := s.ApplyGuess(mastermind.Code{0, 0, 0, 0})
	require.NoError(t, err)

	assert.True(t, fb.IsWin(4))
	assert.Equal(t, "won", s.State())
	require.Len(t, s.Board, 1)
	assert.Equal(t, 1, s.Board[0].Remaining)

	_, err = s.ApplyGuess(mastermind.Code{0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrFinished)
}

func TestCodemaker_RemainingShrinks(t *testing.T) {
	s, err := NewCodemaker(classic(), 12, mastermind.First)
	require.NoError(t, err)

	fb, err := s.ApplyGuess(mastermind.Code{1, 2, 3, 4})
	require.NoError(t, err)

	assert.False(t, fb.IsWin(4))
	assert.Less(t, s.Remaining(), 1296)
	assert.Greater(t, s.Remaining(), 0)

	// The secret stays consistent with its own feedback.
	found := false
	for _, c := range s.Candidates {
		if c.Equal(s.Secret) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCodemaker_LossAtLimit(t *testing.T) {
	s, err := NewCodemaker(classic(), 10, mastermind.First)
	require.NoError(t, err)

	wrong := mastermind.Code{5, 5, 4, 4} // never the secret 0 0 0 0
	for i := 0; i < 10; i++ {
		_, err := s.ApplyGuess(wrong)
		require.NoError(t, err)
	}

	assert.Equal(t, "lost", s.State())
	assert.Equal(t, 10, s.Rounds)
	_, err = s.ApplyGuess(wrong)
	assert.ErrorIs(t, err, ErrFinished)
}

func TestCodemaker_RejectsWrongModeOp(t *testing.T) {
	s, err := NewCodemaker(classic(), 12, mastermind.First)
	require.NoError(t, err)

	_, err = s.ApplyFeedback(mastermind.Feedback{Exact: 1})
	assert.ErrorIs(t, err, ErrWrongMode)
}

func TestCodebreaker_CracksAgainstHonestCodemaker(t *testing.T) {
	secret := mastermind.Code{3, 1, 4, 1}

	s, err := NewCodebreaker(classic(), 12, mastermind.First)
	require.NoError(t, err)
	require.NotNil(t, s.CurrentGuess)

	for !s.Finished {
		fb, err := mastermind.Score(s.CurrentGuess, secret)
		require.NoError(t, err)

		before := s.Remaining()
		next, err := s.ApplyFeedback(fb)
		require.NoError(t, err)
		if fb.IsWin(4) {
			assert.Nil(t, next)
			break
		}
		assert.Less(t, s.Remaining(), before, "candidate set must strictly shrink")
	}

	assert.Equal(t, "won", s.State())
	assert.LessOrEqual(t, s.Rounds, 12)
}

func TestCodebreaker_ContradictionSurfacesAndAborts(t *testing.T) {
	norep := mastermind.Ruleset{Colors: 4, Pins: 4, Repetition: mastermind.WithoutRepetition}
	s, err := NewCodebreaker(norep, 12, mastermind.First)
	require.NoError(t, err)

	// Without repetition every code is a permutation of distinct colors, so
	// any probe shares all four colors with every candidate: a "-" answer
	// (no matches at all) is impossible.
	_, err = s.ApplyFeedback(mastermind.Feedback{})
	assert.ErrorIs(t, err, mastermind.ErrInconsistentFeedback)
	assert.Equal(t, "aborted", s.State())

	_, err = s.ApplyFeedback(mastermind.Feedback{Exact: 1})
	assert.ErrorIs(t, err, ErrFinished)
}

func TestCodebreaker_LossAtLimit(t *testing.T) {
	s, err := NewCodebreaker(classic(), 10, mastermind.NewRandomSelector(42))
	require.NoError(t, err)

	rounds := 0
	for !s.Finished && rounds < 20 {
		// Always answer "one color right, wrong place" — keeps the pool
		// non-empty long enough to exhaust the round limit for this seed,
		// or aborts; either way the session must terminate by round 10.
		_, err := s.ApplyFeedback(mastermind.Feedback{ColorOnly: 1})
		if err != nil {
			break
		}
		rounds++
	}

	assert.True(t, s.Finished)
	assert.LessOrEqual(t, s.Rounds, 10)
}
