package mastermind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSpace(t *testing.T) []Code {
	t.Helper()
	codes, err := Generate(Ruleset{Colors: 6, Pins: 4, Repetition: WithRepetition})
	require.NoError(t, err)
	return codes
}

func TestReduce_Soundness(t *testing.T) {
	candidates := fullSpace(t)
	probe := Code{0, 1, 2, 3}
	observed := Feedback{Exact: 1, ColorOnly: 1}

	reduced, err := Reduce(candidates, probe, observed)
	require.NoError(t, err)
	require.NotEmpty(t, reduced)

	for _, c := range reduced {
		fb, err := Score(c, probe)
		require.NoError(t, err)
		assert.Equal(t, observed, fb)
		assert.False(t, c.Equal(probe))
	}
}

func TestReduce_Idempotent(t *testing.T) {
	candidates := fullSpace(t)
	probe := Code{0, 0, 1, 1}
	observed := Feedback{Exact: 2}

	once, err := Reduce(candidates, probe, observed)
	require.NoError(t, err)
	twice, err := Reduce(once, probe, observed)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestReduce_MonotoneShrink(t *testing.T) {
	candidates := fullSpace(t)
	probe := Code{5, 4, 3, 2}
	observed := Feedback{ColorOnly: 2}

	reduced, err := Reduce(candidates, probe, observed)
	require.NoError(t, err)

	assert.Less(t, len(reduced), len(candidates))
	members := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		members[c.String()] = true
	}
	for _, c := range reduced {
		assert.True(t, members[c.String()], "%v not in original set", c)
	}
}

func TestReduce_ExcludesProbe(t *testing.T) {
	probe := Code{1, 2, 3, 4}

	// The probe itself scores (4,0) against the probe; with a win feedback
	// only the probe would survive, so exclusion leaves nothing: that is a
	// contradiction, not an empty success.
	_, err := Reduce([]Code{probe}, probe, Win(4))
	assert.ErrorIs(t, err, ErrInconsistentFeedback)
}

func TestReduce_ContradictionSurfaces(t *testing.T) {
	candidates := []Code{{0, 0, 0, 0}, {1, 1, 1, 1}}
	probe := Code{0, 0, 0, 0}

	// No candidate scores (0,3) against the probe.
	_, err := Reduce(candidates, probe, Feedback{ColorOnly: 3})
	assert.ErrorIs(t, err, ErrInconsistentFeedback)
}

func TestReduce_StrictShrinkOnFirstProbe(t *testing.T) {
	candidates := fullSpace(t)
	require.Len(t, candidates, 1296)

	// Any non-terminal feedback strictly shrinks the 1296-code space.
	probe := Code{0, 1, 2, 3}
	reduced, err := Reduce(candidates, probe, Feedback{Exact: 2})
	require.NoError(t, err)
	assert.Less(t, len(reduced), 1296)
	assert.Greater(t, len(reduced), 0)
}
