package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superhirn/mastermind/internal/mastermind"
	"github.com/superhirn/mastermind/internal/session"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	rs := mastermind.Ruleset{Colors: 6, Pins: 4, Repetition: mastermind.WithRepetition}
	sess, err := session.NewCodemaker(rs, 12, mastermind.First)
	require.NoError(t, err)

	require.NoError(t, st.Save(ctx, sess))

	got, err := st.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	_, err = st.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
