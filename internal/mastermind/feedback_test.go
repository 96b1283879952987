package mastermind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackString(t *testing.T) {
	assert.Equal(t, "++++", Feedback{Exact: 4}.String())
	assert.Equal(t, "oooo", Feedback{ColorOnly: 4}.String())
	assert.Equal(t, "++o", Feedback{Exact: 2, ColorOnly: 1}.String())
	assert.Equal(t, "-", Feedback{}.String())
}

func TestParseFeedback(t *testing.T) {
	fb, err := ParseFeedback("++o", 4)
	require.NoError(t, err)
	assert.Equal(t, Feedback{Exact: 2, ColorOnly: 1}, fb)

	// Symbols are accepted in any order and normalized by counting.
	fb, err = ParseFeedback("o+o+", 4)
	require.NoError(t, err)
	assert.Equal(t, Feedback{Exact: 2, ColorOnly: 2}, fb)

	fb, err = ParseFeedback("-", 4)
	require.NoError(t, err)
	assert.Equal(t, Feedback{}, fb)

	_, err = ParseFeedback("+++++", 4)
	assert.Error(t, err, "more pegs than pins")

	_, err = ParseFeedback("+x", 4)
	assert.Error(t, err, "unknown symbol")
}

func TestFeedbackWin(t *testing.T) {
	assert.True(t, Win(4).IsWin(4))
	assert.False(t, Feedback{Exact: 4}.IsWin(5))
	assert.False(t, Feedback{Exact: 3, ColorOnly: 1}.IsWin(4))
}
