// internal/mastermind/score.go
//
// Two-code scoring with the standard black-peg/white-peg semantics.
//
// Two-pass algorithm:
//
// Pass 1:
//   - Count exact matches (same color, same position).
//   - Count remaining (non-exact) target colors.
//
// Pass 2:
//   - For each non-exact guess position: if there is remaining count for
//     that color, count a color-only match and decrement.
//
// This handles repeated colors in both codes correctly, and is equivalent
// to summing min(multiplicity in guess, multiplicity in target) over all
// colors and subtracting the exact matches.

package mastermind

// Score compares guess against target and returns (exact, colorOnly).
// The relation is symmetric: Score(a, b) == Score(b, a).
func Score(guess, target Code) (Feedback, error) {
	if len(guess) != len(target) {
		return Feedback{}, ErrLengthMismatch
	}

	var fb Feedback
	remaining := make(map[int]int, len(target))

	// First pass: exact matches, and color counts of the rest of the target.
	for i := range guess {
		if guess[i] == target[i] {
			fb.Exact++
		} else {
			remaining[target[i]]++
		}
	}

	// Second pass: resolve color-only matches for the non-exact positions.
	for i := range guess {
		if guess[i] == target[i] {
			continue
		}
		if remaining[guess[i]] > 0 {
			fb.ColorOnly++
			remaining[guess[i]]--
		}
	}
	return fb, nil
}
