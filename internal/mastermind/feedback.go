package mastermind

import (
	"fmt"
	"strings"
)

// Feedback is the comparison result between two codes: Exact counts
// right-color-right-position pegs, ColorOnly counts additional right-color
// pegs. Internal representation is always this pair; the string form exists
// only at the display/parse boundary.
type Feedback struct {
	Exact     int `json:"exact"`
	ColorOnly int `json:"colorOnly"`
}

// Win is the terminal "fully cracked" feedback for a given code length.
func Win(pins int) Feedback {
	return Feedback{Exact: pins}
}

// IsWin reports whether fb cracks a code of the given length.
func (fb Feedback) IsWin(pins int) bool {
	return fb.Exact == pins && fb.ColorOnly == 0
}

// String renders the canonical text form: one '+' per exact match followed
// by one 'o' per color-only match; a lone '-' when nothing matched.
func (fb Feedback) String() string {
	if fb.Exact == 0 && fb.ColorOnly == 0 {
		return "-"
	}
	return strings.Repeat("+", fb.Exact) + strings.Repeat("o", fb.ColorOnly)
}

// ParseFeedback reads a codemaker answer: a string of '+' and 'o' in any
// order, or a single '-' for "no score". The result is bounded by pins.
func ParseFeedback(s string, pins int) (Feedback, error) {
	s = strings.TrimSpace(s)
	if s == "-" {
		return Feedback{}, nil
	}
	if len(s) > pins {
		return Feedback{}, fmt.Errorf("feedback longer than %d pins", pins)
	}
	var fb Feedback
	for _, ch := range s {
		switch ch {
		case '+':
			fb.Exact++
		case 'o':
			fb.ColorOnly++
		default:
			return Feedback{}, fmt.Errorf("unknown feedback symbol %q, want '+', 'o' or '-'", string(ch))
		}
	}
	return fb, nil
}
