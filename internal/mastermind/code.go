// internal/mastermind/code.go
//
// Core type definitions for the Mastermind deduction engine.
// Defines:
//   - Code: an ordered, fixed-length sequence of color symbols.
//   - Ruleset: palette size, code length, and repetition policy.
//   - RepetitionPolicy: whether a color may appear more than once.
//
// The engine is stateless: every operation in this package takes its inputs
// explicitly and returns new values. Session state (secret, candidate pool,
// round counters) lives in internal/session.

package mastermind

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Engine failure conditions. All are local to a single call; the engine
// holds no state that could be left half-mutated.
var (
	// ErrInvalidRuleset means the ruleset admits no valid code.
	ErrInvalidRuleset = errors.New("invalid ruleset")

	// ErrLengthMismatch means two codes of unequal length were compared.
	// This indicates a caller bug, not a recoverable game event.
	ErrLengthMismatch = errors.New("code length mismatch")

	// ErrInconsistentFeedback means a reduction eliminated every candidate:
	// the feedback received so far contradicts itself.
	ErrInconsistentFeedback = errors.New("inconsistent feedback")
)

// RepetitionPolicy says whether a code may use the same color twice.
type RepetitionPolicy int

const (
	WithRepetition RepetitionPolicy = iota
	WithoutRepetition
)

// Ruleset fixes the shape of the code space for one session.
// It is immutable for the lifetime of a session; changing it requires
// discarding all derived state.
type Ruleset struct {
	Colors     int              // palette size; symbols are 0..Colors-1
	Pins       int              // code length
	Repetition RepetitionPolicy
}

// Validate reports ErrInvalidRuleset if no valid code exists under rs.
func (rs Ruleset) Validate() error {
	if rs.Colors < 2 {
		return fmt.Errorf("%w: need at least 2 colors, got %d", ErrInvalidRuleset, rs.Colors)
	}
	if rs.Pins < 1 {
		return fmt.Errorf("%w: need at least 1 pin, got %d", ErrInvalidRuleset, rs.Pins)
	}
	if rs.Repetition == WithoutRepetition && rs.Colors < rs.Pins {
		return fmt.Errorf("%w: %d distinct colors cannot fill %d pins", ErrInvalidRuleset, rs.Colors, rs.Pins)
	}
	return nil
}

// SpaceSize returns the number of codes Generate would produce:
// Colors^Pins with repetition, Colors!/(Colors-Pins)! without.
func (rs Ruleset) SpaceSize() int {
	n := 1
	if rs.Repetition == WithRepetition {
		for i := 0; i < rs.Pins; i++ {
			n *= rs.Colors
		}
		return n
	}
	for i := 0; i < rs.Pins; i++ {
		n *= rs.Colors - i
	}
	return n
}

// Code is an ordered sequence of color symbols, each in [0, Colors).
// Codes are treated as immutable once created.
type Code []int

// Equal reports whether two codes match at every position.
func (c Code) Equal(other Code) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the boundary form: whitespace-separated decimal digits.
func (c Code) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

// ParseCode reads the boundary form ("1 2 3 4") and validates it against rs:
// exact pin count, every symbol in range, and no repeats when the ruleset
// forbids them.
func ParseCode(s string, rs Ruleset) (Code, error) {
	fields := strings.Fields(s)
	if len(fields) != rs.Pins {
		return nil, fmt.Errorf("expected %d digits, got %d", rs.Pins, len(fields))
	}
	code := make(Code, len(fields))
	seen := make(map[int]bool, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a digit", f)
		}
		if v < 0 || v >= rs.Colors {
			return nil, fmt.Errorf("color %d out of range 0..%d", v, rs.Colors-1)
		}
		if rs.Repetition == WithoutRepetition && seen[v] {
			return nil, fmt.Errorf("color %d repeated, repeats not allowed", v)
		}
		seen[v] = true
		code[i] = v
	}
	return code, nil
}
