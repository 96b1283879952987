// internal/rules/rules.go
//
// The session drivers' settings table: which game parameters players may
// set, their allowed ranges, and their defaults.
//
// Keys:
//   colors — palette size, 4..9 (default 8)
//   pins   — code length, 4 or 5 (default 4)
//   limit  — maximum guesses per session, 10 or 12 (default 12)
//   repeat — whether colors may repeat in a code (default true)
//
// Defaults can be overridden through the environment:
//   MASTERMIND_COLORS, MASTERMIND_PINS, MASTERMIND_LIMIT, MASTERMIND_REPEAT
// Out-of-range env values are ignored and the built-in default kept.
//
// The engine itself imposes no ceiling on the code space; CheckSpace is the
// drivers' guard against materializing an intractable space
// (MASTERMIND_MAX_SPACE, default 200000).

package rules

import (
	"fmt"
	"os"
	"strconv"

	"github.com/superhirn/mastermind/internal/mastermind"
)

const (
	MinColors = 4
	MaxColors = 9

	DefaultColors = 8
	DefaultPins   = 4
	DefaultLimit  = 12
	DefaultRepeat = true

	defaultMaxSpace = 200000
)

// Settings is one session's game parameters. Immutable once a session
// starts; drivers lock it until reset.
type Settings struct {
	Colors int
	Pins   int
	Limit  int
	Repeat bool
}

// Default returns the built-in settings with env overrides applied.
func Default() Settings {
	s := Settings{
		Colors: DefaultColors,
		Pins:   DefaultPins,
		Limit:  DefaultLimit,
		Repeat: DefaultRepeat,
	}
	if v, ok := envInt("MASTERMIND_COLORS"); ok && validColors(v) {
		s.Colors = v
	}
	if v, ok := envInt("MASTERMIND_PINS"); ok && validPins(v) {
		s.Pins = v
	}
	if v, ok := envInt("MASTERMIND_LIMIT"); ok && validLimit(v) {
		s.Limit = v
	}
	if v := os.Getenv("MASTERMIND_REPEAT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Repeat = b
		}
	}
	return s
}

// Set updates one key from its boundary (string) form, validating the
// value against the allowed range. Each key gets an explicit branch so a
// new key cannot be added without deciding its validation.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "colors":
		v, err := strconv.Atoi(value)
		if err != nil || !validColors(v) {
			return fmt.Errorf("colors must be %d..%d", MinColors, MaxColors)
		}
		s.Colors = v
	case "pins":
		v, err := strconv.Atoi(value)
		if err != nil || !validPins(v) {
			return fmt.Errorf("pins must be 4 or 5")
		}
		s.Pins = v
	case "limit":
		v, err := strconv.Atoi(value)
		if err != nil || !validLimit(v) {
			return fmt.Errorf("limit must be 10 or 12")
		}
		s.Limit = v
	case "repeat":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("repeat must be true or false")
		}
		s.Repeat = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// Ruleset converts the settings into the engine's ruleset form.
func (s Settings) Ruleset() mastermind.Ruleset {
	rep := mastermind.WithoutRepetition
	if s.Repeat {
		rep = mastermind.WithRepetition
	}
	return mastermind.Ruleset{Colors: s.Colors, Pins: s.Pins, Repetition: rep}
}

// CheckSpace validates the ruleset and rejects code spaces too large to
// materialize. Callers run this before generating.
func (s Settings) CheckSpace() error {
	rs := s.Ruleset()
	if err := rs.Validate(); err != nil {
		return err
	}
	max := defaultMaxSpace
	if v, ok := envInt("MASTERMIND_MAX_SPACE"); ok && v > 0 {
		max = v
	}
	if size := rs.SpaceSize(); size > max {
		return fmt.Errorf("code space of %d codes exceeds ceiling %d", size, max)
	}
	return nil
}

func validColors(v int) bool { return v >= MinColors && v <= MaxColors }
func validPins(v int) bool   { return v == 4 || v == 5 }
func validLimit(v int) bool  { return v == 10 || v == 12 }

func envInt(k string) (int, bool) {
	v := os.Getenv(k)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
