// internal/session/session.go
//
// Game state for a single Mastermind session.
// Responsibilities:
//   - Create codemaker sessions (machine keeps a secret, human guesses)
//     and codebreaker sessions (machine deduces from human feedback).
//   - Validate and apply guesses/feedbacks, recording board rows.
//   - Track state transitions: playing → won/lost/aborted.
//
// Notes:
//   - All deduction work is delegated to internal/mastermind; the session
//     owns the mutable state (secret, candidate pool, board, rounds) the
//     engine deliberately does not hold.
//   - Guess selection is the injected mastermind.Selector, never an
//     ambient random source.

package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/superhirn/mastermind/internal/mastermind"
)

// Mode says which side the machine plays.
type Mode string

const (
	// ModeCodemaker: the machine picked the secret and scores human guesses.
	ModeCodemaker Mode = "codemaker"
	// ModeCodebreaker: the machine guesses and narrows its pool from
	// human-supplied feedback.
	ModeCodebreaker Mode = "codebreaker"
)

var (
	ErrWrongMode = errors.New("operation does not match session mode")
	ErrFinished  = errors.New("game is over")
)

// BoardRow is one line of session history.
type BoardRow struct {
	Round     int                 `json:"round"`
	Code      mastermind.Code     `json:"code"`
	Feedback  mastermind.Feedback `json:"feedback"`
	Remaining int                 `json:"remaining"` // candidates consistent after this row
}

// Session holds the state of a single game.
type Session struct {
	ID           string
	Mode         Mode
	Rules        mastermind.Ruleset
	Limit        int               // maximum rounds
	Secret       mastermind.Code   // codemaker sessions only
	Candidates   []mastermind.Code // codes still consistent with the board
	CurrentGuess mastermind.Code   // codebreaker sessions: guess awaiting feedback
	Board        []BoardRow
	Rounds       int
	Finished     bool
	Cracked      bool
	Aborted      bool // contradiction in supplied feedback

	selector mastermind.Selector
}

// NewCodemaker generates the code space, picks a secret with sel, and keeps
// the space as the consistency pool for remaining-count reporting.
func NewCodemaker(rs mastermind.Ruleset, limit int, sel mastermind.Selector) (*Session, error) {
	space, err := mastermind.Generate(rs)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:         uuid.NewString(),
		Mode:       ModeCodemaker,
		Rules:      rs,
		Limit:      limit,
		Secret:     sel(space),
		Candidates: space,
		selector:   sel,
	}, nil
}

// NewCodebreaker generates the code space and emits the machine's opening
// guess. Feedback for it is applied with ApplyFeedback.
func NewCodebreaker(rs mastermind.Ruleset, limit int, sel mastermind.Selector) (*Session, error) {
	space, err := mastermind.Generate(rs)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:           uuid.NewString(),
		Mode:         ModeCodebreaker,
		Rules:        rs,
		Limit:        limit,
		Candidates:   space,
		CurrentGuess: sel(space),
		selector:     sel,
	}, nil
}

// SpaceSize is the size of the full code space for this session's rules.
func (s *Session) SpaceSize() int { return s.Rules.SpaceSize() }

// Remaining is the number of codes still consistent with the board.
func (s *Session) Remaining() int { return len(s.Candidates) }

// ApplyGuess scores a human guess against the secret (codemaker sessions).
// Returns the feedback and records a board row carrying the count of codes
// that remain consistent with everything on the board.
func (s *Session) ApplyGuess(guess mastermind.Code) (mastermind.Feedback, error) {
	if s.Mode != ModeCodemaker {
		return mastermind.Feedback{}, ErrWrongMode
	}
	if s.Finished {
		return mastermind.Feedback{}, ErrFinished
	}

	fb, err := mastermind.Score(guess, s.Secret)
	if err != nil {
		return mastermind.Feedback{}, err
	}
	s.Rounds++

	if fb.IsWin(s.Rules.Pins) {
		s.Finished, s.Cracked = true, true
		s.Candidates = []mastermind.Code{s.Secret}
	} else {
		// The secret always survives this filter (it is consistent with its
		// own feedback and differs from a non-winning guess), so reduction
		// cannot come up empty here.
		reduced, err := mastermind.Reduce(s.Candidates, guess, fb)
		if err != nil {
			return mastermind.Feedback{}, fmt.Errorf("reduce after guess: %w", err)
		}
		s.Candidates = reduced
		if s.Rounds >= s.Limit {
			s.Finished = true
		}
	}

	s.Board = append(s.Board, BoardRow{
		Round:     s.Rounds,
		Code:      guess,
		Feedback:  fb,
		Remaining: len(s.Candidates),
	})
	return fb, nil
}

// ApplyFeedback applies the human codemaker's answer to the machine's
// current guess (codebreaker sessions) and returns the next guess, or nil
// when the session ended. A contradictory answer aborts the session with
// mastermind.ErrInconsistentFeedback.
func (s *Session) ApplyFeedback(fb mastermind.Feedback) (mastermind.Code, error) {
	if s.Mode != ModeCodebreaker {
		return nil, ErrWrongMode
	}
	if s.Finished {
		return nil, ErrFinished
	}

	s.Rounds++
	probe := s.CurrentGuess

	if fb.IsWin(s.Rules.Pins) {
		s.Finished, s.Cracked = true, true
		s.Candidates = []mastermind.Code{probe}
		s.Board = append(s.Board, BoardRow{Round: s.Rounds, Code: probe, Feedback: fb, Remaining: 1})
		return nil, nil
	}

	reduced, err := mastermind.Reduce(s.Candidates, probe, fb)
	if err != nil {
		s.Finished, s.Aborted = true, true
		s.Board = append(s.Board, BoardRow{Round: s.Rounds, Code: probe, Feedback: fb, Remaining: 0})
		return nil, err
	}
	s.Candidates = reduced
	s.Board = append(s.Board, BoardRow{Round: s.Rounds, Code: probe, Feedback: fb, Remaining: len(reduced)})

	if s.Rounds >= s.Limit {
		s.Finished = true
		return nil, nil
	}
	s.CurrentGuess = s.selector(s.Candidates)
	return s.CurrentGuess, nil
}

// State reports a coarse string representation of the session state.
func (s *Session) State() string {
	switch {
	case s.Aborted:
		return "aborted"
	case s.Cracked:
		return "won"
	case s.Finished:
		return "lost"
	default:
		return "playing"
	}
}
