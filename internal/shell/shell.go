// internal/shell/shell.go
//
// Interactive command loop for playing at a terminal.
// Responsibilities:
//   - Line-oriented command dispatch: codemaker, codebreaker, guess,
//     feedback, board, set, show, reset, help, quit.
//   - Rendering the board and session status as plain ASCII.
//
// The shell is a thin driver over internal/session, the same way the HTTP
// server is: parse, call, render. It holds at most one session at a time
// and locks the settings while that session runs.

package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/superhirn/mastermind/internal/mastermind"
	"github.com/superhirn/mastermind/internal/rules"
	"github.com/superhirn/mastermind/internal/session"
)

const intro = `
Welcome to the interactive collection of helpers for the
well known code-breaking game.
`

const prompt = "(Mastermind) "

var (
	good = color.New(color.FgGreen)
	bad  = color.New(color.FgRed)
)

// Shell runs the interactive loop on a reader/writer pair.
type Shell struct {
	in       *bufio.Scanner
	out      io.Writer
	settings rules.Settings
	sess     *session.Session

	// newSelector builds the guess-selection strategy per session.
	// Swappable so tests can run deterministic transcripts.
	newSelector func() mastermind.Selector
}

func New(in io.Reader, out io.Writer) *Shell {
	return &Shell{
		in:          bufio.NewScanner(in),
		out:         out,
		settings:    rules.Default(),
		newSelector: func() mastermind.Selector { return mastermind.NewRandomSelector(0) },
	}
}

// Run reads commands until quit or EOF.
func (s *Shell) Run() error {
	fmt.Fprint(s.out, intro, "\n")
	for {
		fmt.Fprint(s.out, prompt)
		if !s.in.Scan() {
			fmt.Fprintln(s.out, "Bye!")
			return s.in.Err()
		}
		line := strings.ToLower(strings.TrimSpace(s.in.Text()))
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "quit", "eof":
			fmt.Fprintln(s.out, "Bye!")
			return nil
		case "codemaker":
			s.cmdCodemaker(args)
		case "codebreaker":
			s.cmdCodebreaker(args)
		case "guess":
			s.cmdGuess(args)
		case "feedback":
			s.cmdFeedback(args)
		case "board":
			s.cmdBoard(args)
		case "set":
			s.cmdSet(args)
		case "show":
			s.cmdShow(args)
		case "reset":
			s.cmdReset(args)
		case "help":
			s.cmdHelp(args)
		default:
			s.fail("*** Unknown command: %s. Try \"help\".\n", cmd)
		}
	}
}

func (s *Shell) ok(format string, a ...any)   { _, _ = good.Fprintf(s.out, format, a...) }
func (s *Shell) fail(format string, a ...any) { _, _ = bad.Fprintf(s.out, format, a...) }

// ------------------------------ sessions -----------------------------------

func (s *Shell) cmdCodemaker(args []string) {
	if s.sess != nil {
		s.fail("*** Already in a %s session.\n", s.sess.Mode)
		s.fail("*** Reset first, then start a new session.\n")
		return
	}
	if len(args) > 0 {
		s.fail("*** codemaker: expected no arguments but got %d.\n", len(args))
		return
	}
	if err := s.settings.CheckSpace(); err != nil {
		s.fail("*** %v\n", err)
		return
	}
	sess, err := session.NewCodemaker(s.settings.Ruleset(), s.settings.Limit, s.newSelector())
	if err != nil {
		s.fail("*** %v\n", err)
		return
	}
	s.sess = sess
	s.ok("+ Codemaker did choose one secret code out of %d.\n", sess.SpaceSize())
}

func (s *Shell) cmdCodebreaker(args []string) {
	if s.sess != nil {
		s.fail("*** Already in a %s session.\n", s.sess.Mode)
		s.fail("*** Reset first, then start a new session.\n")
		return
	}
	if len(args) > 0 {
		s.fail("*** codebreaker: expected no arguments but got %d.\n", len(args))
		return
	}
	if err := s.settings.CheckSpace(); err != nil {
		s.fail("*** %v\n", err)
		return
	}
	sess, err := session.NewCodebreaker(s.settings.Ruleset(), s.settings.Limit, s.newSelector())
	if err != nil {
		s.fail("*** %v\n", err)
		return
	}
	s.sess = sess
	s.ok("+ Now in codebreaker mode.\n")
	s.ok("+ First guess: %s. Ready for feedbacks.\n", sess.CurrentGuess)
	s.showSettings()
}

// cmdGuess scores a human guess in a codemaker session.
func (s *Shell) cmdGuess(args []string) {
	if s.sess == nil || s.sess.Mode != session.ModeCodemaker {
		s.ok("+ You must be in a codemaker session for this to work.\n")
		return
	}
	if s.sess.Finished {
		s.fail("*** The game is over. Will not accept another guess.\n")
		return
	}
	code, err := mastermind.ParseCode(strings.Join(args, " "), s.sess.Rules)
	if err != nil {
		s.fail("*** Color codes must be in the range 0 ... %d.\n", s.settings.Colors-1)
		s.fail("*** Color codes may%sbe repeated.\n", mayNot(s.settings.Repeat))
		s.fail("*** Please enter exactly %d single digits separated by blanks.\n", s.settings.Pins)
		return
	}
	if _, err := s.sess.ApplyGuess(code); err != nil {
		s.fail("*** %v\n", err)
		return
	}
	if s.sess.Finished {
		s.reveal()
	}
	s.cmdBoard(nil)
}

// cmdFeedback applies the human codemaker's answer in a codebreaker session.
func (s *Shell) cmdFeedback(args []string) {
	if s.sess == nil || s.sess.Mode != session.ModeCodebreaker {
		s.ok("+ You must be in a codebreaker session for this to work.\n")
		return
	}
	if s.sess.Finished {
		s.fail("*** Game already over. Will not accept another feedback.\n")
		return
	}
	if len(args) != 1 {
		s.fail("*** feedback: expected one single argument, but got %d.\n", len(args))
		return
	}
	fb, err := mastermind.ParseFeedback(args[0], s.sess.Rules.Pins)
	if err != nil {
		s.fail("*** The answer of the codemaker can be a string of \"o\" and \"+\", or a single \"-\".\n")
		return
	}
	next, err := s.sess.ApplyFeedback(fb)
	if err != nil {
		if errors.Is(err, mastermind.ErrInconsistentFeedback) {
			s.fail("*** The feedbacks so far contradict each other. No possible code remains.\n")
			s.fail("*** Session aborted. Reset to start over.\n")
			return
		}
		s.fail("*** %v\n", err)
		return
	}
	s.cmdBoard(nil)
	switch {
	case s.sess.Cracked:
		s.reveal()
	case s.sess.Finished:
		s.ok("+ Too many guesses. Secret code not cracked. Game over.\n")
	default:
		s.ok("+ Next guess: %s.\n", next)
	}
}

func (s *Shell) reveal() {
	switch {
	case s.sess.Aborted:
		s.ok("+ Session aborted on contradictory feedback.\n")
	case s.sess.Cracked && s.sess.Mode == session.ModeCodemaker:
		s.ok("+ Congratulations! The secret code %s has been cracked.\n", s.sess.Secret)
	case s.sess.Cracked:
		s.ok("+ Congratulations! The secret code %s has been cracked.\n", s.sess.CurrentGuess)
	case s.sess.Mode == session.ModeCodemaker:
		s.ok("+ Game over. Secret code %s not broken.\n", s.sess.Secret)
	default:
		s.ok("+ Too many guesses. Secret code not cracked. Game over.\n")
	}
}

// ------------------------------- board -------------------------------------

// cmdBoard renders session history as a fixed-width table, one slot per
// allowed guess.
func (s *Shell) cmdBoard(args []string) {
	if len(args) > 0 {
		s.fail("*** board: expected no further arguments, but got %d.\n", len(args))
		return
	}
	pins, limit := s.settings.Pins, s.settings.Limit
	var board []session.BoardRow
	if s.sess != nil {
		pins, limit = s.sess.Rules.Pins, s.sess.Limit
		board = s.sess.Board
	}
	codeWidth := 1 + pins*2

	fmt.Fprintln(s.out, "  ."+strings.Repeat("-", 14+codeWidth)+".")
	fmt.Fprintf(s.out, "  | pos |%s| score |\n", center("c o d e", codeWidth))
	fmt.Fprintln(s.out, "  |"+strings.Repeat("-", 14+codeWidth)+"|")
	for n := 0; n < limit; n++ {
		if n < len(board) {
			row := board[n]
			fmt.Fprintf(s.out, "  | %3d |%s| %-5s |\n", row.Round, center(row.Code.String(), codeWidth), row.Feedback.String())
		} else {
			fmt.Fprintf(s.out, "  |     |%s|       |\n", strings.Repeat(" ", codeWidth))
		}
	}
	fmt.Fprintln(s.out, "  '"+strings.Repeat("-", 14+codeWidth)+"'")
}

func center(str string, width int) string {
	pad := width - len(str)
	if pad <= 0 {
		return str
	}
	left := pad / 2
	return strings.Repeat(" ", left) + str + strings.Repeat(" ", pad-left)
}

// ---------------------------- settings/show --------------------------------

func (s *Shell) cmdSet(args []string) {
	if s.sess != nil {
		s.fail("*** %s session running, settings locked.\n", capitalize(string(s.sess.Mode)))
		s.fail("*** Settings can be changed after reset.\n")
		return
	}
	if len(args) != 2 {
		s.fail("*** set: expected a key and a value but got %d arguments.\n", len(args))
		return
	}
	if err := s.settings.Set(args[0], args[1]); err != nil {
		s.fail("*** set: %v.\n", err)
	}
}

func (s *Shell) cmdShow(args []string) {
	if len(args) > 1 {
		s.fail("*** show: expected a single keyword but got %d.\n", len(args))
		return
	}
	item := "all"
	if len(args) == 1 {
		item = args[0]
	}
	switch item {
	case "session":
		s.showSession()
	case "settings":
		s.showSettings()
	case "all":
		s.showSettings()
		s.showSession()
	case "help":
		s.cmdHelp(nil)
	default:
		s.fail("*** show: can not show unknown property.\n")
	}
}

func (s *Shell) showSession() {
	if s.sess == nil {
		s.ok("+ Session not running.\n")
		return
	}
	s.ok("+ Mastermind is running in %s mode.\n", s.sess.Mode)
	s.ok("+ Guesses so far: %d\n", s.sess.Rounds)
	s.ok("+ Remaining guesses: %d\n", s.sess.Limit-s.sess.Rounds)
	if s.sess.Finished {
		s.reveal()
	}
}

func (s *Shell) showSettings() {
	s.ok("+ The number of code colors is %d.\n", s.settings.Colors)
	s.ok("+ The number of code pins is %d.\n", s.settings.Pins)
	s.ok("+ Maximum allowed guesses for codebreaking are %d.\n", s.settings.Limit)
	s.ok("+ Code colors may%sbe repeated.\n", mayNot(s.settings.Repeat))
}

func (s *Shell) cmdReset(args []string) {
	if len(args) > 0 {
		s.fail("*** reset: expected no arguments but got %d.\n", len(args))
		return
	}
	s.sess = nil
	s.settings = rules.Default()
	s.ok("+ Session ended. Mastermind set to defaults.\n")
}

func (s *Shell) cmdHelp(args []string) {
	for _, line := range []string{
		"Commands:",
		`  codemaker            start a session where the machine keeps a secret code`,
		`  codebreaker          start a session where the machine cracks your code`,
		`  guess 1 2 3 4 [5]    enter a guess in a codemaker session`,
		`  feedback <answer>    answer the machine's guess: "+" right color and place,`,
		`                       "o" right color, "-" no match at all`,
		`  board                show the current game board`,
		`  set <key> <value>    set colors (4..9), pins (4|5), limit (10|12),`,
		`                       repeat (true|false)`,
		`  show [session|settings|all]`,
		`  reset                end the session and restore defaults`,
		`  quit                 leave (also ^D)`,
	} {
		fmt.Fprintln(s.out, line)
	}
}

// ------------------------------- helpers -----------------------------------

func mayNot(allowed bool) string {
	if allowed {
		return " "
	}
	return " not "
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
