// internal/httpserver/server.go
//
// HTTP session driver for the Mastermind backend.
// Responsibilities:
//   - Router + middleware (JSON, request logging, timeouts, panic recovery,
//     request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess,
//     POST /game/feedback, GET /game/{id}/board.
//   - Daily challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me,
//     /games/mine.
//
// Notes:
//   - The server is a driver: all deduction happens in internal/mastermind
//     and all game state lives in internal/session. Handlers parse, call,
//     persist, render.
//   - SQLite persistence is optional. With a nil *sql.DB the server runs
//     ephemeral: games work, auth/stats/daily report 503.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/superhirn/mastermind/internal/mastermind"
	"github.com/superhirn/mastermind/internal/rules"
	"github.com/superhirn/mastermind/internal/session"
	"github.com/superhirn/mastermind/internal/store"
)

// Server bundles router, in-memory session store, and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB

	// newSelector builds the guess-selection strategy for each new session.
	// Swappable so tests can run deterministic sessions.
	newSelector func() mastermind.Selector
}

// New constructs a Server, installs middleware, and registers routes.
// db may be nil for an ephemeral (no persistence) server.
func New(st store.Store, db *sql.DB) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		store: st,
		db:    db,
		newSelector: func() mastermind.Selector {
			return mastermind.NewRandomSelector(time.Now().UnixNano())
		},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(requestLogger)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"mastermind-go","endpoints":["/health","POST /game/new","POST /game/guess","POST /game/feedback","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Game endpoints — OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/guess", s.handleGuess)
	s.r.With(s.withOptionalAuth()).Post("/game/feedback", s.handleFeedback)
	s.r.Get("/game/{id}/board", s.handleBoard)

	// Daily challenge — OPTIONAL AUTH (guests play; results persisted on win)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger emits one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("reqId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "codemaker" | "codebreaker"
	Colors int    `json:"colors"` // optional, default from settings table
	Pins   int    `json:"pins"`
	Limit  int    `json:"limit"`
	Repeat *bool  `json:"repeat"`
}
type newGameRes struct {
	GameID     string `json:"gameId"`
	Mode       string `json:"mode"`
	Space      int    `json:"space"`                // size of the full code space
	FirstGuess string `json:"firstGuess,omitempty"` // codebreaker sessions only
}

// handleNewGame creates a new in-memory session and persists a DB "owner"
// row (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	set := rules.Default()
	if req.Colors != 0 {
		if err := set.Set("colors", itoa(req.Colors)); err != nil {
			badRequest(w, err)
			return
		}
	}
	if req.Pins != 0 {
		if err := set.Set("pins", itoa(req.Pins)); err != nil {
			badRequest(w, err)
			return
		}
	}
	if req.Limit != 0 {
		if err := set.Set("limit", itoa(req.Limit)); err != nil {
			badRequest(w, err)
			return
		}
	}
	if req.Repeat != nil {
		set.Repeat = *req.Repeat
	}
	if err := set.CheckSpace(); err != nil {
		badRequest(w, err)
		return
	}

	var (
		sess *session.Session
		err  error
	)
	switch req.Mode {
	case "", string(session.ModeCodemaker):
		sess, err = session.NewCodemaker(set.Ruleset(), set.Limit, s.newSelector())
	case string(session.ModeCodebreaker):
		sess, err = session.NewCodebreaker(set.Ruleset(), set.Limit, s.newSelector())
	default:
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		badRequest(w, err)
		return
	}

	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	s.insertGameRow(w, r, sess, set)

	res := newGameRes{GameID: sess.ID, Mode: string(sess.Mode), Space: sess.SpaceSize()}
	if sess.Mode == session.ModeCodebreaker {
		res.FirstGuess = sess.CurrentGuess.String()
	}
	_ = json.NewEncoder(w).Encode(res)
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Code   string `json:"code"` // "1 2 3 4"
}
type guessRes struct {
	Feedback  string `json:"feedback"` // "++o" rendering
	State     string `json:"state"`    // playing | won | lost
	Remaining int    `json:"remaining"`
	Round     int    `json:"round"`
	Secret    string `json:"secret,omitempty"` // revealed only once the game ends
}

// handleGuess applies a human guess to a codemaker session, persists
// progress, and (if finished) updates user stats best-effort.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	code, err := mastermind.ParseCode(req.Code, sess.Rules)
	if err != nil {
		badRequest(w, err)
		return
	}
	fb, err := sess.ApplyGuess(code)
	if err != nil {
		badRequest(w, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	s.recordProgress(w, r, sess)

	res := guessRes{
		Feedback:  fb.String(),
		State:     sess.State(),
		Remaining: sess.Remaining(),
		Round:     sess.Rounds,
	}
	if sess.Finished {
		res.Secret = sess.Secret.String()
	}
	_ = json.NewEncoder(w).Encode(res)
}

// feedbackReq/Res payloads for POST /game/feedback.
type feedbackReq struct {
	GameID   string `json:"gameId"`
	Feedback string `json:"feedback"` // "++o", "oo", or "-"
}
type feedbackRes struct {
	NextGuess string `json:"nextGuess,omitempty"`
	State     string `json:"state"` // playing | won | lost | aborted
	Remaining int    `json:"remaining"`
	Round     int    `json:"round"`
}

// handleFeedback applies a human codemaker's answer to a codebreaker
// session. A contradictory answer aborts the session with 409.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	fb, err := mastermind.ParseFeedback(req.Feedback, sess.Rules.Pins)
	if err != nil {
		badRequest(w, err)
		return
	}
	next, err := sess.ApplyFeedback(fb)
	if err != nil && !errors.Is(err, mastermind.ErrInconsistentFeedback) {
		badRequest(w, err)
		return
	}
	if saveErr := s.store.Save(r.Context(), sess); saveErr != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	s.recordProgress(w, r, sess)

	if errors.Is(err, mastermind.ErrInconsistentFeedback) {
		http.Error(w, `{"error":"inconsistent_feedback"}`, http.StatusConflict)
		return
	}

	res := feedbackRes{
		State:     sess.State(),
		Remaining: sess.Remaining(),
		Round:     sess.Rounds,
	}
	if next != nil {
		res.NextGuess = next.String()
	}
	_ = json.NewEncoder(w).Encode(res)
}

// boardRes is returned by GET /game/{id}/board.
type boardRes struct {
	GameID string     `json:"gameId"`
	Mode   string     `json:"mode"`
	State  string     `json:"state"`
	Limit  int        `json:"limit"`
	Rows   []boardRow `json:"rows"`
}
type boardRow struct {
	Round     int    `json:"round"`
	Code      string `json:"code"`
	Feedback  string `json:"feedback"`
	Remaining int    `json:"remaining"`
}

// handleBoard renders the session history.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	res := boardRes{
		GameID: sess.ID,
		Mode:   string(sess.Mode),
		State:  sess.State(),
		Limit:  sess.Limit,
		Rows:   make([]boardRow, 0, len(sess.Board)),
	}
	for _, row := range sess.Board {
		res.Rows = append(res.Rows, boardRow{
			Round:     row.Round,
			Code:      row.Code.String(),
			Feedback:  row.Feedback.String(),
			Remaining: row.Remaining,
		})
	}
	_ = json.NewEncoder(w).Encode(res)
}

// --------------------------- persistence -----------------------------------

// insertGameRow persists the owner row for a new session (best effort).
func (s *Server) insertGameRow(w http.ResponseWriter, r *http.Request, sess *session.Session, set rules.Settings) {
	if s.db == nil {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		_, err := s.db.Exec(`INSERT INTO games (id, user_id, mode, colors, pins, status, rounds, started_at)
		                     VALUES (?,?,?,?,?,?,0,?)`,
			sess.ID, me.ID, string(sess.Mode), set.Colors, set.Pins, "playing", now)
		if err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert user game row")
		}
		return
	}
	anon := s.ensureAnonID(w, r)
	_, err := s.db.Exec(`INSERT INTO games (id, anonymous_id, mode, colors, pins, status, rounds, started_at)
	                     VALUES (?,?,?,?,?,?,0,?)`,
		sess.ID, anon, string(sess.Mode), set.Colors, set.Pins, "playing", now)
	if err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert anon game row")
	}
}

// recordProgress persists round counters and, when the session ends, the
// final status and user stats. Best effort, never fatal to the request.
func (s *Server) recordProgress(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if s.db == nil {
		return
	}
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET rounds=? WHERE id=? AND `+ownerClause, sess.Rounds, sess.ID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update rounds")
	}
	if sess.Finished {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			sess.State(), time.Now().UTC().Format(time.RFC3339), sess.ID, ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		// Only codemaker sessions count toward the human's win/loss record;
		// in codebreaker sessions the machine is the one playing.
		if me != nil && sess.Mode == session.ModeCodemaker {
			if err := s.bumpStats(tx, me.ID, sess.Cracked); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	_ = tx.Commit()
}

// ------------------------------- small util --------------------------------

func badRequest(w http.ResponseWriter, err error) {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	http.Error(w, string(b), http.StatusBadRequest)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
