// internal/httpserver/routes_daily.go
//
// Daily challenge: one shared secret code per UTC date, derived from
// HMAC(DAILY_SALT, date) over the classic ruleset (6 colors, 4 pins,
// repetition allowed, 10 guesses). One recorded attempt per player per day.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/superhirn/mastermind/internal/daily"
	"github.com/superhirn/mastermind/internal/mastermind"
)

const dailyGuessLimit = 10

// dailySession tracks one player's in-flight attempt at today's code.
type dailySession struct {
	Secret    mastermind.Code
	Date      string
	CodeIndex int
	Rounds    int
	StartedAt time.Time
	Done      bool
	Won       bool
}

type dailyServer struct {
	srv   *Server
	store *daily.Store
	salt  string
	space []mastermind.Code

	mu       sync.Mutex
	sessions map[string]*dailySession // key: playerID + "|" + date
}

// mountDaily registers the daily routes on r (already wrapped with
// optional auth by the caller).
func (s *Server) mountDaily(r chi.Router) {
	classic := mastermind.Ruleset{Colors: 6, Pins: 4, Repetition: mastermind.WithRepetition}
	space, err := mastermind.Generate(classic)
	if err != nil {
		// Static ruleset, cannot fail
		log.Error().Err(err).Msg("generate daily code space")
	}
	d := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		space:    space,
		sessions: map[string]*dailySession{},
	}
	r.Post("/daily/new", d.handleNew)
	r.Post("/daily/guess", d.handleGuess)
	r.Get("/daily/leaderboard", d.handleLeaderboard)
}

// playerID identifies the requester: user id when logged in, otherwise the
// anonymous cookie id.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

type dailyNewRes struct {
	Date      string `json:"date"`
	Pins      int    `json:"pins"`
	Colors    int    `json:"colors"`
	Limit     int    `json:"limit"`
	Rounds    int    `json:"rounds"` // >0 when resuming an attempt
	Played    bool   `json:"played"` // a finished result already exists
	Remaining int    `json:"remainingGuesses"`
}

// handleNew starts (or resumes) today's attempt for the caller.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	if d.srv.db == nil {
		persistenceDisabled(w)
		return
	}
	uid := d.playerID(w, r)
	now := time.Now()
	date := daily.DateKey(now)

	played, err := d.store.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		log.Warn().Err(err).Msg("daily already-played check")
	}
	if played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Pins: 4, Colors: 6, Limit: dailyGuessLimit, Played: true})
		return
	}

	d.mu.Lock()
	key := uid + "|" + date
	sess, ok := d.sessions[key]
	if !ok {
		idx := daily.CodeIndex(now, d.salt, len(d.space))
		sess = &dailySession{
			Secret:    d.space[idx],
			Date:      date,
			CodeIndex: idx,
			StartedAt: now,
		}
		d.sessions[key] = sess
	}
	res := dailyNewRes{
		Date:      date,
		Pins:      4,
		Colors:    6,
		Limit:     dailyGuessLimit,
		Rounds:    sess.Rounds,
		Remaining: dailyGuessLimit - sess.Rounds,
	}
	d.mu.Unlock()
	_ = json.NewEncoder(w).Encode(res)
}

type dailyGuessReq struct {
	Code string `json:"code"` // "1 2 3 4"
}
type dailyGuessRes struct {
	Feedback  string `json:"feedback"`
	State     string `json:"state"` // playing | won | lost
	Round     int    `json:"round"`
	Remaining int    `json:"remainingGuesses"`
	Secret    string `json:"secret,omitempty"`
}

// handleGuess scores one guess against today's secret. On win the result is
// persisted; after the 10th failed guess the attempt locks as lost.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	if d.srv.db == nil {
		persistenceDisabled(w)
		return
	}
	var req dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	uid := d.playerID(w, r)
	date := daily.DateKey(time.Now())

	d.mu.Lock()
	sess, ok := d.sessions[uid+"|"+date]
	d.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":"no_active_attempt"}`, http.StatusNotFound)
		return
	}

	classic := mastermind.Ruleset{Colors: 6, Pins: 4, Repetition: mastermind.WithRepetition}
	code, err := mastermind.ParseCode(req.Code, classic)
	if err != nil {
		badRequest(w, err)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if sess.Done {
		http.Error(w, `{"error":"attempt_finished"}`, http.StatusConflict)
		return
	}
	fb, err := mastermind.Score(code, sess.Secret)
	if err != nil {
		badRequest(w, err)
		return
	}
	sess.Rounds++

	res := dailyGuessRes{
		Feedback:  fb.String(),
		State:     "playing",
		Round:     sess.Rounds,
		Remaining: dailyGuessLimit - sess.Rounds,
	}
	switch {
	case fb.IsWin(classic.Pins):
		sess.Done = true
		sess.Won = true
		res.State = "won"
		res.Secret = sess.Secret.String()
		err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:    uid,
			Date:      sess.Date,
			CodeIndex: sess.CodeIndex,
			Rounds:    sess.Rounds,
			ElapsedMs: int(time.Since(sess.StartedAt).Milliseconds()),
		})
		if err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	case sess.Rounds >= dailyGuessLimit:
		sess.Done = true
		res.State = "lost"
		res.Secret = sess.Secret.String()
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleLeaderboard returns today's top finishers (fewest rounds, then time).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if d.srv.db == nil {
		persistenceDisabled(w)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Warn().Err(err).Msg("daily leaderboard")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"date": date, "entries": rows})
}
