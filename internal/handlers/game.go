package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const maxBatchBytes = 64 << 10

type GameHandler struct {
	log     *logrus.Logger
	store   *session.Store
	jwt     *config.JWT
	ws      *config.WebSocket
	maxSize int
	now     func() time.Time
}

func NewGameHandler(
	log *logrus.Logger,
	store *session.Store,
	jwt *config.JWT,
	ws *config.WebSocket,
	maxSize int,
) *GameHandler {
	return &GameHandler{
		log:     log,
		store:   store,
		jwt:     jwt,
		ws:      ws,
		maxSize: maxSize,
		now:     time.Now,
	}
}

func (g *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.log, map[string]any{
		"status":   "ok",
		"sessions": g.store.Len(),
	})
}

func (g *GameHandler) Difficulties(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.log, difficultyDTOs())
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseGameParams(r.URL.Query(), g.maxSize)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	now := g.now()
	s, err := g.store.Create(params, now)
	if err != nil {
		sendError(w, g.log, statusOf(err), err)
		return
	}

	token, err := g.jwt.Sign(s.Id, now)
	if err != nil {
		g.store.Delete(s.Id)
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to sign session token")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, g.log, NewGameDTO{Token: token, Session: s.View()})
}

// authorize resolves the session in the path and checks the request carries
// its token.
func (g *GameHandler) authorize(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, errors.New("invalid session id"))
		return nil, false
	}
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok {
		sendError(w, g.log, http.StatusUnauthorized, errors.New("missing or invalid session token"))
		return nil, false
	}
	if claims.SessionId != sessionId {
		sendError(w, g.log, http.StatusForbidden, errors.New("token belongs to another session"))
		return nil, false
	}
	s, err := g.store.Get(sessionId)
	if err != nil {
		sendError(w, g.log, statusOf(err), err)
		return nil, false
	}
	return s, true
}

// play runs f on the session board and replies with the resulting view.
func (g *GameHandler) play(w http.ResponseWriter, r *http.Request, f func(b *mines.Board) error) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}
	view, err := s.Do(g.now(), f)
	if err != nil {
		sendError(w, g.log, statusOf(err), err)
		return
	}
	if view.Status.Terminal() {
		g.log.WithFields(logrus.Fields{
			"session_id": view.SessionId,
			"status":     view.Status.String(),
		}).Debug("game over")
	}
	sendJSONOrLog(w, g.log, view)
}

// move decodes a cell position and applies an engine operation to it.
func (g *GameHandler) move(op func(b *mines.Board, row, col int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pos, err := ParsePosition(r.URL.Query())
		if err != nil {
			sendError(w, g.log, http.StatusBadRequest, err)
			return
		}
		g.play(w, r, func(b *mines.Board) error {
			if !b.InBounds(pos.Row, pos.Col) {
				return mines.ErrOutOfRange
			}
			op(b, pos.Row, pos.Col)
			return nil
		})
	}
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, s.View())
}

func (g *GameHandler) Open() http.HandlerFunc {
	return g.move((*mines.Board).Reveal)
}

func (g *GameHandler) Flag() http.HandlerFunc {
	return g.move((*mines.Board).ToggleFlag)
}

func (g *GameHandler) Chord() http.HandlerFunc {
	return g.move((*mines.Board).Chord)
}

func (g *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	params, err := ParseGameParams(r.URL.Query(), g.maxSize)
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	g.play(w, r, func(b *mines.Board) error {
		return b.Reset(params)
	})
}

func (g *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	g.play(w, r, func(b *mines.Board) error {
		b.Forfeit()
		return nil
	})
}

// Batch accepts newline-separated commands in the request body, see
// [command.ExecuteBatch]. A malformed command leaves the game untouched and
// the response names its line.
func (g *GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBatchBytes))
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	g.play(w, r, func(b *mines.Board) error {
		return g.runBatch(b, string(body))
	})
}

// runBatch runs a batch on b. New games past the size limit are refused
// while the batch is parsed, before any board is allocated.
func (g *GameHandler) runBatch(b *mines.Board, batch string) error {
	return command.Limits{MaxSize: g.maxSize}.ExecuteBatch(b, batch)
}
