package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
)

// Routes builds the full handler tree, middleware included.
func Routes(log *logrus.Logger, game *GameHandler, j *config.JWT, development bool) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/status", game.Status)
	mux.HandleFunc("GET /v1/difficulties", game.Difficulties)

	mux.HandleFunc("POST /v1/game", game.NewGame)
	mux.HandleFunc("GET /v1/game/{id}", game.Fetch)
	mux.HandleFunc("POST /v1/game/{id}/open", game.Open())
	mux.HandleFunc("POST /v1/game/{id}/flag", game.Flag())
	mux.HandleFunc("POST /v1/game/{id}/chord", game.Chord())
	mux.HandleFunc("POST /v1/game/{id}/reset", game.Reset)
	mux.HandleFunc("POST /v1/game/{id}/forfeit", game.Forfeit)
	mux.HandleFunc("POST /v1/game/{id}/batch", game.Batch)

	mux.HandleFunc("GET /v1/game/{id}/connect", game.Connect)

	return middleware.Chain(mux,
		middleware.Logging(log),
		middleware.Cors(development),
		middleware.Auth(log, j),
	)
}
