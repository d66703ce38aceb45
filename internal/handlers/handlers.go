package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log *logrus.Logger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).WithField("response", v).Error("unable to send response")
	}
}

type errorPayload struct {
	Error string `json:"error"`
	Line  *int   `json:"line,omitempty"`
}

func wrapError(err error) errorPayload {
	payload := errorPayload{Error: err.Error()}
	var le *command.LineError
	if errors.As(err, &le) {
		payload.Line = &le.Line
	}
	return payload
}

// statusOf maps an error from the game layer to a response status.
func statusOf(err error) int {
	var ce mines.ConfigurationError
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &ce):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func sendError(w http.ResponseWriter, log *logrus.Logger, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := SendJSON(w, wrapError(err)); err != nil {
		log.WithError(err).Error("unable to send error")
	}
}
