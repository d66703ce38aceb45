package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Connect upgrades to a websocket. Every text frame is a command batch; the
// reply is the session view, or an error payload if the batch was rejected.
func (g *GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer c.Close()

	log := g.log.WithField("session_id", s.Id)
	log.Debug("ws connected")

	if err := g.writeWS(c, s.View()); err != nil {
		log.WithError(err).Warn("ws write failed")
		return
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("ws read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			log.WithField("type", mt).Debug("ws non-text frame, closing")
			return
		}

		text := strings.TrimSpace(string(message))
		log.WithField("batch", text).Debug("ws >")

		var reply any
		view, err := s.Do(g.now(), func(b *mines.Board) error {
			return g.runBatch(b, text)
		})
		if err != nil {
			reply = wrapError(err)
		} else {
			reply = view
		}

		if err := g.writeWS(c, reply); err != nil {
			log.WithError(err).Warn("ws write failed")
			return
		}
		if view.Status.Terminal() {
			log.WithFields(logrus.Fields{"status": view.Status.String()}).Debug("game over")
		}
	}
}

func (g *GameHandler) writeWS(c *websocket.Conn, v any) error {
	if g.ws.WriteTimeout > 0 {
		if err := c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout)); err != nil {
			return err
		}
	}
	return c.WriteJSON(v)
}
