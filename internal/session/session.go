package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Session is one game played through a remote adapter. The board is only
// touched under the session lock.
type Session struct {
	Id        int64
	StartedAt time.Time

	mu         sync.Mutex
	board      *mines.Board
	endedAt    time.Time
	lastActive time.Time
}

// View is what clients receive after every move.
type View struct {
	SessionId string `json:"session_id"`
	mines.Snapshot
	StartedAt int64  `json:"started_at"`
	EndedAt   *int64 `json:"ended_at,omitempty"`
}

// Do runs f against the session's board. Whatever f returns, the view
// reflects the board afterwards.
func (s *Session) Do(now time.Time, f func(b *mines.Board) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := f(s.board)

	s.lastActive = now
	switch status := s.board.Status(); {
	case status.Terminal() && s.endedAt.IsZero():
		s.endedAt = now
	case !status.Terminal():
		// the board may have been reset to a new game
		s.endedAt = time.Time{}
	}
	return s.view(), err
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() View {
	var endedAt *int64
	if !s.endedAt.IsZero() {
		e := s.endedAt.UnixMilli()
		endedAt = &e
	}
	return View{
		SessionId: strconv.FormatInt(s.Id, 10),
		Snapshot:  s.board.Snapshot(),
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
