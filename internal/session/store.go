package session

import (
	"context"
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Store keeps sessions in memory. Sessions idle for longer than the TTL are
// dropped by [Store.Sweep].
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	nextId   int64
	ttl      time.Duration
	log      *logrus.Logger
	newRand  func() *rand.Rand
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func NewStore(log *logrus.Logger, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		log:      log,
		newRand:  createRand,
	}
}

// Create starts a new game with p.
func (s *Store) Create(p mines.Params, now time.Time) (*Session, error) {
	board, err := mines.NewBoard(p, s.newRand())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextId++
	session := &Session{
		Id:         s.nextId,
		StartedAt:  now,
		board:      board,
		lastActive: now,
	}
	s.sessions[session.Id] = session

	s.log.WithFields(logrus.Fields{
		"session_id": session.Id,
		"params":     p.String(),
	}).Debug("session created")

	return session, nil
}

func (s *Store) Get(id int64) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (s *Store) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Sweep drops every session idle for longer than the TTL and returns how
// many were dropped.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, session := range s.sessions {
		if now.Sub(session.idleSince()) > s.ttl {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps the store every interval until ctx is done.
func (s *Store) Run(ctx context.Context, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := s.Sweep(now); n > 0 {
				s.log.WithFields(logrus.Fields{
					"dropped":   n,
					"remaining": s.Len(),
				}).Info("expired sessions swept")
			}
		}
	}
}
