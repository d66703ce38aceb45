package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func setupTestStore(ttl time.Duration) *Store {
	log := logrus.New()
	log.SetOutput(io.Discard)
	mines.Log.SetOutput(io.Discard)
	s := NewStore(log, ttl)
	s.newRand = func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }
	return s
}

func TestStoreGetMissing(t *testing.T) {
	s := setupTestStore(time.Minute)

	_, err := s.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreCreateAndGet(t *testing.T) {
	s := setupTestStore(time.Minute)
	now := time.UnixMilli(1_700_000_000_000)

	a, err := s.Create(mines.Easy.Params(), now)
	require.NoError(t, err)
	b, err := s.Create(mines.Hard.Params(), now)
	require.NoError(t, err)

	assert.NotEqual(t, a.Id, b.Id)
	assert.Equal(t, 2, s.Len())

	got, err := s.Get(a.Id)
	require.NoError(t, err)
	assert.Same(t, a, got)

	s.Delete(a.Id)
	_, err = s.Get(a.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreCreateInvalid(t *testing.T) {
	s := setupTestStore(time.Minute)

	_, err := s.Create(mines.Params{Size: 2, MineCount: 4}, time.Now())

	var ce mines.ConfigurationError
	assert.ErrorAs(t, err, &ce)
	assert.Equal(t, 0, s.Len())
}

func TestSessionDoTracksEnd(t *testing.T) {
	s := setupTestStore(time.Minute)
	start := time.UnixMilli(1_000)
	session, err := s.Create(mines.Easy.Params(), start)
	require.NoError(t, err)

	view, err := session.Do(start.Add(time.Second), func(b *mines.Board) error {
		b.Reveal(2, 2)
		return nil
	})
	require.NoError(t, err)
	assert.Nil(t, view.EndedAt)
	assert.Equal(t, mines.Active, view.Status)

	end := start.Add(2 * time.Second)
	view, err = session.Do(end, func(b *mines.Board) error {
		b.Forfeit()
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, view.EndedAt)
	assert.Equal(t, end.UnixMilli(), *view.EndedAt)

	view, _ = session.Do(end.Add(time.Second), func(b *mines.Board) error { return nil })
	assert.Equal(t, end.UnixMilli(), *view.EndedAt)

	view, err = session.Do(end.Add(time.Second), func(b *mines.Board) error {
		return b.ApplyDifficulty(mines.Medium)
	})
	require.NoError(t, err)
	assert.Nil(t, view.EndedAt)
	assert.Equal(t, 10, view.Size)
}

func TestSessionDoReturnsError(t *testing.T) {
	s := setupTestStore(time.Minute)
	session, err := s.Create(mines.Easy.Params(), time.Now())
	require.NoError(t, err)

	boom := errors.New("boom")
	view, err := session.Do(time.Now(), func(b *mines.Board) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5, view.Size)
}

func TestViewJSON(t *testing.T) {
	s := setupTestStore(time.Minute)
	session, err := s.Create(mines.Params{Size: 2, MineCount: 1}, time.UnixMilli(5))
	require.NoError(t, err)

	data, err := json.Marshal(session.View())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"session_id": "1",
		"size": 2,
		"mine_count": 1,
		"grid": [-2, -2, -2, -2],
		"remaining_mines": 1,
		"unopened_safe": 3,
		"status": "active",
		"started_at": 5
	}`, string(data))
}

func TestStoreSweep(t *testing.T) {
	s := setupTestStore(time.Minute)
	start := time.Now()

	idle, err := s.Create(mines.Easy.Params(), start)
	require.NoError(t, err)
	busy, err := s.Create(mines.Easy.Params(), start)
	require.NoError(t, err)

	_, err = busy.Do(start.Add(50*time.Second), func(b *mines.Board) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, 1, s.Sweep(start.Add(90*time.Second)))
	_, err = s.Get(idle.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(busy.Id)
	assert.NoError(t, err)
}

func TestStoreRunStopsWithContext(t *testing.T) {
	s := setupTestStore(time.Nanosecond)
	_, err := s.Create(mines.Easy.Params(), time.Now().Add(-time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- s.Run(ctx, time.Millisecond) }()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
