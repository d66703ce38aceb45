package tui

import (
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func TestMain(m *testing.M) {
	mines.Log.SetOutput(io.Discard)
	m.Run()
}

func newGame(t *testing.T) *Game {
	t.Helper()
	b, err := mines.NewBoard(mines.Easy.Params(), rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return New(b)
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 25)
	t.Cleanup(s.Fini)
	return s
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func line(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := range w {
		if c := cells[y*w+x]; len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		} else {
			sb.WriteRune(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func draw(g *Game, s tcell.SimulationScreen) {
	g.Draw(s)
	s.Show()
}

func TestDrawFreshBoard(t *testing.T) {
	s := newScreen(t)
	g := newGame(t)
	draw(g, s)

	assert.Equal(t, "active  mines left: 5", line(s, headerRow))
	for r := range 5 {
		assert.Equal(t, "- - - - -", line(s, gridTop+r))
	}
	assert.Equal(t, help, line(s, gridTop+6))
}

func TestCursorMovement(t *testing.T) {
	g := newGame(t)
	assert.Equal(t, mines.Point{Row: 2, Col: 2}, g.Cursor())

	for range 3 {
		g.HandleEvent(key('l'))
	}
	assert.Equal(t, mines.Point{Row: 2, Col: 4}, g.Cursor(), "clamped at the edge")

	g.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	g.HandleEvent(key('h'))
	assert.Equal(t, mines.Point{Row: 1, Col: 3}, g.Cursor())

	g.HandleEvent(key('j'))
	g.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Equal(t, mines.Point{Row: 2, Col: 2}, g.Cursor())
}

func TestFlagAndReveal(t *testing.T) {
	s := newScreen(t)
	g := newGame(t)

	g.HandleEvent(key('f'))
	draw(g, s)
	assert.Equal(t, "active  mines left: 4", line(s, headerRow))
	assert.Equal(t, "- - F - -", line(s, gridTop+2))

	g.HandleEvent(key(' '))
	assert.Equal(t, mines.Flagged, g.Board().Cell(2, 2), "flag protects the cell")

	g.HandleEvent(key('f'))
	g.HandleEvent(key(' '))
	require.True(t, g.Board().Generated())
	draw(g, s)

	// the first click is always a zero
	assert.Equal(t, mines.CellState(0), g.Board().Cell(2, 2))
	assert.Equal(t, '.', []rune(line(s, gridTop+2))[4])
}

func TestNewGameKeys(t *testing.T) {
	g := newGame(t)

	g.HandleEvent(key('3'))
	assert.Equal(t, 20, g.Board().Size())
	assert.Equal(t, mines.Point{Row: 10, Col: 10}, g.Cursor())

	g.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	require.True(t, g.Board().Generated())

	g.HandleEvent(key('r'))
	assert.False(t, g.Board().Generated())
	assert.Equal(t, 20, g.Board().Size())

	g.HandleEvent(key('1'))
	assert.Equal(t, 5, g.Board().Size())
}

func TestMouse(t *testing.T) {
	g := newGame(t)

	g.HandleEvent(tcell.NewEventMouse(0, gridTop, tcell.Button2, tcell.ModNone))
	assert.Equal(t, mines.Flagged, g.Board().Cell(0, 0))
	assert.Equal(t, mines.Point{}, g.Cursor())

	g.HandleEvent(tcell.NewEventMouse(100, gridTop, tcell.Button1, tcell.ModNone))
	assert.False(t, g.Board().Generated(), "click outside the grid")

	g.HandleEvent(tcell.NewEventMouse(2*cellWidth, gridTop+2, tcell.Button1, tcell.ModNone))
	assert.True(t, g.Board().Generated())
	assert.Equal(t, mines.Point{Row: 2, Col: 2}, g.Cursor())
	assert.Equal(t, mines.Flagged, g.Board().Cell(0, 0))
}

func TestQuit(t *testing.T) {
	g := newGame(t)
	assert.False(t, g.HandleEvent(key('x')))
	assert.True(t, g.HandleEvent(key('q')))
	assert.True(t, g.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestDrawLostGame(t *testing.T) {
	s := newScreen(t)
	g := newGame(t)
	// a flag inside the safe zone keeps the first click from winning
	for _, r := range "khflj " {
		g.HandleEvent(key(r))
	}
	require.True(t, g.Board().Generated())
	g.Board().Forfeit()
	draw(g, s)

	assert.True(t, strings.HasPrefix(line(s, headerRow), "lost  mines left: 5  boom."))
	var shown int
	for r := range 5 {
		shown += strings.Count(line(s, gridTop+r), "*")
	}
	assert.Equal(t, 5, shown)
}

func TestRun(t *testing.T) {
	s := newScreen(t)
	g := newGame(t)

	s.InjectKey(tcell.KeyRune, 'f', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	require.NoError(t, Run(s, g))
	assert.Equal(t, mines.Flagged, g.Board().Cell(2, 2))
}
