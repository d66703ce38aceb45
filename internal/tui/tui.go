// Package tui plays a board in the terminal.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

const (
	headerRow = 0
	gridTop   = 2
	cellWidth = 2
)

const help = "hjkl/arrows move  space open  f flag  c chord  1-3 new  r reset  q quit"

var (
	styleDefault = tcell.StyleDefault
	styleHidden  = styleDefault.Foreground(tcell.ColorGray)
	styleFlag    = styleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleMine    = styleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)
	styleWon     = styleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLost    = styleDefault.Foreground(tcell.ColorRed).Bold(true)

	numberColors = [...]tcell.Color{
		tcell.ColorDefault,
		tcell.ColorBlue,
		tcell.ColorGreen,
		tcell.ColorRed,
		tcell.ColorNavy,
		tcell.ColorMaroon,
		tcell.ColorTeal,
		tcell.ColorBlack,
		tcell.ColorGray,
	}
)

// Game binds a board to a cursor and translates terminal events into moves.
type Game struct {
	board  *mines.Board
	cursor mines.Point
}

func New(b *mines.Board) *Game {
	return &Game{
		board:  b,
		cursor: mines.Point{Row: b.Size() / 2, Col: b.Size() / 2},
	}
}

func (g *Game) Board() *mines.Board { return g.board }

func (g *Game) Cursor() mines.Point { return g.cursor }

// Run draws the game and handles events until the player quits or the
// screen is finalized. s must already be initialized.
func Run(s tcell.Screen, g *Game) error {
	s.EnableMouse()
	s.Clear()
	for {
		g.Draw(s)
		s.Show()

		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.Sync()
			continue
		}
		if g.HandleEvent(ev) {
			return nil
		}
	}
}

// HandleEvent applies ev to the game. It reports whether the player asked to
// quit.
func (g *Game) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKey(ev)
	case *tcell.EventMouse:
		g.handleMouse(ev)
	}
	return false
}

func (g *Game) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		g.move(-1, 0)
	case tcell.KeyDown:
		g.move(1, 0)
	case tcell.KeyLeft:
		g.move(0, -1)
	case tcell.KeyRight:
		g.move(0, 1)
	case tcell.KeyEnter:
		g.board.Reveal(g.cursor.Row, g.cursor.Col)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'k':
			g.move(-1, 0)
		case 'j':
			g.move(1, 0)
		case 'h':
			g.move(0, -1)
		case 'l':
			g.move(0, 1)
		case ' ':
			g.board.Reveal(g.cursor.Row, g.cursor.Col)
		case 'f', 'F':
			g.board.ToggleFlag(g.cursor.Row, g.cursor.Col)
		case 'c', 'C':
			g.board.Chord(g.cursor.Row, g.cursor.Col)
		case '1':
			g.newGame(mines.Easy)
		case '2':
			g.newGame(mines.Medium)
		case '3':
			g.newGame(mines.Hard)
		case 'r', 'R':
			// current params were validated when they were applied
			_ = g.board.Reset(g.board.Params())
		}
	}
	return false
}

func (g *Game) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	row, col := y-gridTop, x/cellWidth
	if !g.board.InBounds(row, col) {
		return
	}
	switch ev.Buttons() {
	case tcell.Button1:
		g.cursor = mines.Point{Row: row, Col: col}
		g.board.Reveal(row, col)
	case tcell.Button2:
		g.cursor = mines.Point{Row: row, Col: col}
		g.board.ToggleFlag(row, col)
	case tcell.Button3:
		g.cursor = mines.Point{Row: row, Col: col}
		g.board.Chord(row, col)
	}
}

func (g *Game) move(dr, dc int) {
	p := mines.Point{Row: g.cursor.Row + dr, Col: g.cursor.Col + dc}
	if g.board.InBounds(p.Row, p.Col) {
		g.cursor = p
	}
}

func (g *Game) newGame(d mines.Difficulty) {
	if err := g.board.ApplyDifficulty(d); err != nil {
		return
	}
	g.cursor = mines.Point{Row: g.board.Size() / 2, Col: g.board.Size() / 2}
}

// Draw renders the header, the grid and the key help onto s.
func (g *Game) Draw(s tcell.Screen) {
	s.Clear()
	snap := g.board.Snapshot()

	header := fmt.Sprintf("%s  mines left: %d", snap.Status, snap.RemainingMines)
	headerStyle := styleDefault
	switch snap.Status {
	case mines.Won:
		header += "  you won! r to play again"
		headerStyle = styleWon
	case mines.Lost:
		header += "  boom. r to play again"
		headerStyle = styleLost
	}
	drawText(s, 0, headerRow, headerStyle, header)

	for r := range snap.Size {
		for c := range snap.Size {
			ch, style := glyph(snap.Cell(r, c))
			if g.cursor == (mines.Point{Row: r, Col: c}) {
				style = style.Reverse(true)
			}
			s.SetContent(c*cellWidth, gridTop+r, ch, nil, style)
		}
	}

	drawText(s, 0, gridTop+snap.Size+1, styleHidden, help)
}

func glyph(cell mines.CellState) (rune, tcell.Style) {
	switch {
	case cell == mines.Hidden:
		return '-', styleHidden
	case cell == mines.Flagged:
		return 'F', styleFlag
	case cell == mines.Mine:
		return '*', styleMine
	case cell == mines.ExplodedMine:
		return 'X', styleMine.Bold(true)
	case cell == 0:
		return '.', styleDefault
	case cell.IsNumber():
		return rune('0' + cell), styleDefault.Foreground(numberColors[cell])
	default:
		return '!', styleDefault
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
