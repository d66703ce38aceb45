package mines

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Status is the outcome of a game so far. Only [Active] games accept moves.
type Status int8

const (
	Active Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// [Status] implements [encoding.TextUnmarshaler]
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{Active, Won, Lost} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// Board holds the state of one game. It is not safe for concurrent use.
//
// Out-of-range coordinates and calls made after the game has ended are
// ignored.
type Board struct {
	params    Params
	mines     []bool /* real mine points, nil until the first reveal */
	generated bool
	grid      Grid /* player knowledge */

	remaining    int /* flag budget shown to the player */
	unopenedSafe int
	status       Status

	rnd *rand.Rand
}

// NewBoard starts a game with p. r places the mines on the first reveal, so
// a seeded source makes the whole game reproducible.
func NewBoard(p Params, r *rand.Rand) (*Board, error) {
	b := &Board{rnd: r}
	if err := b.Reset(p); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset discards the current game and starts a fresh one with p. Mines are
// not placed until the first reveal.
func (b *Board) Reset(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	size, mineCount := p.Unpack()
	b.params = p
	b.mines = nil
	b.generated = false
	b.grid = repeat(Hidden, size*size)
	b.remaining = mineCount
	b.unopenedSafe = size*size - mineCount
	b.status = Active
	return nil
}

// Clone returns an independent copy of b sharing its random source.
func (b *Board) Clone() *Board {
	c := *b
	c.mines = slices.Clone(b.mines)
	c.grid = slices.Clone(b.grid)
	return &c
}

func (b *Board) ApplyDifficulty(d Difficulty) error {
	return b.Reset(d.Params())
}

func (b *Board) Params() Params { return b.params }
func (b *Board) Size() int { return b.params.Size }
func (b *Board) MineCount() int { return b.params.MineCount }
func (b *Board) RemainingMines() int { return b.remaining }
func (b *Board) UnopenedSafe() int { return b.unopenedSafe }
func (b *Board) Status() Status { return b.status }
func (b *Board) Generated() bool { return b.generated }
func (b *Board) InBounds(r, c int) bool { return b.params.InBounds(r, c) }

// Cell returns the display state of a cell, [Hidden] for out-of-range
// coordinates.
func (b *Board) Cell(row, col int) CellState {
	if !b.InBounds(row, col) {
		return Hidden
	}
	return b.grid[b.index(row, col)]
}

// CheckWin reports whether every safe cell has been opened.
func (b *Board) CheckWin() bool {
	return b.unopenedSafe == 0
}

func (b *Board) index(row, col int) int {
	return row*b.params.Size + col
}

func (b *Board) point(i int) Point {
	return Point{i / b.params.Size, i % b.params.Size}
}

func (b *Board) countAround(p Point, pred func(i int) bool) int {
	n := 0
	for q := range Neighbors(p, b.params.Size) {
		if pred(b.index(q.Row, q.Col)) {
			n++
		}
	}
	return n
}

func (b *Board) adjacentMines(p Point) int {
	return b.countAround(p, func(i int) bool { return b.mines[i] })
}

func (b *Board) adjacentFlags(p Point) int {
	return b.countAround(p, func(i int) bool { return b.grid[i] == Flagged })
}

// Reveal opens a cell. The first reveal of a board places the mines around
// it. Revealing an opened number whose flagged neighbors match it chords.
func (b *Board) Reveal(row, col int) {
	if b.status != Active || !b.InBounds(row, col) {
		return
	}
	p := Point{row, col}
	if !b.generated {
		b.generateMines(p)
	}

	switch s := b.grid[b.index(row, col)]; {
	case s.IsNumber():
		if int(s) == b.adjacentFlags(p) {
			b.chord(p)
		}
	case s == Hidden:
		b.open(p)
	}
}

// ToggleFlag flags or unflags a hidden cell. A new flag is refused once as
// many flags as mines have been placed.
func (b *Board) ToggleFlag(row, col int) {
	if b.status != Active || !b.InBounds(row, col) {
		return
	}
	i := b.index(row, col)
	switch b.grid[i] {
	case Flagged:
		b.grid[i] = Hidden
		b.remaining++
	case Hidden:
		if b.remaining > 0 {
			b.grid[i] = Flagged
			b.remaining--
		}
	}
}

// Chord opens every unflagged hidden neighbor of an opened number, provided
// the number of flagged neighbors equals it.
func (b *Board) Chord(row, col int) {
	if b.status != Active || !b.InBounds(row, col) {
		return
	}
	p := Point{row, col}
	s := b.grid[b.index(row, col)]
	if !s.IsNumber() || int(s) != b.adjacentFlags(p) {
		return
	}
	b.chord(p)
}

func (b *Board) chord(p Point) {
	for q := range Neighbors(p, b.params.Size) {
		if b.grid[b.index(q.Row, q.Col)] != Hidden {
			continue
		}
		b.open(q)
		if b.status != Active {
			return
		}
	}
}

// Forfeit ends an active game as lost and shows all mines.
func (b *Board) Forfeit() {
	if b.status != Active {
		return
	}
	b.status = Lost
	if b.generated {
		b.showMines()
	}
	Log.WithField("params", b.params.String()).Debug("game forfeited")
}

// open uncovers a hidden, unflagged cell. A mine ends the game; a zero
// floods its region through a work-list, each cell uncovered at most once.
func (b *Board) open(p Point) {
	i := b.index(p.Row, p.Col)
	if b.mines[i] {
		b.explode(i)
		return
	}

	var todo []Point
	if b.uncover(p) == 0 {
		todo = append(todo, p)
	}
	for len(todo) > 0 {
		q := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for n := range Neighbors(q, b.params.Size) {
			if b.grid[b.index(n.Row, n.Col)] != Hidden {
				continue
			}
			if b.uncover(n) == 0 {
				todo = append(todo, n)
			}
		}
	}

	if b.CheckWin() {
		b.status = Won
		Log.WithField("params", b.params.String()).Debug("game won")
	}
}

func (b *Board) uncover(p Point) CellState {
	v := CellState(b.adjacentMines(p))
	b.grid[b.index(p.Row, p.Col)] = v
	b.unopenedSafe--
	return v
}

func (b *Board) explode(i int) {
	b.status = Lost
	b.showMines()
	b.grid[i] = ExplodedMine
	Log.WithFields(logrus.Fields{
		"params": b.params.String(),
		"cell":   b.point(i).String(),
	}).Debug("game lost")
}

func (b *Board) showMines() {
	for i, mine := range b.mines {
		if mine {
			b.grid[i] = Mine
		}
	}
}
