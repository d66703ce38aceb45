// Package command implements the line-based move protocol spoken by the
// batch endpoint and the websocket connection.
//
//	g          // fetch state, no move
//	o row col  // open (reveal) a cell
//	f row col  // toggle a flag
//	c row col  // chord around a cell
//	n name     // new game with a named difficulty
//	p size:n   // new game with custom params
//	q          // forfeit
package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	ErrUnknown  = errors.New("unknown command")
	ErrArity    = errors.New("invalid number of arguments")
	ErrTooLarge = errors.New("board size exceeds maximum")
)

// Limits bound the boards a command may start. A zero MaxSize leaves only
// the engine's own bound.
type Limits struct {
	MaxSize int
}

func (l Limits) check(p mines.Params) error {
	if l.MaxSize > 0 && p.Size > l.MaxSize {
		return fmt.Errorf("%w: size %d, maximum %d", ErrTooLarge, p.Size, l.MaxSize)
	}
	return nil
}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
	"n": 1,
	"p": 1,
	"q": 0,
}

// Lines yields the pieces of s separated by newlines, with their index.
func Lines(s string) iter.Seq2[int, string] {
	return byPiece(s, "\n")
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parsePoint(b *mines.Board, twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		return 0, 0, errors.New("row must be an int")
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		return 0, 0, errors.New("col must be an int")
	}
	if !b.InBounds(row, col) {
		return 0, 0, fmt.Errorf("%w: %d:%d", mines.ErrOutOfRange, row, col)
	}
	return row, col, nil
}

// Execute applies a single command to b.
func Execute(b *mines.Board, c string) error {
	return Limits{}.Execute(b, c)
}

// Execute applies a single command to b. New games larger than the limit
// are refused before the board is touched.
func (l Limits) Execute(b *mines.Board, c string) error {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return ErrUnknown
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknown, parts[0])
	}
	if nargs != len(parts)-1 {
		return ErrArity
	}

	switch parts[0] {
	case "g":
		return nil
	case "o", "f", "c":
		row, col, err := parsePoint(b, parts[1:])
		if err != nil {
			return err
		}
		switch parts[0] {
		case "o":
			b.Reveal(row, col)
		case "f":
			b.ToggleFlag(row, col)
		case "c":
			b.Chord(row, col)
		}
		return nil
	case "n":
		d, err := mines.ParseDifficulty(parts[1])
		if err != nil {
			return err
		}
		if err := l.check(d.Params()); err != nil {
			return err
		}
		return b.ApplyDifficulty(d)
	case "p":
		p, err := mines.ParseParams(parts[1])
		if err != nil {
			return err
		}
		if err := l.check(p); err != nil {
			return err
		}
		return b.Reset(p)
	case "q":
		b.Forfeit()
		return nil
	}
	return ErrUnknown
}

// LineError reports the line of a batch a command failed on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ExecuteBatch runs newline-separated commands in order, blank lines
// skipped. If any command fails, none of the batch is applied to b and the
// error is a [*LineError].
func ExecuteBatch(b *mines.Board, batch string) error {
	return Limits{}.ExecuteBatch(b, batch)
}

// ExecuteBatch is [ExecuteBatch] under l.
func (l Limits) ExecuteBatch(b *mines.Board, batch string) error {
	work := b.Clone()
	for i, line := range Lines(strings.TrimSpace(batch)) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := l.Execute(work, line); err != nil {
			return &LineError{Line: i, Err: err}
		}
	}
	*b = *work
	return nil
}
