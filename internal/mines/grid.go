package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Hidden       CellState = -2
	Flagged      CellState = -1
	ExplodedMine CellState = 65
	Mine         CellState = 67
	// 0-8 for an opened cell with given number of mined neighbors
)

func (s CellState) IsNumber() bool {
	return 0 <= s && s <= 8
}

// IsMine reports whether the cell shows a mine. Only happens once the game
// is lost.
func (s CellState) IsMine() bool {
	return s == Mine || s == ExplodedMine
}

func (s CellState) String() string {
	switch {
	case s == Hidden:
		return "-"
	case s == Flagged:
		return "F"
	case s == Mine:
		return "*"
	case s == ExplodedMine:
		return "X"
	case s.IsNumber():
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) Format(size int) string {
	if size <= 0 {
		return ""
	}
	var b strings.Builder
	for row := range len(g) / size {
		for col := range size {
			if col > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, g[row*size+col].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func repeat[T any](v T, n int) []T {
	if n <= 0 {
		return nil
	}
	s := make([]T, n)
	for i := range s {
		s[i] = v
	}
	return s
}
