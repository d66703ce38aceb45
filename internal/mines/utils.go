package mines

import (
	"fmt"
	"iter"
)

type Point struct {
	Row, Col int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

var offsets = [8]Point{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors yields the in-bounds compass neighbors of p on a size×size
// board. Every neighborhood scan in the engine goes through here.
func Neighbors(p Point, size int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, d := range offsets {
			q := Point{p.Row + d.Row, p.Col + d.Col}
			if q.Row < 0 || q.Row >= size || q.Col < 0 || q.Col >= size {
				continue
			}
			if !yield(q) {
				return
			}
		}
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
