package mines

import (
	"github.com/sirupsen/logrus"
)

// generateMines places the board's mines, none of which is at first or
// within one cell of it. Runs once per board, on the first reveal.
func (b *Board) generateMines(first Point) {
	size, mineCount := b.params.Unpack()

	b.mines = make([]bool, size*size)
	b.generated = true

	/*
	 * Write down the list of possible mine locations. Cells next to the
	 * first click go to a reserve that is only used if the board is too
	 * small to fit every mine outside the safe zone.
	 */
	candidates := make([]int, 0, size*size)
	reserve := make([]int, 0, 8)
	for row := range size {
		for col := range size {
			switch {
			case row == first.Row && col == first.Col:
			case absDiff(first.Row, row) <= 1 && absDiff(first.Col, col) <= 1:
				reserve = append(reserve, b.index(row, col))
			default:
				candidates = append(candidates, b.index(row, col))
			}
		}
	}

	if len(candidates) < mineCount {
		Log.WithFields(logrus.Fields{
			"params":     b.params.String(),
			"first":      first.String(),
			"candidates": len(candidates),
		}).Warn("safe zone too large for mine count, relaxing it")

		b.rnd.Shuffle(len(reserve), func(i, j int) {
			reserve[i], reserve[j] = reserve[j], reserve[i]
		})
		candidates = append(candidates, reserve[:mineCount-len(candidates)]...)
	}

	/*
	 * Now pick mineCount off the list at random.
	 */
	k := len(candidates)
	for range mineCount {
		i := b.rnd.IntN(k)
		b.mines[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	Log.WithFields(logrus.Fields{
		"params": b.params.String(),
		"first":  first.String(),
	}).Debug("mines generated")
}
