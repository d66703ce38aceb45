package mines

import "slices"

// Snapshot is a copy of everything a renderer needs to draw a board. It
// never exposes unrevealed mines.
type Snapshot struct {
	Size           int    `json:"size"`
	MineCount      int    `json:"mine_count"`
	Grid           Grid   `json:"grid"`
	RemainingMines int    `json:"remaining_mines"`
	UnopenedSafe   int    `json:"unopened_safe"`
	Status         Status `json:"status"`
}

func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Size:           b.params.Size,
		MineCount:      b.params.MineCount,
		Grid:           slices.Clone(b.grid),
		RemainingMines: b.remaining,
		UnopenedSafe:   b.unopenedSafe,
		Status:         b.status,
	}
}

func (s Snapshot) Cell(row, col int) CellState {
	if row < 0 || row >= s.Size || col < 0 || col >= s.Size {
		return Hidden
	}
	return s.Grid[row*s.Size+col]
}

func (s Snapshot) String() string {
	return s.Grid.Format(s.Size)
}
