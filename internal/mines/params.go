package mines

import (
	"fmt"
	"strings"
)

// MaxSize is the largest board side any game can be played on. It keeps
// Size*Size far from overflow and the grid allocation bounded.
const MaxSize = 1000

// Params configure a square board of Size×Size cells holding MineCount
// mines.
type Params struct {
	Size, MineCount int
}

func (p Params) Unpack() (size int, mineCount int) {
	return p.Size, p.MineCount
}

func (p Params) String() string {
	return fmt.Sprintf("%d:%d", p.Size, p.MineCount)
}

func (p Params) Validate() error {
	switch {
	case p.Size < 1:
		return ConfigurationError{p, "size must be at least 1"}
	case p.Size > MaxSize:
		return ConfigurationError{p, fmt.Sprintf("size must be at most %d", MaxSize)}
	case p.MineCount < 0:
		return ConfigurationError{p, "mine count must not be negative"}
	case p.MineCount >= p.Size*p.Size:
		return ConfigurationError{p, "at least one cell must be free of mines"}
	}
	return nil
}

func (p Params) InBounds(row, col int) bool {
	return 0 <= row && row < p.Size && 0 <= col && col < p.Size
}

// ParseParams reads params in the "size:mines" form produced by
// [Params.String].
func ParseParams(s string) (Params, error) {
	var p Params
	fields := strings.ReplaceAll(s, ":", " ")
	n, err := fmt.Sscanf(fields, "%d %d", &p.Size, &p.MineCount)
	if n != 2 || err != nil {
		return Params{}, fmt.Errorf(
			`invalid board params (s = "%s", n = %d, err = %w)`, s, n, err,
		)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Difficulty names one of the preset board configurations.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultyParams = [...]Params{
	Easy:   {Size: 5, MineCount: 5},
	Medium: {Size: 10, MineCount: 15},
	Hard:   {Size: 20, MineCount: 70},
}

var difficultyNames = [...]string{
	Easy:   "Easy",
	Medium: "Medium",
	Hard:   "Hard",
}

func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func (d Difficulty) Valid() bool {
	return Easy <= d && d <= Hard
}

func (d Difficulty) Params() Params {
	if !d.Valid() {
		return difficultyParams[Easy]
	}
	return difficultyParams[d]
}

func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

func ParseDifficulty(name string) (Difficulty, error) {
	for _, d := range Difficulties() {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", name)
}
