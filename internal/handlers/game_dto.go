package handlers

import (
	"fmt"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

// GameParamsDTO selects a board either by difficulty name or by explicit
// size and mine count. With neither, the easy preset is used.
type GameParamsDTO struct {
	Difficulty string `schema:"difficulty"`
	Size       int    `schema:"size"`
	MineCount  int    `schema:"mine_count"`
}

func ParseGameParams(src map[string][]string, maxSize int) (mines.Params, error) {
	var dto GameParamsDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return mines.Params{}, err
	}
	var p mines.Params
	switch {
	case dto.Difficulty != "":
		d, err := mines.ParseDifficulty(dto.Difficulty)
		if err != nil {
			return mines.Params{}, err
		}
		p = d.Params()
	case dto.Size != 0:
		p = mines.Params{Size: dto.Size, MineCount: dto.MineCount}
	default:
		p = mines.Easy.Params()
	}
	if maxSize > 0 && p.Size > maxSize {
		return mines.Params{}, fmt.Errorf("size %d exceeds maximum of %d", p.Size, maxSize)
	}
	return p, nil
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type NewGameDTO struct {
	Token   string       `json:"token"`
	Session session.View `json:"session"`
}

type DifficultyDTO struct {
	Name      string `json:"name"`
	Size      int    `json:"size"`
	MineCount int    `json:"mine_count"`
}

func difficultyDTOs() []DifficultyDTO {
	dtos := make([]DifficultyDTO, 0, len(mines.Difficulties()))
	for _, d := range mines.Difficulties() {
		p := d.Params()
		dtos = append(dtos, DifficultyDTO{
			Name: d.String(), Size: p.Size, MineCount: p.MineCount,
		})
	}
	return dtos
}
