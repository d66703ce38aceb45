package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/tui"
)

var (
	difficulty string
	params     string
)

func init() {
	flag.StringVar(&difficulty, "difficulty", "easy", "easy, medium or hard")
	flag.StringVar(&params, "params", "", "custom board as size:mines, overrides -difficulty")
}

func main() {
	flag.Parse()

	// the terminal belongs to the board
	mines.Log.SetOutput(io.Discard)

	p, err := boardParams()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rnd := rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
	b, err := mines.NewBoard(p, rnd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		logrus.Fatal("unable to create screen: ", err)
	}
	if err := s.Init(); err != nil {
		logrus.Fatal("unable to init screen: ", err)
	}
	defer s.Fini()

	if err := tui.Run(s, tui.New(b)); err != nil {
		s.Fini()
		logrus.Fatal(err)
	}
}

func boardParams() (mines.Params, error) {
	if params != "" {
		return mines.ParseParams(params)
	}
	d, err := mines.ParseDifficulty(difficulty)
	if err != nil {
		return mines.Params{}, err
	}
	return d.Params(), nil
}
