package gamemaster

import (
	"errors"
	"fmt"

	"connect4/game"

	"github.com/google/uuid"
)

var ErrGameOver = errors.New("game is over")

// Game owns the authoritative board between turns and tracks whose turn it
// is and who won. Agents only ever receive copies.
type Game struct {
	id        string
	board     *game.Board
	turn      game.Cell
	winner    game.Cell
	history   []game.Move
	observers []Observer
}

// NewGame starts an empty game with first to move.
func NewGame(rows, cols int, first game.Cell) *Game {
	if first != game.Min && first != game.Max {
		panic("first player must be Min or Max")
	}
	return &Game{
		id:    uuid.NewString(),
		board: game.NewBoard(rows, cols),
		turn:  first,
	}
}

func (g *Game) ID() string {
	return g.id
}

// SetCurrentState replaces the board, e.g. with a loaded test case, and
// hands the move to toMove.
func (g *Game) SetCurrentState(b *game.Board, toMove game.Cell) error {
	if toMove != game.Min && toMove != game.Max {
		return fmt.Errorf("player %d: %w", toMove, game.ErrInvalidCell)
	}
	g.board = b.Copy()
	g.turn = toMove
	g.winner, _ = game.Winner(g.board)
	g.history = nil
	return nil
}

// GetCurrentState returns a copy of the authoritative board.
func (g *Game) GetCurrentState() *game.Board {
	return g.board.Copy()
}

// Winner returns the winning token once the game is decided.
func (g *Game) Winner() (game.Cell, bool) {
	return g.winner, g.winner != game.Empty
}

func (g *Game) Over() bool {
	return g.winner != game.Empty || g.board.Full()
}

func (g *Game) Turn() game.Cell {
	return g.turn
}

// Moves returns the number of moves played since the game or the loaded
// state started.
func (g *Game) Moves() int {
	return len(g.history)
}

func (g *Game) History() []game.Move {
	history := make([]game.Move, len(g.history))
	copy(history, g.history)
	return history
}

func (g *Game) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
}

// Play drops the current player's token into col.
func (g *Game) Play(col game.Move) error {
	if g.Over() {
		return ErrGameOver
	}
	next, row, err := g.board.Drop(col, g.turn)
	if err != nil {
		return fmt.Errorf("player %d: %w", g.turn, err)
	}

	player := g.turn
	g.board = next
	g.history = append(g.history, col)
	if winner, ok := game.WinnerAt(next, row, int(col)); ok {
		g.winner = winner
	}
	g.turn = g.turn.Opponent()

	u := Update{
		GameID: g.id,
		Step:   len(g.history),
		Player: player,
		Move:   col,
		Board:  next.Grid(),
		Hash:   uint64(next.Hash()),
		Winner: g.winner,
		Over:   g.Over(),
	}
	for _, o := range g.observers {
		o.Notify(u)
	}
	return nil
}
