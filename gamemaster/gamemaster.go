package gamemaster

import "connect4/game"

// Update describes one move applied to the authoritative board.
type Update struct {
	GameID string    `json:"game_id"`
	Step   int       `json:"step"`
	Player game.Cell `json:"player"`
	Move   game.Move `json:"move"`
	Board  [][]int   `json:"board"`
	Hash   uint64    `json:"hash"`
	Winner game.Cell `json:"winner"` // 0 while undecided or on a draw
	Over   bool      `json:"over"`
}

// Observer is notified synchronously after every move.
type Observer interface {
	Notify(u Update)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(u Update)

func (f ObserverFunc) Notify(u Update) {
	f(u)
}
