package game

// Winner returns the token owning a four-in-a-row, if any.
func Winner(b *Board) (Cell, bool) {
	if CountRuns(b, Max, RunLength) > 0 {
		return Max, true
	}
	if CountRuns(b, Min, RunLength) > 0 {
		return Min, true
	}
	return Empty, false
}

// WinnerAt checks only the lines through (row, col), which is enough right
// after a token was dropped there.
func WinnerAt(b *Board, row, col int) (Cell, bool) {
	token := b.At(row, col)
	if token == Empty {
		return Empty, false
	}
	for _, d := range directions {
		n := 1 + b.stretch(row, col, d.dr, d.dc, token) + b.stretch(row, col, -d.dr, -d.dc, token)
		if n >= RunLength {
			return token, true
		}
	}
	return Empty, false
}

func (b *Board) stretch(row, col, dr, dc int, token Cell) int {
	n := 0
	for r, c := row+dr, col+dc; b.InBounds(r, c) && b.cells[r][c] == token; r, c = r+dr, c+dc {
		n++
	}
	return n
}

// Decided reports whether either player has four in a row.
func Decided(b *Board) bool {
	_, ok := Winner(b)
	return ok
}

// Draw reports a full board without a winner.
func Draw(b *Board) bool {
	return b.Full() && !Decided(b)
}

func GameOver(b *Board) bool {
	return Decided(b) || b.Full()
}
