package game

const (
	FourWeight   = 100
	ThreeWeight  = 10
	UrgentWeight = 50
)

// direction is a (row, col) step between consecutive cells of a run.
type direction struct{ dr, dc int }

var directions = []direction{
	{0, 1},  // Horizontal
	{1, 0},  // Vertical
	{1, 1},  // Down-right
	{1, -1}, // Down-left
}

// EvaluateRuns scores complete runs of four and three for both players:
// 100 per four-run and 10 per three-run, Max positive and Min negative.
// Whose turn it is plays no role.
func EvaluateRuns(b *Board) int {
	fours := CountRuns(b, Max, 4) - CountRuns(b, Min, 4)
	threes := CountRuns(b, Max, 3) - CountRuns(b, Min, 3)
	return FourWeight*fours + ThreeWeight*threes
}

// EvaluateWithThreats adds a weighted count of split threats (T T _ T) to
// EvaluateRuns.
func EvaluateWithThreats(b *Board) int {
	urgent := UrgentBlocks(b, Max) - UrgentBlocks(b, Min)
	return EvaluateRuns(b) + UrgentWeight*urgent
}

// CountRuns counts windows of the given length made entirely of token, over
// every window that fits on the board in all four directions. Overlapping
// windows are counted separately.
func CountRuns(b *Board, token Cell, length int) int {
	count := 0
	for _, d := range directions {
		rowStart, rowEnd := 0, b.Rows()-d.dr*(length-1)
		colStart, colEnd := 0, b.Cols()-d.dc*(length-1)
		if d.dc < 0 {
			colStart, colEnd = length-1, b.Cols()
		}
		for r := rowStart; r < rowEnd; r++ {
			for c := colStart; c < colEnd; c++ {
				if b.runOf(r, c, d, token, length) {
					count++
				}
			}
		}
	}
	return count
}

// runOf reports whether the length cells starting at (row, col) along d all
// hold token. The caller guarantees the window is in bounds.
func (b *Board) runOf(row, col int, d direction, token Cell, length int) bool {
	for i := 0; i < length; i++ {
		if b.cells[row+i*d.dr][col+i*d.dc] != token {
			return false
		}
	}
	return true
}

// UrgentBlocks counts the T T _ T pattern for token, anchored at every cell
// in all four directions. Patterns that would leave the board do not match.
func UrgentBlocks(b *Board, token Cell) int {
	count := 0
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			for _, d := range directions {
				if !b.InBounds(r+3*d.dr, c+3*d.dc) {
					continue
				}
				if b.cells[r][c] == token &&
					b.cells[r+d.dr][c+d.dc] == token &&
					b.cells[r+2*d.dr][c+2*d.dc] == Empty &&
					b.cells[r+3*d.dr][c+3*d.dc] == token {
					count++
				}
			}
		}
	}
	return count
}
