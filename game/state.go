package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

type StateHash uint64

// Board is a snapshot of the grid. Row 0 is the top row. Boards handed to
// the searcher are never mutated: Play always returns a fresh copy.
type Board struct {
	cells [][]Cell
}

// NewBoard returns an empty board with the given dimensions.
func NewBoard(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("invalid board dimensions %dx%d", rows, cols))
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Board{cells: cells}
}

// NewStandardBoard returns an empty 6x7 board.
func NewStandardBoard() *Board {
	return NewBoard(Rows, Cols)
}

// FromGrid builds a board from its interchange form, validating cell values
// and gravity.
func FromGrid(grid [][]int) (*Board, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("empty grid: %w", ErrShape)
	}
	b := NewBoard(len(grid), len(grid[0]))
	for r, row := range grid {
		if len(row) != b.Cols() {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", r, len(row), b.Cols(), ErrShape)
		}
		for c, v := range row {
			cell := Cell(v)
			if !cell.Valid() {
				return nil, fmt.Errorf("cell (%d,%d)=%d: %w", r, c, v, ErrInvalidCell)
			}
			b.cells[r][c] = cell
		}
	}
	for c := 0; c < b.Cols(); c++ {
		for r := 1; r < b.Rows(); r++ {
			if b.cells[r-1][c] != Empty && b.cells[r][c] == Empty {
				return nil, fmt.Errorf("column %d row %d: %w", c, r-1, ErrGravity)
			}
		}
	}
	return b, nil
}

func (b *Board) Rows() int { return len(b.cells) }
func (b *Board) Cols() int { return len(b.cells[0]) }

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows() && col >= 0 && col < b.Cols()
}

// At returns the cell at (row, col), or Empty when out of bounds.
func (b *Board) At(row, col int) Cell {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[row][col]
}

// EmptyInColumn counts the empty cells of a column.
func (b *Board) EmptyInColumn(col int) int {
	count := 0
	for r := 0; r < b.Rows() && b.cells[r][col] == Empty; r++ {
		count++
	}
	return count
}

// Full reports whether no empty cell remains anywhere on the board.
func (b *Board) Full() bool {
	for _, cell := range b.cells[0] {
		if cell == Empty {
			return false
		}
	}
	return true
}

// Count returns the number of tokens placed by each player.
func (b *Board) Count(token Cell) int {
	count := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == token {
				count++
			}
		}
	}
	return count
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	cells := make([][]Cell, len(b.cells))
	for r, row := range b.cells {
		cells[r] = make([]Cell, len(row))
		copy(cells[r], row)
	}
	return &Board{cells: cells}
}

// Play drops token into col and returns the resulting board. The receiver is
// left untouched. Callers must only pass columns from LegalMoves or
// OrderedMoves: a full or out-of-range column panics.
func (b *Board) Play(col Move, token Cell) *Board {
	next, _, err := b.Drop(col, token)
	if err != nil {
		panic(fmt.Sprintf("illegal move %d: %v", col, err))
	}
	return next
}

// Drop is the checked variant of Play. It also returns the row the token
// landed in.
func (b *Board) Drop(col Move, token Cell) (*Board, int, error) {
	if token != Min && token != Max {
		return nil, -1, fmt.Errorf("token %d: %w", token, ErrInvalidCell)
	}
	if int(col) < 0 || int(col) >= b.Cols() {
		return nil, -1, fmt.Errorf("column %d: %w", col, ErrColumnOutOfRange)
	}
	next := b.Copy()
	for r := next.Rows() - 1; r >= 0; r-- {
		if next.cells[r][col] == Empty {
			next.cells[r][col] = token
			return next, r, nil
		}
	}
	return nil, -1, fmt.Errorf("column %d: %w", col, ErrColumnFull)
}

// Mirror swaps the two tokens, so a searcher that always plays Max can be
// used on behalf of Min.
func (b *Board) Mirror() *Board {
	next := b.Copy()
	for _, row := range next.cells {
		for c, cell := range row {
			row[c] = cell.Opponent()
		}
	}
	return next
}

// Grid returns the interchange form of the board.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.Rows())
	for r, row := range b.cells {
		grid[r] = make([]int, len(row))
		for c, cell := range row {
			grid[r][c] = int(cell)
		}
	}
	return grid
}

// Hash identifies a position in logs and update streams.
func (b *Board) Hash() StateHash {
	h := fnv.New64a()
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(b.Rows())<<32|uint64(b.Cols()))
	h.Write(buf)
	for _, row := range b.cells {
		for _, cell := range row {
			h.Write([]byte{byte(cell)})
		}
	}
	return StateHash(h.Sum64())
}

func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.cells {
		for c, cell := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cell.String())
		}
		sb.WriteByte('\n')
	}
	for c := 0; c < b.Cols(); c++ {
		if c > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", c%10)
	}
	sb.WriteByte('\n')
	return sb.String()
}
