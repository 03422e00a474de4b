package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// DefaultRows is the standard board height
	DefaultRows = 6
	// DefaultCols is the standard board width
	DefaultCols = 7
	// WinLength is the number of aligned tokens needed to win
	WinLength = 4
)

// Direction is a (row, col) step used to walk a line of cells
type Direction struct {
	DRow int
	DCol int
}

// Directions lists the four line orientations that can hold a win
var Directions = [4]Direction{
	{DRow: 0, DCol: 1},  // horizontal
	{DRow: 1, DCol: 0},  // vertical
	{DRow: 1, DCol: 1},  // diagonal rising to the right
	{DRow: -1, DCol: 1}, // diagonal falling to the right
}

// Window is a run of WinLength consecutive cells along one direction
type Window [WinLength]Cell

// Board is a rows x cols grid with gravity: tokens stack from row 0 (the bottom) upward.
// The board has no notion of whose turn it is.
type Board struct {
	rows    int
	cols    int
	cells   []Cell // row-major, cells[row*cols+col]
	heights []int  // number of tokens in each column
}

// NewBoard creates an empty board of the given size
func NewBoard(rows, cols int) (*Board, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Board{
		rows:    rows,
		cols:    cols,
		cells:   make([]Cell, rows*cols),
		heights: make([]int, cols),
	}, nil
}

// NewDefaultBoard creates an empty 6x7 board
func NewDefaultBoard() *Board {
	b, _ := NewBoard(DefaultRows, DefaultCols)
	return b
}

// Rows returns the board height
func (b *Board) Rows() int { return b.rows }

// Cols returns the board width
func (b *Board) Cols() int { return b.cols }

// IsValidColumn returns true if the column index is on the board
func (b *Board) IsValidColumn(col int) bool {
	return col >= 0 && col < b.cols
}

// InBounds returns true if the cell is on the board
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// Get returns the cell at (row, col), or Empty when off the board
func (b *Board) Get(row, col int) Cell {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[row*b.cols+col]
}

// Height returns how many tokens are stacked in the column
func (b *Board) Height(col int) int {
	if !b.IsValidColumn(col) {
		return 0
	}
	return b.heights[col]
}

// IsColumnFull returns true if the column's top cell is occupied
func (b *Board) IsColumnFull(col int) bool {
	return b.Height(col) >= b.rows
}

// IsFull returns true if no empty cell remains
func (b *Board) IsFull() bool {
	for col := 0; col < b.cols; col++ {
		if b.heights[col] < b.rows {
			return false
		}
	}
	return true
}

// LegalColumns returns every column that still accepts a token, left to right
func (b *Board) LegalColumns() []int {
	var cols []int
	for col := 0; col < b.cols; col++ {
		if b.heights[col] < b.rows {
			cols = append(cols, col)
		}
	}
	return cols
}

// Drop places the player's token in the lowest empty cell of the column
// and returns the row it landed in. The board is unchanged on error.
func (b *Board) Drop(col int, player Cell) (int, error) {
	if !b.IsValidColumn(col) {
		return -1, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidColumn, col, b.cols)
	}
	if !player.IsPlayer() {
		return -1, fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
	row := b.heights[col]
	if row >= b.rows {
		return -1, ErrColumnFull
	}
	b.cells[row*b.cols+col] = player
	b.heights[col]++
	return row, nil
}

// UndoTop removes the topmost token of the column.
// Returns false if the column was already empty.
func (b *Board) UndoTop(col int) (bool, error) {
	if !b.IsValidColumn(col) {
		return false, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidColumn, col, b.cols)
	}
	if b.heights[col] == 0 {
		return false, nil
	}
	b.heights[col]--
	b.cells[b.heights[col]*b.cols+col] = Empty
	return true, nil
}

// ForEachWindow calls fn for every run of WinLength cells in all four directions.
// startRow/startCol identify the first cell of the run.
func (b *Board) ForEachWindow(fn func(w Window, startRow, startCol int, dir Direction)) {
	for _, dir := range Directions {
		for row := 0; row < b.rows; row++ {
			for col := 0; col < b.cols; col++ {
				endRow := row + dir.DRow*(WinLength-1)
				endCol := col + dir.DCol*(WinLength-1)
				if !b.InBounds(endRow, endCol) {
					continue
				}
				var w Window
				for i := 0; i < WinLength; i++ {
					w[i] = b.cells[(row+dir.DRow*i)*b.cols+col+dir.DCol*i]
				}
				fn(w, row, col, dir)
			}
		}
	}
}

// CheckOutcome reports a win, a draw or an ongoing game. It never mutates the board.
func (b *Board) CheckOutcome() Outcome {
	for _, dir := range Directions {
		for row := 0; row < b.rows; row++ {
			for col := 0; col < b.cols; col++ {
				if winner := b.lineOwner(row, col, dir); winner != Empty {
					return WinFor(winner)
				}
			}
		}
	}
	if b.IsFull() {
		return Draw()
	}
	return Ongoing()
}

// lineOwner returns the player holding all WinLength cells starting at (row, col), if any
func (b *Board) lineOwner(row, col int, dir Direction) Cell {
	if !b.InBounds(row+dir.DRow*(WinLength-1), col+dir.DCol*(WinLength-1)) {
		return Empty
	}
	first := b.cells[row*b.cols+col]
	if first == Empty {
		return Empty
	}
	for i := 1; i < WinLength; i++ {
		if b.cells[(row+dir.DRow*i)*b.cols+col+dir.DCol*i] != first {
			return Empty
		}
	}
	return first
}

// Clone returns an independent deep copy
func (b *Board) Clone() *Board {
	c := &Board{
		rows:    b.rows,
		cols:    b.cols,
		cells:   make([]Cell, len(b.cells)),
		heights: make([]int, len(b.heights)),
	}
	copy(c.cells, b.cells)
	copy(c.heights, b.heights)
	return c
}

// Equal returns true if both boards have the same size and contents
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the board top row first, one line per row
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.cols; col++ {
			sb.WriteByte(b.cells[row*b.cols+col].Symbol())
		}
		if row > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard reads the String form back into a board.
// Blank lines and spaces are ignored; '/' may also separate rows.
func ParseBoard(text string) (*Board, error) {
	text = strings.ReplaceAll(text, "/", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty board text", ErrInvalidDimensions)
	}

	rows, cols := len(lines), len(lines[0])
	grid := make([][]Cell, rows)
	for i, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, i+1, len(line), cols)
		}
		row := rows - 1 - i
		grid[row] = make([]Cell, cols)
		for col := 0; col < cols; col++ {
			cell, ok := cellFromSymbol(line[col])
			if !ok {
				return nil, fmt.Errorf("%w: unexpected symbol %q", ErrInvalidPlayer, line[col])
			}
			grid[row][col] = cell
		}
	}
	return boardFromGrid(grid)
}

// boardFromGrid builds a board from cells indexed [row][col] with row 0 at the bottom
func boardFromGrid(grid [][]Cell) (*Board, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}
	b, err := NewBoard(len(grid), len(grid[0]))
	if err != nil {
		return nil, err
	}
	for row, cells := range grid {
		if len(cells) != b.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, row, len(cells), b.cols)
		}
		for col, cell := range cells {
			if cell != Empty && !cell.IsPlayer() {
				return nil, fmt.Errorf("%w: %d", ErrInvalidPlayer, cell)
			}
			b.cells[row*b.cols+col] = cell
		}
	}
	for col := 0; col < b.cols; col++ {
		height := 0
		for height < b.rows && b.cells[height*b.cols+col] != Empty {
			height++
		}
		for row := height; row < b.rows; row++ {
			if b.cells[row*b.cols+col] != Empty {
				return nil, fmt.Errorf("%w: column %d", ErrGravityViolation, col)
			}
		}
		b.heights[col] = height
	}
	return b, nil
}

type boardJSON struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Cell `json:"cells"` // [row][col], row 0 at the bottom
}

// MarshalJSON encodes the board as rows of cells, bottom row first
func (b *Board) MarshalJSON() ([]byte, error) {
	grid := make([][]Cell, b.rows)
	for row := range grid {
		grid[row] = make([]Cell, b.cols)
		copy(grid[row], b.cells[row*b.cols:(row+1)*b.cols])
	}
	return json.Marshal(boardJSON{Rows: b.rows, Cols: b.cols, Cells: grid})
}

// UnmarshalJSON decodes and validates a board
func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Cells) != raw.Rows {
		return fmt.Errorf("%w: %d rows declared, %d present", ErrInvalidDimensions, raw.Rows, len(raw.Cells))
	}
	decoded, err := boardFromGrid(raw.Cells)
	if err != nil {
		return err
	}
	if decoded.cols != raw.Cols {
		return fmt.Errorf("%w: %d cols declared, %d present", ErrInvalidDimensions, raw.Cols, decoded.cols)
	}
	*b = *decoded
	return nil
}
