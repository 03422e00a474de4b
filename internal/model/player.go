package model

import (
	"fmt"
	"strings"
)

// Cell is the state of a single board cell
type Cell int

const (
	Empty   Cell = 0
	PlayerA Cell = 1
	PlayerB Cell = 2
)

// IsPlayer returns true if the cell holds one of the two players
func (c Cell) IsPlayer() bool {
	return c == PlayerA || c == PlayerB
}

// Opponent returns the other player. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

// Symbol returns the single character used when rendering the cell
func (c Cell) Symbol() byte {
	switch c {
	case PlayerA:
		return 'X'
	case PlayerB:
		return 'O'
	default:
		return '.'
	}
}

func (c Cell) String() string {
	switch c {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "empty"
	}
}

// ParsePlayer accepts "A"/"B" (or the rendering symbols "X"/"O")
func ParsePlayer(s string) (Cell, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "X", "1":
		return PlayerA, nil
	case "B", "O", "2":
		return PlayerB, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
	}
}

func cellFromSymbol(b byte) (Cell, bool) {
	switch b {
	case '.':
		return Empty, true
	case 'X', 'x':
		return PlayerA, true
	case 'O', 'o':
		return PlayerB, true
	default:
		return Empty, false
	}
}
