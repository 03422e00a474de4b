package bot

import (
	"context"

	"github.com/mcoot/connectfour/internal/dependencies/random"
	"github.com/mcoot/connectfour/internal/model"
)

// RandomStrategy picks a uniformly random non-full column
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseColumn ignores depth and returns a random legal column
func (s *RandomStrategy) ChooseColumn(ctx context.Context, board *model.Board, player model.Cell, depth int) (int, error) {
	legal := board.LegalColumns()
	if len(legal) == 0 {
		return -1, model.ErrNoLegalMove
	}
	return legal[s.random.Intn(len(legal))], nil
}
