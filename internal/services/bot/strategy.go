package bot

import (
	"context"

	"github.com/mcoot/connectfour/internal/model"
)

// Strategy defines how a computer player chooses a column
type Strategy interface {
	// ChooseColumn selects a legal column for player. The board must be left unchanged.
	ChooseColumn(ctx context.Context, board *model.Board, player model.Cell, depth int) (int, error)
}
