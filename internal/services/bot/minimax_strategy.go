package bot

import (
	"context"

	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/search"
)

// MinimaxStrategy delegates to the alpha-beta search engine
type MinimaxStrategy struct {
	engine *search.Engine
}

// NewMinimaxStrategy creates a new MinimaxStrategy
func NewMinimaxStrategy(engine *search.Engine) *MinimaxStrategy {
	return &MinimaxStrategy{engine: engine}
}

// ChooseColumn returns the engine's best column at the given depth
func (s *MinimaxStrategy) ChooseColumn(ctx context.Context, board *model.Board, player model.Cell, depth int) (int, error) {
	result, err := s.engine.BestMove(ctx, board, player, depth)
	if err != nil {
		return -1, err
	}
	return result.Move.Col, nil
}

// Strategies returns the registry of built-in strategies keyed by name
func Strategies(minimax *MinimaxStrategy, random *RandomStrategy) map[string]Strategy {
	return map[string]Strategy{
		model.BotStrategyMinimax: minimax,
		model.BotStrategyRandom:  random,
	}
}
