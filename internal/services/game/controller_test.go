package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/connectfour/internal/dependencies/mocks"
	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/bot"
	"github.com/mcoot/connectfour/internal/services/search"
	"github.com/mcoot/connectfour/internal/storage/memory"
	"github.com/mcoot/connectfour/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()

	engine := search.New(search.DefaultConfig(), s.random, testutil.NopLogger())
	strategies := bot.Strategies(bot.NewMinimaxStrategy(engine), bot.NewRandomStrategy(s.random))

	s.controller = NewController(s.storage, strategies, DefaultConfig(), s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) createGame(gc GameConfig) *model.Game {
	s.random.QueueString("GAME12345678")
	game, err := s.controller.CreateGame(s.ctx, gc)
	s.Require().NoError(err)
	return game
}

func (s *ControllerSuite) playHuman(id model.GameID, cols ...int) {
	for _, col := range cols {
		_, err := s.controller.ApplyHumanMove(s.ctx, id, col)
		s.Require().NoError(err, "col %d", col)
	}
}

// CreateGame tests

func (s *ControllerSuite) TestCreateGameDefaults() {
	game := s.createGame(GameConfig{})

	s.Equal(model.GameID("GAME12345678"), game.ID)
	s.Equal(model.GameTypePlayerVsAI, game.Type)
	s.Equal(model.GameStateInProgress, game.State)
	s.Equal(model.PlayerA, game.ToMove)
	s.Equal(model.PlayerA, game.HumanPlays)
	s.Equal(4, game.Depth)
	s.Equal(model.BotStrategyMinimax, game.BotStrategy)
	s.Equal(model.DefaultRows, game.Board.Rows())
	s.Equal(model.DefaultCols, game.Board.Cols())
	s.Nil(game.LastMove)
	s.Equal(s.clock.Now(), game.CreatedAt)

	stored, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.ID, stored.ID)
}

func (s *ControllerSuite) TestCreateGameCustomBoard() {
	game := s.createGame(GameConfig{Type: model.GameTypePlayerVsPlayer, Rows: 4, Cols: 5, Depth: 2})

	s.Equal(4, game.Board.Rows())
	s.Equal(5, game.Board.Cols())
	s.Equal(2, game.Depth)
}

func (s *ControllerSuite) TestCreateGameRejectsInvalidType() {
	_, err := s.controller.CreateGame(s.ctx, GameConfig{Type: "chess"})
	s.ErrorIs(err, model.ErrInvalidGameType)
}

func (s *ControllerSuite) TestCreateGameRejectsNegativeDepth() {
	_, err := s.controller.CreateGame(s.ctx, GameConfig{Depth: -1})
	s.ErrorIs(err, model.ErrInvalidDepth)
}

func (s *ControllerSuite) TestCreateGameRejectsUnknownStrategy() {
	_, err := s.controller.CreateGame(s.ctx, GameConfig{BotStrategy: "oracle"})
	s.ErrorIs(err, model.ErrUnknownStrategy)
}

func (s *ControllerSuite) TestCreateGameRejectsBadDimensions() {
	_, err := s.controller.CreateGame(s.ctx, GameConfig{Rows: -2})
	s.ErrorIs(err, model.ErrInvalidDimensions)
}

// ApplyHumanMove tests

func (s *ControllerSuite) TestApplyHumanMoveAdvancesTurn() {
	game := s.createGame(GameConfig{Type: model.GameTypePlayerVsPlayer})
	s.clock.Advance(time.Minute)

	outcome, err := s.controller.ApplyHumanMove(s.ctx, game.ID, 3)
	s.Require().NoError(err)
	s.Equal(model.Ongoing(), outcome)

	game, err = s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerB, game.ToMove)
	s.Equal(1, game.MoveCount)
	s.Equal(&model.Move{Row: 0, Col: 3, Player: model.PlayerA}, game.LastMove)
	s.Equal(model.PlayerA, game.Board.Get(0, 3))
	s.Equal(s.clock.Now(), game.UpdatedAt)
}

func (s *ControllerSuite) TestApplyHumanMoveInvalidColumnLeavesStateUnchanged() {
	game := s.createGame(GameConfig{Type: model.GameTypePlayerVsPlayer})
	before := game.Board.Clone()

	_, err := s.controller.ApplyHumanMove(s.ctx, game.ID, 7)
	s.ErrorIs(err, model.ErrInvalidColumn)

	_, err = s.controller.ApplyHumanMove(s.ctx, game.ID, -1)
	s.ErrorIs(err, model.ErrInvalidColumn)

	game, err = s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.True(game.Board.Equal(before))
	s.Equal(model.PlayerA, game.ToMove)
	s.Equal(0, game.MoveCount)
}

func (s *ControllerSuite) TestApplyHumanMoveFullColumn() {
	game := s.createGame(GameConfig{Type: model.GameTypePlayerVsPlayer, Rows: 2})
	s.playHuman(game.ID, 0, 0)

	_, err := s.controller.ApplyHumanMove(s.ctx, game.ID, 0)
	s.ErrorIs(err, model.ErrColumnFull)

	game, err = s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerA, game.ToMove)
	s.Equal(2, game.MoveCount)
}

func (s *ControllerSuite) TestApplyHumanMoveOnComputerTurn() {
	game := s.createGame(GameConfig{HumanPlays: model.PlayerB})

	_, err := s.controller.ApplyHumanMove(s.ctx, game.ID, 3)
	s.ErrorIs(err, model.ErrNotPlayerTurn)
}

func (s *ControllerSuite) TestApplyHumanMoveDetectsWin() {
	game := s.createGame(GameConfig{Type: model.GameTypePlayerVsPlayer})
	s.playHuman(game.ID, 0, 6, 1, 6, 2, 6)

	outcome, err := s.controller.ApplyHumanMove(s.ctx, game.ID, 3)
	s.Require().NoError(err)
	s.Equal(model.WinFor(model.PlayerA), outcome)

	game, err = s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStateWon, game.State)
	s.Equal(model.PlayerA, game.Winner)
	s.True(game.IsComplete())
}

func (s *ControllerSuite) TestApplyHumanMoveDetectsDraw() {
	game := s.createGame(GameConfig{Type: model.GameTypePlayerVsPlayer, Rows: 1, Cols: 2})
	s.playHuman(game.ID, 0)

	outcome, err := s.controller.ApplyHumanMove(s.ctx, game.ID, 1)
	s.Require().NoError(err)
	s.Equal(model.Draw(), outcome)

	game, err = s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStateDrawn, game.State)
	s.Equal(model.Empty, game.Winner)
}

func (s *ControllerSuite) TestMovesRejectedAfterGameOver() {
	game := s.createGame(GameConfig{Type: model.GameTypePlayerVsPlayer})
	s.playHuman(game.ID, 0, 6, 1, 6, 2, 6, 3)

	_, err := s.controller.ApplyHumanMove(s.ctx, game.ID, 4)
	s.ErrorIs(err, model.ErrGameComplete)

	_, err = s.controller.RequestComputerMove(s.ctx, game.ID, 0)
	s.ErrorIs(err, model.ErrGameComplete)
}

func (s *ControllerSuite) TestApplyHumanMoveUnknownGame() {
	_, err := s.controller.ApplyHumanMove(s.ctx, "MISSING", 0)
	s.ErrorIs(err, model.ErrGameNotFound)
}

// RequestComputerMove tests

func (s *ControllerSuite) TestRequestComputerMovePlaysCenter() {
	game := s.createGame(GameConfig{HumanPlays: model.PlayerB})

	// At depth 1 only the center column earns a bonus on an empty board
	move, err := s.controller.RequestComputerMove(s.ctx, game.ID, 1)
	s.Require().NoError(err)
	s.Equal(model.Move{Row: 0, Col: 3, Player: model.PlayerA}, move)

	game, err = s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerB, game.ToMove)
	s.Equal(&move, game.LastMove)
}

func (s *ControllerSuite) TestRequestComputerMoveBlocksWin() {
	game := s.createGame(GameConfig{})
	board, err := model.ParseBoard(`
		.......
		.......
		.......
		X......
		XO.....
		XO.....`)
	s.Require().NoError(err)
	game.Board = board
	game.ToMove = model.PlayerB
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	move, err := s.controller.RequestComputerMove(s.ctx, game.ID, 2)
	s.Require().NoError(err)
	s.Equal(model.Move{Row: 3, Col: 0, Player: model.PlayerB}, move)
}

func (s *ControllerSuite) TestRequestComputerMoveOnHumanTurn() {
	game := s.createGame(GameConfig{})

	_, err := s.controller.RequestComputerMove(s.ctx, game.ID, 2)
	s.ErrorIs(err, model.ErrNotComputerTurn)
}

func (s *ControllerSuite) TestRequestComputerMoveInvalidDepth() {
	game := s.createGame(GameConfig{Type: model.GameTypeAIVsAI})

	_, err := s.controller.RequestComputerMove(s.ctx, game.ID, -3)
	s.ErrorIs(err, model.ErrInvalidDepth)
}

func (s *ControllerSuite) TestRequestComputerMoveUsesStrategy() {
	game := s.createGame(GameConfig{Type: model.GameTypeAIVsAI, BotStrategy: model.BotStrategyRandom})
	s.random.QueueIntn(5)

	move, err := s.controller.RequestComputerMove(s.ctx, game.ID, 0)
	s.Require().NoError(err)
	s.Equal(5, move.Col)
}

// PlayComputerTurns tests

func (s *ControllerSuite) TestPlayComputerTurnsStopsAtHumanTurn() {
	game := s.createGame(GameConfig{HumanPlays: model.PlayerB})

	moves, err := s.controller.PlayComputerTurns(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Len(moves, 1)
	s.Equal(model.PlayerA, moves[0].Player)

	moves, err = s.controller.PlayComputerTurns(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Empty(moves)
}

func (s *ControllerSuite) TestPlayComputerTurnsFinishesAIGame() {
	game := s.createGame(GameConfig{
		Type:        model.GameTypeAIVsAI,
		Rows:        4,
		Cols:        4,
		BotStrategy: model.BotStrategyRandom,
	})

	// The unprimed random source always picks the leftmost legal column, so
	// columns fill A,B,A,B in turn until A completes the bottom row
	moves, err := s.controller.PlayComputerTurns(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Len(moves, 13)

	game, err = s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStateWon, game.State)
	s.Equal(model.PlayerA, game.Winner)
	s.Equal(13, game.MoveCount)
	s.Equal(model.Move{Row: 0, Col: 3, Player: model.PlayerA}, moves[12])
}

func (s *ControllerSuite) TestPlayComputerTurnsMinimaxSelfPlay() {
	game := s.createGame(GameConfig{Type: model.GameTypeAIVsAI, Rows: 4, Cols: 5, Depth: 2})

	moves, err := s.controller.PlayComputerTurns(s.ctx, game.ID)
	s.Require().NoError(err)

	game, err = s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.True(game.IsComplete())
	s.Len(moves, game.MoveCount)
}

func (s *ControllerSuite) TestPlayComputerTurnsPvPIsNoop() {
	game := s.createGame(GameConfig{Type: model.GameTypePlayerVsPlayer})

	moves, err := s.controller.PlayComputerTurns(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Empty(moves)
}

// Session lifecycle tests

func (s *ControllerSuite) TestNewGameResets() {
	game := s.createGame(GameConfig{Type: model.GameTypePlayerVsPlayer, Rows: 5})
	s.playHuman(game.ID, 0, 1, 2)

	game, err := s.controller.NewGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(0, game.MoveCount)
	s.Equal(model.PlayerA, game.ToMove)
	s.Equal(model.GameStateInProgress, game.State)
	s.Nil(game.LastMove)
	s.Equal(5, game.Board.Rows())
	s.Len(game.Board.LegalColumns(), model.DefaultCols)
}

func (s *ControllerSuite) TestNewGameAfterWin() {
	game := s.createGame(GameConfig{Type: model.GameTypePlayerVsPlayer})
	s.playHuman(game.ID, 0, 6, 1, 6, 2, 6, 3)

	game, err := s.controller.NewGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.False(game.IsComplete())
	s.Equal(model.Empty, game.Winner)

	s.playHuman(game.ID, 3)
}

func (s *ControllerSuite) TestChangeGameTypeResets() {
	game := s.createGame(GameConfig{Type: model.GameTypePlayerVsPlayer})
	s.playHuman(game.ID, 3, 3)

	game, err := s.controller.ChangeGameType(s.ctx, game.ID, model.GameTypeAIVsAI)
	s.Require().NoError(err)
	s.Equal(model.GameTypeAIVsAI, game.Type)
	s.Equal(0, game.MoveCount)
	s.True(game.IsComputer(model.PlayerA))
	s.True(game.IsComputer(model.PlayerB))
}

func (s *ControllerSuite) TestChangeGameTypeRejectsUnknown() {
	game := s.createGame(GameConfig{})

	_, err := s.controller.ChangeGameType(s.ctx, game.ID, "solo")
	s.ErrorIs(err, model.ErrInvalidGameType)
}

func (s *ControllerSuite) TestDeleteGame() {
	game := s.createGame(GameConfig{})

	s.Require().NoError(s.controller.DeleteGame(s.ctx, game.ID))

	_, err := s.controller.GetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
}
