package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/connectfour/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newGame() *model.Game {
	board := model.NewDefaultBoard()
	_, _ = board.Drop(3, model.PlayerA)
	_, _ = board.Drop(3, model.PlayerB)
	_, _ = board.Drop(2, model.PlayerA)

	return &model.Game{
		ID:          "game-1",
		Type:        model.GameTypePlayerVsAI,
		Board:       board,
		State:       model.GameStateInProgress,
		ToMove:      model.PlayerB,
		LastMove:    &model.Move{Row: 0, Col: 2, Player: model.PlayerA},
		HumanPlays:  model.PlayerA,
		Depth:       4,
		BotStrategy: model.BotStrategyMinimax,
		MoveCount:   3,
		CreatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.newGame()

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.Type, retrieved.Type)
	s.Equal(game.ToMove, retrieved.ToMove)
	s.Equal(game.LastMove, retrieved.LastMove)
	s.Equal(game.Depth, retrieved.Depth)
	s.Equal(game.MoveCount, retrieved.MoveCount)
	s.True(game.CreatedAt.Equal(retrieved.CreatedAt))
	s.True(game.Board.Equal(retrieved.Board))
}

func (s *StorageSuite) TestRetrievedBoardIsPlayable() {
	_ = s.storage.SaveGame(s.ctx, s.newGame())

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)

	row, err := retrieved.Board.Drop(3, model.PlayerB)
	s.Require().NoError(err)
	s.Equal(2, row)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	_ = s.storage.SaveGame(s.ctx, s.newGame())

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameTTL() {
	_ = s.storage.SaveGame(s.ctx, s.newGame())

	ttl := s.mini.TTL(gameKey("game-1"))
	s.True(ttl > 0, "game should have TTL")

	s.mini.FastForward(2 * time.Hour)
	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestKeyPrefix() {
	s.Equal("c4game:game:abc", gameKey("abc"))
}
