package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/connectfour/internal/dependencies/clock"
	"github.com/mcoot/connectfour/internal/dependencies/random"
	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/bot"
	"github.com/mcoot/connectfour/internal/storage"
)

const (
	// GameIDAlphabet is the character set for generated game IDs
	GameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// GameIDLength is the length of generated game IDs
	GameIDLength = 12
	// MaxComputerIterations is a safety limit for the PlayComputerTurns loop
	MaxComputerIterations = 1000
)

// Config holds the defaults applied to new games
type Config struct {
	Rows        int
	Cols        int
	Depth       int
	BotStrategy string
}

// DefaultConfig returns a 6x7 board searched 4 plies deep with minimax
func DefaultConfig() Config {
	return Config{
		Rows:        model.DefaultRows,
		Cols:        model.DefaultCols,
		Depth:       4,
		BotStrategy: model.BotStrategyMinimax,
	}
}

// GameConfig describes a game to create. Zero values fall back to the controller Config.
type GameConfig struct {
	Type        model.GameType
	HumanPlays  model.Cell
	Rows        int
	Cols        int
	Depth       int
	BotStrategy string
}

// Controller manages game sessions: human moves, computer moves and the turn state between them
type Controller struct {
	storage    storage.Storage
	strategies map[string]bot.Strategy
	cfg        Config
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	strategies map[string]bot.Strategy,
	cfg Config,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    storage,
		strategies: strategies,
		cfg:        cfg,
		clock:      clock,
		random:     random,
		logger:     logger.With(slog.String("component", "game-controller")),
	}
}

// CreateGame starts a new session with an empty board and PlayerA to move
func (c *Controller) CreateGame(ctx context.Context, gc GameConfig) (*model.Game, error) {
	gc = c.withDefaults(gc)

	gameType, err := model.ParseGameType(string(gc.Type))
	if err != nil {
		return nil, err
	}
	if !gc.HumanPlays.IsPlayer() {
		return nil, fmt.Errorf("%w: human side %d", model.ErrInvalidPlayer, gc.HumanPlays)
	}
	if gc.Depth < 1 {
		return nil, fmt.Errorf("%w: got %d", model.ErrInvalidDepth, gc.Depth)
	}
	if _, ok := c.strategies[gc.BotStrategy]; !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, gc.BotStrategy)
	}
	board, err := model.NewBoard(gc.Rows, gc.Cols)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:          model.GameID(c.random.String(GameIDLength, GameIDAlphabet)),
		Type:        gameType,
		Board:       board,
		State:       model.GameStateInProgress,
		ToMove:      model.PlayerA,
		HumanPlays:  gc.HumanPlays,
		Depth:       gc.Depth,
		BotStrategy: gc.BotStrategy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("type", string(game.Type)),
		slog.Int("rows", gc.Rows),
		slog.Int("cols", gc.Cols),
		slog.Int("depth", gc.Depth),
		slog.String("strategy", gc.BotStrategy),
	)

	return game, nil
}

func (c *Controller) withDefaults(gc GameConfig) GameConfig {
	if gc.Type == "" {
		gc.Type = model.GameTypePlayerVsAI
	}
	if gc.HumanPlays == model.Empty {
		gc.HumanPlays = model.PlayerA
	}
	if gc.Rows == 0 {
		gc.Rows = c.cfg.Rows
	}
	if gc.Cols == 0 {
		gc.Cols = c.cfg.Cols
	}
	if gc.Depth == 0 {
		gc.Depth = c.cfg.Depth
	}
	if gc.BotStrategy == "" {
		gc.BotStrategy = c.cfg.BotStrategy
	}
	return gc
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// DeleteGame removes a session
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	return c.storage.DeleteGame(ctx, gameID)
}

// NewGame resets the session to an empty board with the same settings
func (c *Controller) NewGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := c.reset(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// ChangeGameType switches who controls each side and starts a new game
func (c *Controller) ChangeGameType(ctx context.Context, gameID model.GameID, gameType model.GameType) (*model.Game, error) {
	if _, err := model.ParseGameType(string(gameType)); err != nil {
		return nil, err
	}
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	game.Type = gameType
	if err := c.reset(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (c *Controller) reset(ctx context.Context, game *model.Game) error {
	board, err := model.NewBoard(game.Board.Rows(), game.Board.Cols())
	if err != nil {
		return err
	}
	game.Board = board
	game.State = model.GameStateInProgress
	game.ToMove = model.PlayerA
	game.Winner = model.Empty
	game.LastMove = nil
	game.MoveCount = 0
	game.UpdatedAt = c.clock.Now()

	c.logger.Info("game reset",
		slog.String("game_id", string(game.ID)),
		slog.String("type", string(game.Type)),
	)

	return c.storage.SaveGame(ctx, game)
}

// ApplyHumanMove drops the side-to-move's token in the column and returns the resulting outcome.
// Invalid columns, full columns and computer turns are rejected without changing the session.
func (c *Controller) ApplyHumanMove(ctx context.Context, gameID model.GameID, col int) (model.Outcome, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return model.Outcome{}, err
	}
	if game.IsComplete() {
		return game.Outcome(), model.ErrGameComplete
	}
	if game.IsComputer(game.ToMove) {
		return game.Outcome(), model.ErrNotPlayerTurn
	}

	if _, err := c.applyMove(ctx, game, col); err != nil {
		return game.Outcome(), err
	}
	return game.Outcome(), nil
}

// RequestComputerMove searches for the side to move, plays the chosen column and returns the move.
// A depth of 0 uses the session's configured depth.
func (c *Controller) RequestComputerMove(ctx context.Context, gameID model.GameID, depth int) (model.Move, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return model.Move{}, err
	}
	if game.IsComplete() {
		return model.Move{}, model.ErrGameComplete
	}
	if game.Board.IsFull() {
		return model.Move{}, model.ErrNoLegalMove
	}
	if !game.IsComputer(game.ToMove) {
		return model.Move{}, model.ErrNotComputerTurn
	}

	if depth == 0 {
		depth = game.Depth
	}
	if depth < 1 {
		return model.Move{}, fmt.Errorf("%w: got %d", model.ErrInvalidDepth, depth)
	}

	strategy, ok := c.strategies[game.BotStrategy]
	if !ok {
		return model.Move{}, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, game.BotStrategy)
	}

	col, err := strategy.ChooseColumn(ctx, game.Board, game.ToMove, depth)
	if err != nil {
		return model.Move{}, err
	}
	return c.applyMove(ctx, game, col)
}

// PlayComputerTurns plays computer moves until a human is to move or the game ends.
// It returns every move made.
func (c *Controller) PlayComputerTurns(ctx context.Context, gameID model.GameID) ([]model.Move, error) {
	var moves []model.Move

	for range MaxComputerIterations {
		game, err := c.storage.GetGame(ctx, gameID)
		if err != nil {
			return moves, err
		}
		if game.IsComplete() || !game.IsComputer(game.ToMove) {
			break
		}

		move, err := c.RequestComputerMove(ctx, gameID, 0)
		if err != nil {
			return moves, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// applyMove drops for the side to move, updates the session state and saves it
func (c *Controller) applyMove(ctx context.Context, game *model.Game, col int) (model.Move, error) {
	player := game.ToMove
	row, err := game.Board.Drop(col, player)
	if err != nil {
		return model.Move{}, err
	}

	move := model.Move{Row: row, Col: col, Player: player}
	outcome := game.Board.CheckOutcome()

	game.LastMove = &move
	game.MoveCount++
	game.ApplyOutcome(outcome)
	if !outcome.IsTerminal() {
		game.ToMove = player.Opponent()
	}
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return model.Move{}, err
	}

	c.logger.Debug("move applied",
		slog.String("game_id", string(game.ID)),
		slog.String("player", player.String()),
		slog.Int("row", row),
		slog.Int("col", col),
		slog.String("outcome", outcome.String()),
	)
	if outcome.IsTerminal() {
		c.logger.Info("game completed",
			slog.String("game_id", string(game.ID)),
			slog.String("outcome", outcome.String()),
			slog.Int("moves", game.MoveCount),
		)
	}

	return move, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, gc GameConfig) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, gameID model.GameID) error
	NewGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	ChangeGameType(ctx context.Context, gameID model.GameID, gameType model.GameType) (*model.Game, error)
	ApplyHumanMove(ctx context.Context, gameID model.GameID, col int) (model.Outcome, error)
	RequestComputerMove(ctx context.Context, gameID model.GameID, depth int) (model.Move, error)
	PlayComputerTurns(ctx context.Context, gameID model.GameID) ([]model.Move, error)
}

var _ ControllerInterface = (*Controller)(nil)
