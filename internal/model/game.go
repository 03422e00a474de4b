package model

import (
	"fmt"
	"time"
)

// GameID uniquely identifies a game session
type GameID string

// GameType decides which sides are computer controlled
type GameType string

const (
	GameTypePlayerVsPlayer GameType = "pvp"
	GameTypePlayerVsAI     GameType = "pvai"
	GameTypeAIVsAI         GameType = "aivai"
)

// ParseGameType validates a game type name
func ParseGameType(s string) (GameType, error) {
	switch t := GameType(s); t {
	case GameTypePlayerVsPlayer, GameTypePlayerVsAI, GameTypeAIVsAI:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGameType, s)
	}
}

// GameState represents the current phase of a game
type GameState string

const (
	GameStateInProgress GameState = "in_progress"
	GameStateWon        GameState = "won"
	GameStateDrawn      GameState = "drawn"
)

// Game is a single session: one board plus the turn state owned by the session
type Game struct {
	ID       GameID
	Type     GameType
	Board    *Board
	State    GameState
	ToMove   Cell // side to move next
	Winner   Cell // Empty unless State is GameStateWon
	LastMove *Move

	// HumanPlays is the human side in a player vs AI game
	HumanPlays Cell

	// Computer player settings
	Depth       int
	BotStrategy string

	MoveCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsComplete returns true once the game is won or drawn
func (g *Game) IsComplete() bool {
	return g.State == GameStateWon || g.State == GameStateDrawn
}

// IsComputer returns true if the given side is controlled by the computer
func (g *Game) IsComputer(side Cell) bool {
	switch g.Type {
	case GameTypeAIVsAI:
		return true
	case GameTypePlayerVsAI:
		return side != g.HumanPlays
	default:
		return false
	}
}

// Outcome returns the session state as a board outcome
func (g *Game) Outcome() Outcome {
	switch g.State {
	case GameStateWon:
		return WinFor(g.Winner)
	case GameStateDrawn:
		return Draw()
	default:
		return Ongoing()
	}
}

// ApplyOutcome moves the session to the state matching the outcome
func (g *Game) ApplyOutcome(o Outcome) {
	switch o.Status {
	case OutcomeWin:
		g.State = GameStateWon
		g.Winner = o.Winner
	case OutcomeDraw:
		g.State = GameStateDrawn
		g.Winner = Empty
	default:
		g.State = GameStateInProgress
		g.Winner = Empty
	}
}
