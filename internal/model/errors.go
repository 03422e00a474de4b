package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrInvalidColumn     = errors.New("column out of range")
	ErrColumnFull        = errors.New("column is full")
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrGravityViolation  = errors.New("board has a floating token")

	// Search errors
	ErrNoLegalMove  = errors.New("no legal move available")
	ErrInvalidDepth = errors.New("search depth must be at least 1")

	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrGameComplete    = errors.New("game is already complete")
	ErrNotPlayerTurn   = errors.New("not a human player's turn")
	ErrNotComputerTurn = errors.New("not a computer player's turn")
	ErrInvalidGameType = errors.New("invalid game type")
	ErrUnknownStrategy = errors.New("unknown bot strategy")
)
