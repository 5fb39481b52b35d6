package model

import "errors"

// Common errors used across the application
var (
	// Identifier errors
	ErrInvalidPieceID     = errors.New("invalid piece id")
	ErrInvalidPlayerID    = errors.New("invalid player id")
	ErrInvalidPlayerCount = errors.New("invalid player count")
	ErrInvalidRotation    = errors.New("rotation must be between 0 and 3")
	ErrInvalidPlayerKind  = errors.New("invalid player kind")

	// Board errors
	ErrOutOfRange   = errors.New("position is outside the board")
	ErrCellOccupied = errors.New("cell is already occupied")

	// Game errors
	ErrGameNotFound     = errors.New("game not found")
	ErrNotPlayerTurn    = errors.New("not this player's turn")
	ErrPieceAlreadyUsed = errors.New("piece has already been placed")
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameAbandoned    = errors.New("game has been abandoned")
	ErrGameNotFinished  = errors.New("game is not finished")
	ErrStaleDecision    = errors.New("game changed while the decision was pending")
	ErrSummaryNotFound  = errors.New("game summary not found")

	// Seat errors
	ErrSeatNotFound = errors.New("seat not found")
)
