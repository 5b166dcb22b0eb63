package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game errors
	ErrGameNotFound      = errors.New("game not found")
	ErrInvalidParameters = errors.New("invalid game parameters")
	ErrAlreadyJoined     = errors.New("already joined this game")
	ErrGameFull          = errors.New("game is full")
	ErrGameNotJoinable   = errors.New("game is not accepting players")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationExpired  = errors.New("reservation has expired")
	ErrJoinExpired         = errors.New("join attempt expired before payment")
)
