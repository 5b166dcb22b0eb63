package storage

import (
	"context"

	"github.com/lnpoker/lnpoker/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.PlayerID) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	// ListGames returns a snapshot of all games ordered by creation
	// time ascending
	ListGames(ctx context.Context) ([]*model.Game, error)

	// Reservation operations (token -> game/player index)
	SaveReservation(ctx context.Context, res *model.Reservation) error
	GetReservation(ctx context.Context, token model.ReservationToken) (*model.Reservation, error)
	DeleteReservation(ctx context.Context, token model.ReservationToken) error
}
