package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lnpoker/lnpoker/internal/model"
	"github.com/lnpoker/lnpoker/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts     map[model.PlayerID]*model.Account
	emailIndex   map[string]model.PlayerID
	games        map[model.GameID]*model.Game
	reservations map[model.ReservationToken]*model.Reservation
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:     make(map[model.PlayerID]*model.Account),
		emailIndex:   make(map[string]model.PlayerID),
		games:        make(map[model.GameID]*model.Game),
		reservations: make(map[model.ReservationToken]*model.Reservation),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.PlayerID] = account
	s.emailIndex[account.Email] = account.PlayerID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.PlayerID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return account, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = cloneGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneGame(game), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, cloneGame(g))
	}
	sort.Slice(games, func(i, j int) bool {
		if games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].ID < games[j].ID
		}
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})
	return games, nil
}

// Reservation operations

func (s *Storage) SaveReservation(ctx context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *res
	s.reservations[res.Token] = &copied
	return nil
}

func (s *Storage) GetReservation(ctx context.Context, token model.ReservationToken) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.reservations[token]
	if !ok {
		return nil, model.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (s *Storage) DeleteReservation(ctx context.Context, token model.ReservationToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reservations, token)
	return nil
}

// cloneGame copies a game so callers never share slices with the store
func cloneGame(g *model.Game) *model.Game {
	copied := *g
	copied.Players = append([]model.PlayerRef(nil), g.Players...)
	copied.Pending = append([]model.PendingSeat(nil), g.Pending...)
	return &copied
}
